package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrAssetNotFound indicates the requested file does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrInvalidAssetName indicates the asset name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrInvalidFont indicates a file that is not a TrueType font.
	ErrInvalidFont = errors.New("not a TrueType font")

	// ErrUnsupportedImage indicates an image format the PDF backend cannot embed.
	ErrUnsupportedImage = errors.New("unsupported image format")
)
