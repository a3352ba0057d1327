package assets

// AssetLoader defines the contract for loading fonts and images.
// Implementations may load from the filesystem, embedded data, etc.
type AssetLoader interface {
	// LoadFont loads a TrueType font file by name (with extension).
	// Returns ErrAssetNotFound if the file doesn't exist.
	// Returns ErrInvalidFont if the data is not a TrueType font.
	LoadFont(name string) ([]byte, error)

	// LoadImage loads a PNG, JPEG or GIF file by name (with extension).
	// Returns ErrAssetNotFound if the file doesn't exist.
	// Returns ErrUnsupportedImage for any other format.
	LoadImage(name string) ([]byte, error)
}
