package assets

import (
	"bytes"
	"fmt"
	"strings"
)

// ValidateAssetName checks that an asset name is a plain file name.
// Returns ErrInvalidAssetName if the name is empty, hidden, or contains
// path separators or traversal sequences.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\:") || strings.HasPrefix(name, ".") || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// Image types understood by the PDF backend.
const (
	ImagePNG  = "png"
	ImageJPEG = "jpg"
	ImageGIF  = "gif"
)

var imageSignatures = []struct {
	magic []byte
	typ   string
}{
	{[]byte("\x89PNG\r\n\x1a\n"), ImagePNG},
	{[]byte{0xff, 0xd8, 0xff}, ImageJPEG},
	{[]byte("GIF87a"), ImageGIF},
	{[]byte("GIF89a"), ImageGIF},
}

// DetectImageType identifies image data by its leading bytes.
func DetectImageType(data []byte) (string, error) {
	for _, sig := range imageSignatures {
		if bytes.HasPrefix(data, sig.magic) {
			return sig.typ, nil
		}
	}
	if bytes.Contains(data[:min(len(data), 256)], []byte("<svg")) {
		return "", fmt.Errorf("%w: SVG (convert the logo to PNG)", ErrUnsupportedImage)
	}
	return "", ErrUnsupportedImage
}

// TrueType sfnt versions. OpenType CFF ("OTTO") and collections are rejected.
var fontSignatures = [][]byte{
	{0x00, 0x01, 0x00, 0x00},
	[]byte("true"),
}

// ValidateFont checks that data starts with a TrueType header.
func ValidateFont(data []byte) error {
	for _, magic := range fontSignatures {
		if bytes.HasPrefix(data, magic) {
			return nil
		}
	}
	switch {
	case bytes.HasPrefix(data, []byte("OTTO")):
		return fmt.Errorf("%w: OpenType CFF outlines", ErrInvalidFont)
	case bytes.HasPrefix(data, []byte("ttcf")):
		return fmt.Errorf("%w: font collection", ErrInvalidFont)
	}
	return ErrInvalidFont
}
