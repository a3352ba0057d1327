package envoi

import (
	"errors"

	"github.com/envoi-pdf/envoi/internal/assets"
)

// AssetFiles names the files read from an asset directory.
// An empty name skips that asset: a face without a font falls back to the
// core Helvetica fonts, and no logo is drawn without a logo file.
type AssetFiles struct {
	Light  string
	Medium string
	Black  string
	Logo   string
}

// DefaultAssetFiles returns the standard file names.
func DefaultAssetFiles() AssetFiles {
	return AssetFiles{
		Light:  "Roboto-Light.ttf",
		Medium: "Roboto-Medium.ttf",
		Black:  "Roboto-Black.ttf",
		Logo:   "Logo.png",
	}
}

// Assets holds font and logo data. It is read-only once loaded and may be
// shared between renderers.
type Assets struct {
	Fonts map[Face][]byte
	Logo  []byte
}

// LoadAssets reads the named files from dir.
// Any missing or unreadable file yields an error matching ErrAsset that
// names the file.
func LoadAssets(dir string, files AssetFiles) (*Assets, error) {
	loader, err := assets.NewFilesystemLoader(dir)
	if err != nil {
		return nil, convertAssetError(err)
	}

	a := &Assets{Fonts: make(map[Face][]byte, len(Faces))}
	fonts := []struct {
		face Face
		name string
	}{
		{FaceLight, files.Light},
		{FaceMedium, files.Medium},
		{FaceBlack, files.Black},
	}
	for _, f := range fonts {
		if f.name == "" {
			continue
		}
		data, err := loader.LoadFont(f.name)
		if err != nil {
			return nil, convertAssetError(err)
		}
		a.Fonts[f.face] = data
	}

	if files.Logo != "" {
		data, err := loader.LoadImage(files.Logo)
		if err != nil {
			return nil, convertAssetError(err)
		}
		a.Logo = data
	}
	return a, nil
}

// convertAssetError maps internal asset errors to ErrAsset.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrAssetNotFound),
		errors.Is(err, assets.ErrAssetRead),
		errors.Is(err, assets.ErrInvalidAssetName),
		errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrPathTraversal),
		errors.Is(err, assets.ErrInvalidFont),
		errors.Is(err, assets.ErrUnsupportedImage):
		return wrapError(ErrAsset, err)
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.sentinel.Error() + ": " + e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
