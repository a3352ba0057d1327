package envoi

import "errors"

// Sentinel errors for library operations.
var (
	// ErrAsset indicates a font or logo file is missing or unreadable.
	ErrAsset = errors.New("asset unavailable")

	// ErrLayoutOverflow indicates content that cannot fit even on an empty page.
	ErrLayoutOverflow = errors.New("content does not fit on a page")

	// ErrInvalidRecord indicates a structurally malformed invoice record.
	ErrInvalidRecord = errors.New("invalid invoice record")

	// ErrPageState indicates a page lifecycle call made in the wrong state.
	ErrPageState = errors.New("invalid page state")

	// ErrInvalidTable indicates a table whose spans do not fit its columns or rows.
	ErrInvalidTable = errors.New("invalid table layout")

	// ErrRender indicates the PDF backend failed to produce a document.
	ErrRender = errors.New("PDF rendering failed")

	// ErrInvalidColor indicates a color string that is not #rgb or #rrggbb.
	ErrInvalidColor = errors.New("invalid color")
)
