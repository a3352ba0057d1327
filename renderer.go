package envoi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

// DefaultAuthor is written into the document information dictionary.
const DefaultAuthor = "Scott Smitelli"

// logoImageName is the canvas name the logo is registered under.
const logoImageName = "logo"

// titleMark prefixes the document title.
const titleMark = "[§]"

// Renderer turns invoice records into PDF documents.
// It holds only immutable configuration and may be used from several
// goroutines at once; every Render call builds its own document.
type Renderer struct {
	accent     Color
	assets     *Assets
	author     string
	now        func() time.Time
	logoAspect float64
	logger     *zap.Logger
	newCanvas  func(*Assets) (Canvas, error)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithAccentColor sets the brand color of bars, headings and borders.
func WithAccentColor(c Color) Option {
	return func(r *Renderer) {
		r.accent = c
	}
}

// WithAssets sets the fonts and logo. Without assets the core Helvetica
// fonts are used and no logo is drawn.
func WithAssets(a *Assets) Option {
	return func(r *Renderer) {
		r.assets = a
	}
}

// WithAuthor sets the author metadata.
func WithAuthor(name string) Option {
	return func(r *Renderer) {
		r.author = name
	}
}

// WithClock sets the source of the creation timestamp.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// WithLogger sets the logger used for render diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithLogoAspect sets the logo's width to height ratio.
// Panics if aspect <= 0 (programmer error).
func WithLogoAspect(aspect float64) Option {
	if !(aspect > 0) {
		panic("envoi: WithLogoAspect ratio must be positive")
	}
	return func(r *Renderer) {
		r.logoAspect = aspect
	}
}

// withCanvasFactory replaces the PDF backend, for tests.
func withCanvasFactory(fn func(*Assets) (Canvas, error)) Option {
	return func(r *Renderer) {
		r.newCanvas = fn
	}
}

// NewRenderer creates a Renderer with default configuration.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		accent:     DefaultAccent,
		author:     DefaultAuthor,
		now:        time.Now,
		logoAspect: DefaultLogoRatio,
		logger:     zap.NewNop(),
		newCanvas:  newFPDFCanvas,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws rec and writes the finished PDF to w. Nothing is written
// unless the whole document rendered successfully.
// The context is checked before every page.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (r *Renderer) Render(ctx context.Context, rec *Record, w io.Writer) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: internal error: %v", ErrRender, p)
		}
	}()

	if rec == nil {
		return fmt.Errorf("%w: nil record", ErrInvalidRecord)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, err := r.newDocument(ctx, rec)
	if err != nil {
		return err
	}
	if err := doc.compose(); err != nil {
		return fmt.Errorf("invoice %s: %w", rec.InvoiceNumber(), err)
	}
	if err := doc.canvas.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}

	var buf bytes.Buffer
	if err := doc.canvas.Output(&buf); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing invoice %s: %w", rec.InvoiceNumber(), err)
	}

	r.logger.Debug("invoice rendered",
		zap.String("invoice", rec.InvoiceNumber()),
		zap.Int("pages", doc.rc.Page()),
		zap.Int("stamps", doc.pages.Stamps()),
		zap.Int("bytes", buf.Len()),
	)
	return nil
}

// newDocument prepares a canvas, a render context and a page renderer for rec.
func (r *Renderer) newDocument(ctx context.Context, rec *Record) (*document, error) {
	canvas, err := r.newCanvas(r.assets)
	if err != nil {
		return nil, err
	}

	logo := ""
	if r.assets != nil && len(r.assets.Logo) > 0 {
		if err := canvas.RegisterImage(logoImageName, r.assets.Logo); err != nil {
			return nil, fmt.Errorf("%w: logo: %v", ErrAsset, err)
		}
		logo = logoImageName
	}

	canvas.SetMetadata(Metadata{
		Title:    fmt.Sprintf("%s Invoice %s", titleMark, rec.InvoiceNumber()),
		Author:   r.author,
		Creator:  "envoi " + ToolVersion(),
		Producer: "go-pdf/fpdf " + BackendVersion(),
		Created:  r.now(),
	})

	rc := NewRenderContext(canvas, DefaultMargins, r.accent)
	pages := NewPageRenderer(rc, rec, PageConfig{
		LogoName:   logo,
		LogoAspect: r.logoAspect,
		Logger:     r.logger,
		Context:    ctx,
	})
	return &document{rec: rec, canvas: canvas, rc: rc, pages: pages}, nil
}
