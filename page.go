package envoi

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// PageState is the lifecycle state of the current page.
type PageState int

// Page lifecycle states.
const (
	NoPage PageState = iota
	PageOpen
	PageClosing
)

func (s PageState) String() string {
	switch s {
	case NoPage:
		return "no page"
	case PageOpen:
		return "page open"
	case PageClosing:
		return "page closing"
	default:
		return fmt.Sprintf("PageState(%d)", int(s))
	}
}

// Header and footer text.
const (
	barFontSize      = 14.0
	titleText        = "INVOICE"
	titleScale       = 1.2
	headerSeparator  = "  •  "
	footerSeparator  = "   •   "
	DefaultLogoRatio = 5.656
)

// PageConfig configures the decoration drawn around page content.
type PageConfig struct {
	// LogoName is the image registered on the canvas, empty for none.
	LogoName string
	// LogoAspect is the logo's width divided by its height.
	LogoAspect float64
	Logger     *zap.Logger
	// Context is checked before each page is opened.
	Context context.Context
}

// PageRenderer draws header and footer bars and owns the page lifecycle.
// It installs itself as the RenderContext's PageBreaker.
type PageRenderer struct {
	rc     *RenderContext
	rec    *Record
	cfg    PageConfig
	state  PageState
	stamps int
	log    *zap.Logger
}

// NewPageRenderer binds a page renderer to rc and rec.
func NewPageRenderer(rc *RenderContext, rec *Record, cfg PageConfig) *PageRenderer {
	if cfg.LogoAspect <= 0 {
		cfg.LogoAspect = DefaultLogoRatio
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	p := &PageRenderer{rc: rc, rec: rec, cfg: cfg, log: log}
	rc.SetPageBreaker(p)
	return p
}

// State returns the lifecycle state.
func (p *PageRenderer) State() PageState { return p.state }

// Stamps returns how many paid stamps have been drawn.
func (p *PageRenderer) Stamps() int { return p.stamps }

// LogoSize returns the logo box: half the effective width, scaled by aspect.
func (p *PageRenderer) LogoSize() (w, h float64) {
	w = p.rc.EffectiveWidth() / 2
	return w, w / p.cfg.LogoAspect
}

// HeaderHeight returns the height of the header bar on the given page.
// The first page has an extra half margin for the address line.
func (p *PageRenderer) HeaderHeight(page int) float64 {
	top := p.rc.Margins().Top
	_, logoH := p.LogoSize()
	h := top + logoH + top
	if page == 1 {
		h += top / 2
	}
	return h
}

// ContentTop returns where content starts on the given page.
func (p *PageRenderer) ContentTop(page int) float64 {
	return p.HeaderHeight(page) + barFontSize/pointsPerInch
}

// OpenPage starts a page and draws its header.
func (p *PageRenderer) OpenPage() error {
	if p.state == PageOpen {
		return fmt.Errorf("%w: open page while %s", ErrPageState, p.state)
	}
	if ctx := p.cfg.Context; ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	p.rc.newPage()
	p.state = PageOpen
	if err := p.drawHeader(); err != nil {
		return err
	}
	p.rc.markContentTop()

	p.log.Debug("page opened", zap.Int("page", p.rc.Page()), zap.Float64("content_top", p.rc.Y()))
	return nil
}

// ClosePage draws the footer and, for paid invoices, the stamp.
func (p *PageRenderer) ClosePage() error {
	if p.state != PageOpen {
		return fmt.Errorf("%w: close page while %s", ErrPageState, p.state)
	}
	p.state = PageClosing

	if err := p.drawFooter(); err != nil {
		return err
	}
	if p.rec.Paid {
		if err := p.rc.RenderPaidStamp(); err != nil {
			return err
		}
		p.stamps++
	}
	return nil
}

// BreakPage closes the current page and opens the next one.
func (p *PageRenderer) BreakPage() error {
	if err := p.ClosePage(); err != nil {
		return err
	}
	p.log.Debug("page break", zap.Int("after_page", p.rc.Page()))
	return p.OpenPage()
}

// Finish closes the last page. The document has no open page afterwards.
func (p *PageRenderer) Finish() error {
	switch p.state {
	case PageOpen:
		if err := p.ClosePage(); err != nil {
			return err
		}
	case NoPage:
		return fmt.Errorf("%w: finish before any page was opened", ErrPageState)
	}
	p.state = NoPage
	return nil
}

func (p *PageRenderer) drawHeader() error {
	rc := p.rc
	m := rc.Margins()
	pageW, _ := rc.PageSize()
	page := rc.Page()
	logoW, logoH := p.LogoSize()
	barH := p.HeaderHeight(page)

	err := rc.With(func() error {
		rc.canvas.Rect(0, 0, pageW, barH, RectFill)
		if p.cfg.LogoName != "" {
			rc.canvas.Image(p.cfg.LogoName, m.Left, m.Top, logoW, logoH)
		}
		return nil
	}, WithFillColor(rc.accent))
	if err != nil {
		return err
	}

	rc.SetY(m.Top)
	err = rc.With(func() error {
		_ = rc.With(func() error {
			rc.CellLn(titleText, AlignRight)
			return nil
		}, WithFontSize(logoH/titleScale*pointsPerInch))

		_ = rc.With(func() error {
			rc.CellLn(p.rec.InvoiceNumber(), AlignRight)
			return nil
		}, WithFace(FaceMedium))

		if page == 1 {
			rc.Ln(rc.FontHeight())
			rc.RichCellLn(ParseInline(strings.Join(p.rec.HeaderAddress, headerSeparator)), AlignCenter)
		}
		return nil
	}, WithFontSize(barFontSize), WithTextColor(White))
	if err != nil {
		return err
	}

	rc.SetY(barH)
	rc.Ln(barFontSize / pointsPerInch)
	return nil
}

func (p *PageRenderer) drawFooter() error {
	rc := p.rc
	page := rc.Page()
	rc.SetY(-rc.Margins().Top)

	var runs []Run
	if page == 1 {
		runs = ParseInline(strings.Join(p.rec.FooterAddress, footerSeparator))
	} else {
		runs = PlainRuns(fmt.Sprintf("page %d of %s", page, rc.canvas.PageCountAlias()))
	}

	return rc.With(func() error {
		rc.RichCellLn(runs, AlignCenter)
		return nil
	}, WithFontSize(barFontSize), WithTextColor(footerGray))
}
