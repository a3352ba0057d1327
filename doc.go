// Package envoi draws invoices as letter-size PDF documents.
//
// # Quick Start
//
// Load assets once, create a renderer and render a record:
//
//	a, err := envoi.LoadAssets("assets", envoi.DefaultAssetFiles())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r := envoi.NewRenderer(envoi.WithAssets(a))
//
//	var buf bytes.Buffer
//	if err := r.Render(ctx, rec, &buf); err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("invoice.pdf", buf.Bytes(), 0644)
//
// Nothing is written to the sink unless the whole document rendered.
//
// # Layout
//
// Every page carries an accent-colored header bar with the logo, the word
// INVOICE and the invoice number. The first page adds the header address
// under the bar and the footer address at the bottom; later pages print
// "page N of M" instead. Content is laid out top to bottom:
//
//  1. BILL TO box on the left, INVOICE DATE, TOTAL DUE and DUE DATE boxes
//     stacked on the right
//  2. The ledger table with its ADJUSTMENTS and TOTAL footer
//  3. An optional NOTES box
//
// Table rows that do not fit move to the next page together with a repeated
// heading row. A row that cannot fit even on an empty page fails with
// ErrLayoutOverflow. Paid invoices get a hatched PAID stamp on every page.
//
// # Configuration
//
// Use functional options to customize the renderer:
//
//	r := envoi.NewRenderer(
//	    envoi.WithAccentColor(envoi.Color{R: 0x0a, G: 0x36, B: 0x78}),
//	    envoi.WithAuthor("Jane Doe"),
//	    envoi.WithLogoAspect(4),
//	    envoi.WithLogger(logger),
//	)
//
// A Renderer holds no per-document state and is safe for concurrent use.
//
// # Assets
//
// The asset directory holds three TrueType faces and a PNG, JPEG or GIF logo:
//
//	assets/
//	├── Roboto-Light.ttf
//	├── Roboto-Medium.ttf
//	├── Roboto-Black.ttf
//	└── Logo.png
//
// Without assets the core Helvetica fonts are used and no logo is drawn.
//
// # Error Handling
//
// Errors can be checked with errors.Is:
//
//	if errors.Is(err, envoi.ErrAsset) {
//	    // font or logo missing or unreadable
//	}
//	if errors.Is(err, envoi.ErrLayoutOverflow) {
//	    // content taller than a page
//	}
package envoi
