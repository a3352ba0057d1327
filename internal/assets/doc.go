// Package assets loads the font and logo files an invoice is drawn with.
//
// # Directory Structure
//
// Assets live flat in one directory:
//
//	{basePath}/
//	├── Roboto-Light.ttf    # body text
//	├── Roboto-Medium.ttf   # emphasized values
//	├── Roboto-Black.ttf    # paid stamp
//	└── Logo.png            # header logo (PNG, JPEG or GIF)
//
// File names are configurable; the names above are the defaults.
//
// # Validation
//
// Fonts must be TrueType outlines, which is what the PDF backend embeds.
// Images are identified by their magic bytes, not their extension.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
