package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"codeberg.org/go-pdf/fpdf"

	// Register a broad set of image decoders so image.Decode can handle many formats.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
)

const logoName = "logo"

// registerLogo decodes data and registers it with pdf as a PNG image
func registerLogo(pdf *fpdf.Fpdf, data []byte) error {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode %s as png: %w", format, err)
	}

	pdf.RegisterImageOptionsReader(logoName, fpdf.ImageOptions{ImageType: "PNG"}, &buf)
	if pdf.Err() {
		return pdf.Error()
	}
	return nil
}
