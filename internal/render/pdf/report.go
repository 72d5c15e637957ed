package pdf

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"codeberg.org/go-pdf/fpdf"
	"github.com/rtl-agents/rtlagents/internal/text"
)

const (
	unicodeFamily = "rtlagents"
	coreFamily    = "Helvetica"

	bodySize  = 12.0
	metaSize  = 9.0
	titleSize = 16.0
	lineGap   = 4.0
)

// Sample is one classified text of a report
type Sample struct {
	Text   string
	Result text.DetectionResult
}

// RenderOptions contains options for rendering
type RenderOptions struct {
	Title       string
	Author      string
	Subject     string
	Creator     string
	Orientation string // "P" for portrait, "L" for landscape

	// Font is a UTF-8 TrueType font. Without it the core Helvetica font is
	// used and text outside cp1252 cannot be shown.
	Font []byte
	// Logo is an optional header image in any format image.Decode knows
	Logo []byte
}

// Renderer writes classification reports as PDF
type Renderer struct {
	Logger *slog.Logger
}

// NewRenderer creates a new PDF renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// document carries the state of one Render call
type document struct {
	pdf       *fpdf.Fpdf
	family    string
	unicode   bool
	translate func(string) string
}

// Render writes a report of samples to w
func (r *Renderer) Render(w io.Writer, samples []Sample, options RenderOptions) error {
	orient := options.Orientation
	if orient == "" {
		orient = "P"
	}

	pdf := fpdf.New(orient, "pt", "A4", "")
	pdf.SetTitle(options.Title, true)
	pdf.SetAuthor(options.Author, true)
	pdf.SetSubject(options.Subject, true)
	pdf.SetCreator(options.Creator, true)
	pdf.SetMargins(40, 40, 40)
	pdf.SetAutoPageBreak(true, 40)

	doc := &document{pdf: pdf, family: coreFamily, translate: func(s string) string { return s }}
	if len(options.Font) > 0 {
		pdf.AddUTF8FontFromBytes(unicodeFamily, "", options.Font)
		doc.family = unicodeFamily
		doc.unicode = true
	} else {
		doc.translate = pdf.UnicodeTranslatorFromDescriptor("")
	}

	if len(options.Logo) > 0 {
		if err := registerLogo(pdf, options.Logo); err != nil {
			return fmt.Errorf("logo: %w", err)
		}
		pdf.SetHeaderFunc(func() {
			pdf.ImageOptions(logoName, 40, 15, 0, 20, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		})
	}

	pdf.AddPage()
	r.logger().Debug("rendering report", "samples", len(samples), "unicode_font", doc.unicode)

	if options.Title != "" {
		pdf.SetFont(doc.family, "", titleSize)
		pdf.MultiCell(0, titleSize+lineGap, doc.translate(options.Title), "", "L", false)
		pdf.Ln(lineGap * 2)
	}

	for _, s := range samples {
		doc.writeSample(s)
	}

	if pdf.Err() {
		return fmt.Errorf("render report: %w", pdf.Error())
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// writeSample writes the sample text followed by its metadata line. RTL text
// is right-aligned, and shaped right to left when a UTF-8 font is in use.
func (d *document) writeSample(s Sample) {
	align := "L"
	rtl := s.Result.Direction == text.RTL
	if rtl {
		align = "R"
	}

	d.pdf.SetFont(d.family, "", bodySize)
	d.pdf.SetTextColor(0, 0, 0)
	body := d.translate(s.Text)
	if rtl && d.unicode {
		body = keepLTRRuns(body)
		d.pdf.RTL()
	}
	d.pdf.MultiCell(0, bodySize+lineGap, body, "", align, false)
	if rtl && d.unicode {
		d.pdf.LTR()
	}

	d.pdf.SetFont(d.family, "", metaSize)
	d.pdf.SetTextColor(110, 110, 110)
	d.pdf.MultiCell(0, metaSize+lineGap, d.translate(metadataLine(s.Result)), "", align, false)
	d.pdf.Ln(lineGap * 2)
}

// metadataLine formats e.g. "persian · rtl · 0.90 · 100%"
func metadataLine(r text.DetectionResult) string {
	return fmt.Sprintf("%s · %s · %s · %s%%",
		r.Language, r.Direction,
		strconv.FormatFloat(r.Confidence, 'f', 2, 64),
		strconv.FormatFloat(r.RTLPercentage*100, 'f', 0, 64))
}

func (r *Renderer) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
