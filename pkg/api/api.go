package api

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rtl-agents/rtlagents/internal/annotate"
	"github.com/rtl-agents/rtlagents/internal/inject"
	"github.com/rtl-agents/rtlagents/internal/logging"
	"github.com/rtl-agents/rtlagents/internal/parser/css"
	"github.com/rtl-agents/rtlagents/internal/parser/html"
	"github.com/rtl-agents/rtlagents/internal/render/pdf"
	"github.com/rtl-agents/rtlagents/internal/res"
	"github.com/rtl-agents/rtlagents/internal/style"
	"github.com/rtl-agents/rtlagents/internal/text"
)

type (
	Direction        = text.Direction
	ScriptClass      = text.ScriptClass
	DetectionResult  = text.DetectionResult
	Detector         = text.Detector
	Mode             = style.Mode
	StyleOptions     = style.StyleOptions
	ElementDirection = style.ElementDirection
	Message          = inject.Message
	Injector         = inject.Injector
	AnnotateStats    = annotate.Stats
	Sample           = pdf.Sample
)

// DefaultDetector backs the package-level detection functions
var DefaultDetector = text.NewDetector()

// Detect classifies text with DefaultDetector
func Detect(s string) DetectionResult { return DefaultDetector.Detect(s) }

// IsRTL reports whether text is predominantly right-to-left
func IsRTL(s string) bool { return DefaultDetector.IsRTL(s) }

// CSSDirection returns the CSS direction for text, or auto when unsure
func CSSDirection(s string) Direction { return DefaultDetector.CSSDirection(s) }

// ClearCache empties DefaultDetector's cache
func ClearCache() { DefaultDetector.ClearCache() }

// GenerateRTLStyles builds the RTL stylesheet for opts
func GenerateRTLStyles(opts StyleOptions) string { return style.GenerateRTLStyles(opts) }

// IsRTLText reports whether more than 30% of the non-space runes of s are RTL
func IsRTLText(s string) bool { return text.IsRTLText(s) }

// TextDirection returns rtl or ltr for s using IsRTLText
func TextDirection(s string) Direction { return text.TextDirection(s) }

// ParseMode converts a configuration value to a Mode; unknown values are auto
func ParseMode(s string) Mode { return style.ParseMode(s) }

// NewInjector returns an injector with no styles applied
func NewInjector() *Injector { return inject.New() }

// Client runs detection, annotation, preview and reports with one set of
// options. It is safe for concurrent use.
type Client struct {
	options  Options
	loader   *res.Loader
	detector *text.Detector
	logger   *slog.Logger
}

// New creates a client with default options modified by opts
func New(opts ...Option) *Client {
	options := DefaultOptions()
	for _, o := range opts {
		o(&options)
	}
	return NewWithOptions(options)
}

// NewWithOptions creates a client with the specified options
func NewWithOptions(options Options) *Client {
	logger := options.Logger
	if logger == nil {
		if options.Debug {
			logger = logging.New(os.Stderr, false, slog.LevelDebug)
		} else {
			logger = slog.Default()
		}
	}

	detector := text.NewDetector()
	if options.Debug {
		detector.Logger = logger
	}

	c := &Client{
		options:  options,
		detector: detector,
		logger:   logger,
	}
	c.loader = c.newLoader("")
	return c
}

// Options returns a copy of the client's options
func (c *Client) Options() Options {
	return c.options
}

// WithOption returns a new client with the specified option set
func (c *Client) WithOption(option Option) *Client {
	newOptions := c.options
	option(&newOptions)
	return NewWithOptions(newOptions)
}

// Detector returns the client's detector
func (c *Client) Detector() *Detector {
	return c.detector
}

// Detect classifies s with the client's detector
func (c *Client) Detect(s string) DetectionResult {
	return c.detector.Detect(s)
}

// Styles returns the stylesheet for the client's options
func (c *Client) Styles() string {
	return style.GenerateRTLStyles(c.options.StyleOptions())
}

// Annotate marks the message elements of htmlContent with dir and lang and
// writes the document to output. With embedStyles the stylesheet is added
// to head.
func (c *Client) Annotate(htmlContent string, output io.Writer, embedStyles bool) (AnnotateStats, error) {
	a := &annotate.Annotator{
		Detector: c.detector,
		Targets:  c.options.Targets,
		Logger:   c.logger,
	}
	if embedStyles {
		a.Stylesheet = c.Styles()
	}

	stats, err := a.AnnotateHTML(strings.NewReader(htmlContent), output)
	if err != nil {
		return stats, fmt.Errorf("failed to annotate HTML: %w", err)
	}
	return stats, nil
}

// AnnotateLocation annotates the document at a file path or URL
func (c *Client) AnnotateLocation(location string, output io.Writer, embedStyles bool) (AnnotateStats, error) {
	content, _, err := c.loadDocument(location)
	if err != nil {
		return AnnotateStats{}, err
	}
	return c.Annotate(content, output, embedStyles)
}

// Preview reports the resolved direction of every element of htmlContent
// after applying the document's own stylesheets followed by the generated one
func (c *Client) Preview(htmlContent string) ([]ElementDirection, error) {
	return c.preview(htmlContent, c.loader)
}

func (c *Client) preview(htmlContent string, loader *res.Loader) ([]ElementDirection, error) {
	doc, err := html.NewParser().ParseString(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	cssParser := css.NewParser()
	engine := style.NewStyleEngine()

	for _, cssText := range collectDocumentStylesheets(doc.Root, loader, c.logger) {
		if sheet, parseErr := cssParser.ParseString(cssText); parseErr == nil {
			engine.AddStylesheet(sheet)
		} else {
			c.logger.Debug("skipping document stylesheet", "error", parseErr)
		}
	}

	generated, err := cssParser.ParseString(c.Styles())
	if err != nil {
		return nil, fmt.Errorf("failed to parse generated CSS: %w", err)
	}
	engine.AddStylesheet(generated)

	return engine.Preview(doc), nil
}

// PreviewLocation previews the document at a file path or URL
func (c *Client) PreviewLocation(location string) ([]ElementDirection, error) {
	content, loader, err := c.loadDocument(location)
	if err != nil {
		return nil, err
	}
	return c.preview(content, loader)
}

// ReportOptions selects the report's font and logo by file path or URL
type ReportOptions struct {
	Font string
	Logo string
}

// Report classifies each non-empty line and writes a PDF report to output
func (c *Client) Report(lines []string, output io.Writer, ro ReportOptions) error {
	var samples []Sample
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		samples = append(samples, Sample{Text: line, Result: c.detector.Detect(line)})
	}

	renderOptions := pdf.RenderOptions{
		Title:       c.options.Title,
		Author:      c.options.Author,
		Subject:     c.options.Subject,
		Creator:     "rtlagents",
		Orientation: "P",
	}
	if c.options.PageOrientation == PageOrientationLandscape {
		renderOptions.Orientation = "L"
	}

	if ro.Font != "" {
		font, err := c.loader.LoadFont(ro.Font)
		if err != nil {
			return fmt.Errorf("failed to load font: %w", err)
		}
		renderOptions.Font = font.Data
	}
	if ro.Logo != "" {
		logo, err := c.loader.LoadImage(ro.Logo)
		if err != nil {
			return fmt.Errorf("failed to load logo: %w", err)
		}
		renderOptions.Logo = logo.Data
	}

	renderer := pdf.NewRenderer()
	renderer.Logger = c.logger
	if err := renderer.Render(output, samples, renderOptions); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}

// ReportToFile writes the report to outputPath, creating its directory
func (c *Client) ReportToFile(lines []string, outputPath string, ro ReportOptions) error {
	var buf bytes.Buffer
	if err := c.Report(lines, &buf, ro); err != nil {
		return err
	}

	outputDir := filepath.Dir(outputPath)
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// ReadLines loads a text document by path or URL and splits it into lines
func (c *Client) ReadLines(location string) ([]string, error) {
	r, err := c.newLoader("").LoadText(location)
	if err != nil {
		return nil, fmt.Errorf("failed to load text: %w", err)
	}
	return strings.Split(strings.ReplaceAll(r.String(), "\r\n", "\n"), "\n"), nil
}

// loadDocument loads HTML and returns a loader based on its location so
// that linked stylesheets resolve
func (c *Client) loadDocument(location string) (string, *res.Loader, error) {
	if !strings.Contains(location, "://") && !strings.HasPrefix(location, "data:") {
		abs, err := filepath.Abs(location)
		if err != nil {
			return "", nil, fmt.Errorf("failed to resolve %s: %w", location, err)
		}
		location = abs
	}
	loader := c.newLoader(location)
	r, err := loader.LoadHTML(location)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load HTML: %w", err)
	}
	return r.String(), loader, nil
}

func (c *Client) newLoader(base string) *res.Loader {
	loader := res.NewLoader(base)
	loader.Logger = c.logger
	for _, path := range c.options.ResourcePaths {
		loader.AddSearchPath(path)
	}
	for _, dir := range c.options.FontDirectories {
		loader.AddSearchPath(dir)
	}
	return loader
}

// collectDocumentStylesheets walks the HTML node tree in document order and
// returns the author stylesheets (external <link rel="stylesheet"> and inline
// <style> blocks) preserving source order
func collectDocumentStylesheets(n *html.Node, loader *res.Loader, logger *slog.Logger) []string {
	var styles []string

	n.Walk(func(cur *html.Node) bool {
		if !cur.IsElement() {
			return true
		}

		switch strings.ToLower(cur.Data) {
		case "link":
			rel, _ := cur.AttrValue("rel")
			href, _ := cur.AttrValue("href")
			if href == "" || !strings.Contains(strings.ToLower(rel), "stylesheet") {
				return true
			}
			if r, err := loader.LoadCSS(href); err == nil {
				styles = append(styles, r.String())
			} else {
				logger.Debug("failed to load external stylesheet", "href", href, "error", err)
			}
		case "style":
			if cssText := strings.TrimSpace(cur.Text()); cssText != "" {
				styles = append(styles, cssText)
			}
			return false
		}
		return true
	})

	return styles
}
