package api

import (
	"log/slog"

	"github.com/rtl-agents/rtlagents/internal/style"
)

// Options represents configuration options for detection, styling and reports
type Options struct {
	// Stylesheet generation
	Mode       style.Mode
	FontFamily string
	FontSize   float64
	LineHeight float64
	Targets    []string

	// Debug enables debug-level logging of cache evictions and
	// annotate/report progress
	Debug bool

	// Logger receives the client's records. When nil, Debug selects a
	// debug-level text logger on stderr, otherwise slog.Default is used.
	Logger *slog.Logger

	// Resource paths
	ResourcePaths   []string
	FontDirectories []string

	// Report metadata
	Title           string
	Author          string
	Subject         string
	PageOrientation PageOrientation
}

// Direction modes
const (
	ModeAuto = style.ModeAuto
	ModeRTL  = style.ModeRTL
	ModeLTR  = style.ModeLTR
)

// Option is a function that modifies Options
type Option func(*Options)

// PageOrientation represents page orientation
type PageOrientation string

const (
	// PageOrientationPortrait sets the page to portrait orientation
	PageOrientationPortrait PageOrientation = "portrait"
	// PageOrientationLandscape sets the page to landscape orientation
	PageOrientationLandscape PageOrientation = "landscape"
)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		Mode:            style.ModeAuto,
		LineHeight:      1.6,
		PageOrientation: PageOrientationPortrait,
		Title:           "RTL direction report",
	}
}

// StyleOptions returns the stylesheet generator options
func (o Options) StyleOptions() style.StyleOptions {
	return style.StyleOptions{
		Mode:       o.Mode,
		FontFamily: o.FontFamily,
		FontSize:   o.FontSize,
		LineHeight: o.LineHeight,
		Targets:    append([]string(nil), o.Targets...),
	}
}

// WithStyleOptions replaces every stylesheet option with opts
func WithStyleOptions(opts style.StyleOptions) Option {
	return func(o *Options) {
		o.Mode = opts.Mode
		o.FontFamily = opts.FontFamily
		o.FontSize = opts.FontSize
		o.LineHeight = opts.LineHeight
		o.Targets = append([]string(nil), opts.Targets...)
	}
}

// WithMode sets the direction mode
func WithMode(mode style.Mode) Option {
	return func(o *Options) {
		o.Mode = mode
	}
}

// WithFontFamily sets the forced font family
func WithFontFamily(family string) Option {
	return func(o *Options) {
		o.FontFamily = family
	}
}

// WithFontSize sets the forced font size in pixels
func WithFontSize(size float64) Option {
	return func(o *Options) {
		o.FontSize = size
	}
}

// WithLineHeight sets the line height
func WithLineHeight(lineHeight float64) Option {
	return func(o *Options) {
		o.LineHeight = lineHeight
	}
}

// WithTargets adds target selectors
func WithTargets(selectors ...string) Option {
	return func(o *Options) {
		o.Targets = append(o.Targets, selectors...)
	}
}

// WithDebug sets the debug mode
func WithDebug(debug bool) Option {
	return func(o *Options) {
		o.Debug = debug
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithResourcePath adds a path to search for resources
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(o.ResourcePaths, path)
	}
}

// WithFontDirectory adds a directory to search for fonts
func WithFontDirectory(dir string) Option {
	return func(o *Options) {
		o.FontDirectories = append(o.FontDirectories, dir)
	}
}

// WithTitle sets the report title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the report author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the report subject
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithPageOrientation sets the report page orientation
func WithPageOrientation(orientation PageOrientation) Option {
	return func(o *Options) {
		o.PageOrientation = orientation
	}
}
