// Package rtlagents detects right-to-left text in chat and agent output and
// generates the CSS that lays it out correctly.
package rtlagents

import (
	"github.com/rtl-agents/rtlagents/pkg/api"
)

type Client = api.Client
type Options = api.Options
type Option = api.Option
type PageOrientation = api.PageOrientation
type ReportOptions = api.ReportOptions

type Direction = api.Direction
type ScriptClass = api.ScriptClass
type DetectionResult = api.DetectionResult
type Detector = api.Detector
type Mode = api.Mode
type StyleOptions = api.StyleOptions
type ElementDirection = api.ElementDirection
type Message = api.Message
type Injector = api.Injector
type AnnotateStats = api.AnnotateStats

func New(opts ...Option) *Client             { return api.New(opts...) }
func NewWithOptions(options Options) *Client { return api.NewWithOptions(options) }
func DefaultOptions() Options                { return api.DefaultOptions() }
func NewInjector() *Injector                 { return api.NewInjector() }

func Detect(text string) DetectionResult      { return api.Detect(text) }
func IsRTL(text string) bool                  { return api.IsRTL(text) }
func CSSDirection(text string) Direction      { return api.CSSDirection(text) }
func ClearCache()                             { api.ClearCache() }
func GenerateRTLStyles(o StyleOptions) string { return api.GenerateRTLStyles(o) }
func IsRTLText(text string) bool              { return api.IsRTLText(text) }
func TextDirection(text string) Direction     { return api.TextDirection(text) }

var (
	WithStyleOptions    = api.WithStyleOptions
	WithMode            = api.WithMode
	WithFontFamily      = api.WithFontFamily
	WithFontSize        = api.WithFontSize
	WithLineHeight      = api.WithLineHeight
	WithTargets         = api.WithTargets
	WithDebug           = api.WithDebug
	WithLogger          = api.WithLogger
	WithResourcePath    = api.WithResourcePath
	WithFontDirectory   = api.WithFontDirectory
	WithTitle           = api.WithTitle
	WithAuthor          = api.WithAuthor
	WithSubject         = api.WithSubject
	WithPageOrientation = api.WithPageOrientation
)

const (
	ModeAuto = api.ModeAuto
	ModeRTL  = api.ModeRTL
	ModeLTR  = api.ModeLTR

	PageOrientationPortrait  = api.PageOrientationPortrait
	PageOrientationLandscape = api.PageOrientationLandscape
)
