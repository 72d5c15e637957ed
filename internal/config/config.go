package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/rtl-agents/rtlagents/internal/style"
)

// Config holds all rtlagents configuration.
type Config struct {
	Style   StyleConfig
	Report  ReportConfig
	Logging LoggingConfig
}

// StyleConfig holds the stylesheet defaults.
type StyleConfig struct {
	Mode       style.Mode
	FontFamily string
	FontSize   float64
	LineHeight float64
	Targets    []string
}

// ReportConfig holds PDF report settings.
type ReportConfig struct {
	FontDir string // searched for --font files given by name
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string // "debug", "info", "warn", "error"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Style: StyleConfig{
			Mode:       style.ParseMode(getenv("RTLAGENTS_MODE", string(style.ModeAuto))),
			FontFamily: os.Getenv("RTLAGENTS_FONT_FAMILY"),
			FontSize:   getenvFloat("RTLAGENTS_FONT_SIZE", 0),
			LineHeight: getenvFloat("RTLAGENTS_LINE_HEIGHT", 1.6),
			Targets:    getenvList("RTLAGENTS_TARGETS"),
		},
		Report: ReportConfig{
			FontDir: os.Getenv("RTLAGENTS_FONT_DIR"),
		},
		Logging: LoggingConfig{
			Level: getenv("RTLAGENTS_LOG_LEVEL", "info"),
		},
	}
}

// Options converts the style configuration to generator options.
func (c StyleConfig) Options() style.StyleOptions {
	return style.StyleOptions{
		Mode:       c.Mode,
		FontFamily: c.FontFamily,
		FontSize:   c.FontSize,
		LineHeight: c.LineHeight,
		Targets:    append([]string(nil), c.Targets...),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

// getenvList splits a comma-separated variable, dropping empty items.
// Selectors containing commas cannot be expressed.
func getenvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
