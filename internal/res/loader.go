package res

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotFound is returned when a local resource exists neither at its path
// nor in any search path
var ErrNotFound = errors.New("resource not found")

// Type classifies a loaded resource
type Type int

const (
	TypeOther Type = iota
	TypeText
	TypeHTML
	TypeCSS
	TypeFont
	TypeImage
)

func (t Type) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeHTML:
		return "html"
	case TypeCSS:
		return "css"
	case TypeFont:
		return "font"
	case TypeImage:
		return "image"
	default:
		return "other"
	}
}

// Resource is a loaded input document, font or image
type Resource struct {
	URL      string
	Type     Type
	Data     []byte
	MimeType string
}

// String returns the resource data as a string
func (r *Resource) String() string {
	return string(r.Data)
}

// Loader loads resources from local paths, http(s) URLs and data URLs.
// Results are cached by the requested location. It is safe for concurrent use.
type Loader struct {
	// BaseURL resolves relative locations; a file path or an http(s) URL
	BaseURL string

	Client *http.Client
	Logger *slog.Logger

	mu          sync.RWMutex
	cache       map[string]*Resource
	searchPaths []string
}

// NewLoader creates a loader resolving relative locations against baseURL
func NewLoader(baseURL string) *Loader {
	return &Loader{
		BaseURL: baseURL,
		Client:  http.DefaultClient,
		cache:   make(map[string]*Resource),
	}
}

// AddSearchPath adds a directory tried, by base name, when a local file is
// missing
func (l *Loader) AddSearchPath(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.searchPaths = append(l.searchPaths, path)
}

// Load loads the resource at location
func (l *Loader) Load(location string) (*Resource, error) {
	l.mu.RLock()
	if r, ok := l.cache[location]; ok {
		l.mu.RUnlock()
		return r, nil
	}
	l.mu.RUnlock()

	var (
		r   *Resource
		err error
	)
	switch {
	case strings.HasPrefix(location, "data:"):
		r, err = parseDataURL(location)
	default:
		var resolved string
		resolved, err = l.resolve(location)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", location, err)
		}
		if isRemote(resolved) {
			r, err = l.loadRemote(resolved)
		} else {
			r, err = l.loadLocal(resolved)
		}
	}
	if err != nil {
		return nil, err
	}

	l.logger().Debug("loaded resource", "url", r.URL, "type", r.Type, "bytes", len(r.Data))

	l.mu.Lock()
	l.cache[location] = r
	l.mu.Unlock()

	return r, nil
}

// LoadText loads a plain text resource. HTML and CSS count as text.
func (l *Loader) LoadText(location string) (*Resource, error) {
	return l.loadAs(location, TypeText, TypeHTML, TypeCSS, TypeOther)
}

// LoadHTML loads an HTML document. Resources of unknown type are accepted.
func (l *Loader) LoadHTML(location string) (*Resource, error) {
	return l.loadAs(location, TypeHTML, TypeText, TypeOther)
}

// LoadCSS loads a stylesheet
func (l *Loader) LoadCSS(location string) (*Resource, error) {
	return l.loadAs(location, TypeCSS)
}

// LoadFont loads a font file
func (l *Loader) LoadFont(location string) (*Resource, error) {
	return l.loadAs(location, TypeFont)
}

// LoadImage loads an image
func (l *Loader) LoadImage(location string) (*Resource, error) {
	return l.loadAs(location, TypeImage)
}

func (l *Loader) loadAs(location string, accept ...Type) (*Resource, error) {
	r, err := l.Load(location)
	if err != nil {
		return nil, err
	}
	for _, t := range accept {
		if r.Type == t {
			return r, nil
		}
	}
	return nil, fmt.Errorf("resource %s is %s, want %s", location, r.Type, accept[0])
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

func isRemote(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// parseDataURL parses a data URL (RFC 2397), e.g.
//
//	data:image/png;base64,<base64>
//	data:text/plain,Hello%20World
func parseDataURL(u string) (*Resource, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(u, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("invalid data URL")
	}

	mime := "text/plain"
	isBase64 := false
	if meta != "" {
		comps := strings.Split(meta, ";")
		if comps[0] != "" {
			mime = strings.ToLower(comps[0])
		}
		for _, c := range comps[1:] {
			if strings.EqualFold(strings.TrimSpace(c), "base64") {
				isBase64 = true
			}
		}
	}

	var data []byte
	if isBase64 {
		d, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 data URL: %w", err)
		}
		data = d
	} else if d, err := url.PathUnescape(payload); err == nil {
		data = []byte(d)
	} else {
		data = []byte(payload)
	}

	return &Resource{
		URL:      u,
		Type:     typeOf(mime, ""),
		Data:     data,
		MimeType: mime,
	}, nil
}

// resolve resolves location against BaseURL
func (l *Loader) resolve(location string) (string, error) {
	if isRemote(location) || filepath.IsAbs(location) {
		return location, nil
	}

	if l.BaseURL == "" {
		return location, nil
	}

	if !isRemote(l.BaseURL) {
		return filepath.Join(filepath.Dir(l.BaseURL), location), nil
	}

	base, err := url.Parse(l.BaseURL)
	if err != nil {
		return "", err
	}
	rel, err := url.Parse(location)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(rel).String(), nil
}

func (l *Loader) loadRemote(location string) (*Resource, error) {
	resp, err := l.Client.Get(location)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP error: %s", location, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", location, err)
	}

	mime := resp.Header.Get("Content-Type")
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}

	return &Resource{
		URL:      location,
		Type:     typeOf(mime, location),
		Data:     data,
		MimeType: mime,
	}, nil
}

func (l *Loader) loadLocal(path string) (*Resource, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return l.loadFromSearchPaths(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return localResource(path, data), nil
}

func (l *Loader) loadFromSearchPaths(path string) (*Resource, error) {
	l.mu.RLock()
	paths := append([]string(nil), l.searchPaths...)
	l.mu.RUnlock()

	name := filepath.Base(path)
	for _, dir := range paths {
		candidate := filepath.Join(dir, name)
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		return localResource(candidate, data), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

func localResource(path string, data []byte) *Resource {
	mime := mimeTypeOf(path)
	return &Resource{
		URL:      path,
		Type:     typeOf(mime, path),
		Data:     data,
		MimeType: mime,
	}
}

// mimeTypeOf guesses the MIME type from the file extension
func mimeTypeOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return "text/plain"
	case ".html", ".htm":
		return "text/html"
	case ".css":
		return "text/css"
	case ".ttf":
		return "font/ttf"
	case ".otf":
		return "font/otf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".tiff", ".tif":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}

func typeOf(mime, path string) Type {
	switch {
	case mime == "text/html" || mime == "application/xhtml+xml":
		return TypeHTML
	case mime == "text/css":
		return TypeCSS
	case strings.HasPrefix(mime, "text/"):
		return TypeText
	case strings.HasPrefix(mime, "font/"):
		return TypeFont
	case strings.HasPrefix(mime, "image/"):
		return TypeImage
	}

	if path != "" {
		if ext := mimeTypeOf(path); ext != "application/octet-stream" {
			return typeOf(ext, "")
		}
	}
	return TypeOther
}
