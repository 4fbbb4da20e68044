// Package imagemeta resolves <img> references of loaded pages into image
// records carrying each file's intrinsic pixel dimensions.
package imagemeta

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/sitecheck/document"
)

// ErrMissingSrc is recorded for an <img> without a src attribute.
var ErrMissingSrc = errors.New("img has no src attribute")

// ImageRecord describes one <img> element of one page.
type ImageRecord struct {
	// Page is the owning document name
	Page string `json:"page"`
	// Src is the src attribute as written in the markup
	Src string `json:"src"`
	// Path is Src with one leading "../" removed; empty for hotlinks
	Path string `json:"path,omitempty"`
	// Intrinsic holds the on-disk pixel dimensions; zero for hotlinks
	Intrinsic Size `json:"intrinsic"`
	// Declared holds the width/height attributes
	Declared Declared `json:"declared"`
	// CheckDimensions is false for exempt images (SVGs, hero images)
	CheckDimensions bool `json:"check_dimensions"`
	// Hotlink is true when Src is an absolute network URL
	Hotlink bool `json:"hotlink"`
	// Err is set when the local file could not be read or decoded
	Err error `json:"-"`

	Element document.Element `json:"-"`
}

// Declared holds the width and height attributes of an <img>.
type Declared struct {
	Width     int  `json:"width"`
	Height    int  `json:"height"`
	HasWidth  bool `json:"has_width"`
	HasHeight bool `json:"has_height"`
}

// Resolved reports whether intrinsic dimensions are available.
func (r ImageRecord) Resolved() bool {
	return !r.Hotlink && r.Err == nil
}

// Resolver builds ImageRecords for a site.
type Resolver struct {
	root   string
	exempt []string
	logger *slog.Logger
}

// NewResolver creates a resolver reading image files below root. Images whose
// normalized path matches any exempt glob skip dimension checks.
func NewResolver(root string, exempt []string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{root: root, exempt: exempt, logger: logger}
}

// Resolve returns one record per <img> across all present pages, ordered by
// page then by element position. Images used on several pages appear once
// per use.
func (r *Resolver) Resolve(site *document.Site) []ImageRecord {
	var records []ImageRecord
	for _, doc := range site.Present() {
		records = append(records, r.ResolveDocument(doc)...)
	}
	return records
}

// ResolveDocument returns the records for a single page.
func (r *Resolver) ResolveDocument(doc *document.Document) []ImageRecord {
	imgs := doc.QueryAll("img")
	records := make([]ImageRecord, 0, len(imgs))
	for _, img := range imgs {
		records = append(records, r.resolve(doc.Name, img))
	}
	return records
}

func (r *Resolver) resolve(page string, img document.Element) ImageRecord {
	src, hasSrc := img.Attr("src")
	rec := ImageRecord{
		Page:     page,
		Src:      src,
		Declared: declared(img),
		Element:  img,
	}

	if IsHotlink(src) {
		rec.Hotlink = true
		return rec
	}

	rec.Path = NormalizePath(src)
	rec.CheckDimensions = !r.Exempt(rec.Path)

	if !hasSrc || rec.Path == "" {
		rec.Err = ErrMissingSrc
		return rec
	}

	size, err := ReadSize(filepath.Join(r.root, filepath.FromSlash(rec.Path)))
	if !rec.CheckDimensions && errors.Is(err, ErrUnsized) {
		// Exempt vector images need no intrinsic size.
		r.logger.Debug("image has no absolute size",
			slog.String("page", page),
			slog.String("path", rec.Path))
		return rec
	}
	if err != nil {
		r.logger.Warn("could not read image dimensions",
			slog.String("page", page),
			slog.String("path", rec.Path),
			slog.String("error", err.Error()))
		rec.Err = err
		return rec
	}
	rec.Intrinsic = size
	return rec
}

// Exempt reports whether path matches an exemption glob.
func (r *Resolver) Exempt(path string) bool {
	for _, pattern := range r.exempt {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// IsHotlink reports whether src points at a remote resource.
func IsHotlink(src string) bool {
	return strings.HasPrefix(src, "http")
}

// NormalizePath strips one leading parent-directory segment so that
// "../images/a.png" from a nested page and "images/a.png" from the root page
// name the same file.
func NormalizePath(src string) string {
	return strings.TrimPrefix(src, "../")
}

func declared(img document.Element) Declared {
	var d Declared
	if v, ok := img.Attr("width"); ok {
		d.HasWidth = true
		d.Width = parseDimension(v)
	}
	if v, ok := img.Attr("height"); ok {
		d.HasHeight = true
		d.Height = parseDimension(v)
	}
	return d
}

func parseDimension(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
