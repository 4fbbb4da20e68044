package document

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/c360studio/sitecheck/config"
)

// ErrPageMissing is returned by LoadPage when the markup file does not exist.
var ErrPageMissing = errors.New("page not found")

// Site holds the loaded pages in configuration order. A nil entry in Pages
// is the absent sentinel for a page whose file could not be read.
type Site struct {
	Root  string
	Pages []*Document

	configured []config.Page
}

// LoadPage reads and parses one page below root.
func LoadPage(root string, page config.Page) (*Document, error) {
	path := filepath.Join(root, filepath.FromSlash(page.Path))
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", page.Path, ErrPageMissing)
		}
		return nil, fmt.Errorf("open %s: %w", page.Path, err)
	}
	defer f.Close()

	return Parse(page.Name, filepath.ToSlash(page.Path), page.Depth(), f)
}

// Load reads every configured page. Pages that cannot be read are logged and
// left nil; Load itself never fails.
func Load(root string, pages []config.Page, logger *slog.Logger) *Site {
	if logger == nil {
		logger = slog.Default()
	}

	site := &Site{
		Root:       root,
		Pages:      make([]*Document, len(pages)),
		configured: pages,
	}
	for i, page := range pages {
		doc, err := LoadPage(root, page)
		if err != nil {
			if errors.Is(err, ErrPageMissing) {
				logger.Warn("could not find html file",
					slog.String("page", page.Name),
					slog.String("path", page.Path))
			} else {
				logger.Warn("could not load html file",
					slog.String("page", page.Name),
					slog.String("error", err.Error()))
			}
			continue
		}
		logger.Debug("loaded page", slog.String("page", page.Name), slog.String("path", page.Path))
		site.Pages[i] = doc
	}
	return site
}

// Primary returns the primary page, or nil when it is absent.
func (s *Site) Primary() *Document {
	if len(s.Pages) == 0 {
		return nil
	}
	return s.Pages[0]
}

// Page returns the named page, or nil when it is absent or unknown.
func (s *Site) Page(name string) *Document {
	for i, page := range s.configured {
		if page.Name == name {
			return s.Pages[i]
		}
	}
	return nil
}

// Present returns the loaded pages in order, skipping absent ones.
func (s *Site) Present() []*Document {
	out := make([]*Document, 0, len(s.Pages))
	for _, doc := range s.Pages {
		if doc != nil {
			out = append(out, doc)
		}
	}
	return out
}

// Missing returns the configured pages that could not be loaded.
func (s *Site) Missing() []config.Page {
	var out []config.Page
	for i, doc := range s.Pages {
		if doc == nil {
			out = append(out, s.configured[i])
		}
	}
	return out
}
