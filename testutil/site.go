// Package testutil provides fixture sites for tests.
//
// NewConformingSite writes a site that passes every check group with every
// gate enabled. Tests break one rule at a time with WriteFile, Replace or
// Remove and assert on the resulting diagnostics.
//
// Usage:
//
//	site := testutil.NewConformingSite(t)
//	site.Replace("index.html", `href="about/"`, `href="./about/"`)
//	cfg := site.Config()
package testutil

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/c360studio/sitecheck/config"
)

// Site is a temporary site directory.
type Site struct {
	t    testing.TB
	Root string
}

// NewSite returns an empty site rooted in a temporary directory.
func NewSite(t testing.TB) *Site {
	t.Helper()
	return &Site{t: t, Root: t.TempDir()}
}

// NewConformingSite returns a site that satisfies every check.
func NewConformingSite(t testing.TB) *Site {
	t.Helper()
	s := NewSite(t)
	s.WriteFile("index.html", IndexHTML)
	s.WriteFile("about/index.html", AboutHTML)
	s.WriteFile("contact/index.html", ContactHTML)
	s.WriteFile("styles/main.css", MainCSS)
	s.WritePNG("images/hero-banner.png", 600, 200)
	s.WritePNG("images/design.png", 40, 30)
	s.WritePNG("images/team-400.png", 400, 300)
	s.WriteSVG("images/map.svg", 120, 80)
	return s
}

// Config returns the default configuration rooted at the site with every
// check gate enabled.
func (s *Site) Config() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Site.Root = s.Root
	for _, flag := range cfg.Checks.Flags() {
		*flag = true
	}
	return cfg
}

// Path returns the absolute path of a site-relative file.
func (s *Site) Path(rel string) string {
	return filepath.Join(s.Root, filepath.FromSlash(rel))
}

// WriteFile writes content to a site-relative path, creating directories.
func (s *Site) WriteFile(rel, content string) {
	s.t.Helper()
	s.write(rel, []byte(content))
}

// Replace rewrites a file, replacing every occurrence of old with repl. The
// test fails when old does not occur.
func (s *Site) Replace(rel, old, repl string) {
	s.t.Helper()
	data, err := os.ReadFile(s.Path(rel))
	if err != nil {
		s.t.Fatalf("read %s: %v", rel, err)
	}
	if !strings.Contains(string(data), old) {
		s.t.Fatalf("%s does not contain %q", rel, old)
	}
	s.write(rel, []byte(strings.ReplaceAll(string(data), old, repl)))
}

// Remove deletes a site-relative file.
func (s *Site) Remove(rel string) {
	s.t.Helper()
	if err := os.Remove(s.Path(rel)); err != nil {
		s.t.Fatalf("remove %s: %v", rel, err)
	}
}

// WritePNG writes a solid PNG with the given dimensions.
func (s *Site) WritePNG(rel string, width, height int) {
	s.t.Helper()
	path := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		s.t.Fatalf("mkdir for %s: %v", rel, err)
	}
	f, err := os.Create(path)
	if err != nil {
		s.t.Fatalf("create %s: %v", rel, err)
	}
	defer f.Close()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	if err := png.Encode(f, img); err != nil {
		s.t.Fatalf("encode %s: %v", rel, err)
	}
}

// WriteSVG writes a minimal SVG with width and height attributes.
func (s *Site) WriteSVG(rel string, width, height int) {
	s.t.Helper()
	s.WriteFile(rel, svgDoc(width, height))
}

func (s *Site) write(rel string, data []byte) {
	s.t.Helper()
	path := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		s.t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		s.t.Fatalf("write %s: %v", rel, err)
	}
}
