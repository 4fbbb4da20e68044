// Package config provides configuration loading and management for sitecheck.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Config represents the complete sitecheck configuration
type Config struct {
	Site        SiteConfig        `yaml:"site"`
	Checks      ChecksConfig      `yaml:"checks"`
	Images      ImagesConfig      `yaml:"images"`
	Stylesheets StylesheetsConfig `yaml:"stylesheets"`
	Output      OutputConfig      `yaml:"output"`
}

// SiteConfig describes the files that make up the checked site
type SiteConfig struct {
	// Root is the site root directory; page paths are relative to it
	Root string `yaml:"root"`
	// Stylesheet is the project stylesheet path relative to Root
	Stylesheet string `yaml:"stylesheet"`
	// Pages lists the checked pages. The first entry is the primary page.
	Pages []Page `yaml:"pages"`
}

// Page identifies one markup file of the site
type Page struct {
	// Name is the page identifier used in diagnostics (e.g., "main")
	Name string `yaml:"name"`
	// Path is the markup file path relative to the site root
	Path string `yaml:"path"`
}

// Depth returns how many directories below the site root the page lives.
func (p Page) Depth() int {
	clean := filepath.ToSlash(filepath.Clean(p.Path))
	return strings.Count(clean, "/")
}

// ChecksConfig gates the optional assertion groups
type ChecksConfig struct {
	CSS       bool `yaml:"css"`
	Fonts     bool `yaml:"fonts"`
	InlineSVG bool `yaml:"inline_svg"`
	Form      bool `yaml:"form"`
	Button    bool `yaml:"button"`
	Panels    bool `yaml:"panels"`
	Hero      bool `yaml:"hero"`
	Cards     bool `yaml:"cards"`
	Flex      bool `yaml:"flex"`
}

// Flags returns the check gates keyed by their configuration name.
func (c *ChecksConfig) Flags() map[string]*bool {
	return map[string]*bool{
		"css":        &c.CSS,
		"fonts":      &c.Fonts,
		"inline_svg": &c.InlineSVG,
		"form":       &c.Form,
		"button":     &c.Button,
		"panels":     &c.Panels,
		"hero":       &c.Hero,
		"cards":      &c.Cards,
		"flex":       &c.Flex,
	}
}

// FlagNames returns the check gate names in sorted order.
func (c *ChecksConfig) FlagNames() []string {
	flags := c.Flags()
	names := make([]string, 0, len(flags))
	for name := range flags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set enables or disables the named check gate.
func (c *ChecksConfig) Set(name string, enabled bool) error {
	flag, ok := c.Flags()[name]
	if !ok {
		return fmt.Errorf("unknown check %q", name)
	}
	*flag = enabled
	return nil
}

// ImagesConfig configures image path and geometry rules
type ImagesConfig struct {
	// Dir is the canonical images directory relative to the site root
	Dir string `yaml:"dir"`
	// MaxWidth is the largest allowed intrinsic width in pixels
	MaxWidth int `yaml:"max_width"`
	// Exempt lists doublestar globs; matching images skip dimension checks
	Exempt []string `yaml:"exempt"`
}

// StylesheetsConfig configures the <link rel="stylesheet"> ordering rules
type StylesheetsConfig struct {
	// ResetPattern is a regular expression the first stylesheet href must match
	ResetPattern string `yaml:"reset_pattern"`
	// FontPattern is a regular expression identifying web-font stylesheets
	FontPattern string `yaml:"font_pattern"`
}

// OutputConfig configures reporting
type OutputConfig struct {
	// Format is the report format: text, json or markdown
	Format string `yaml:"format"`
	// Verbose includes passing assertions in text output
	Verbose bool `yaml:"verbose"`
	// MetricsFile is a Prometheus textfile path (empty = disabled)
	MetricsFile string `yaml:"metrics_file"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Root:       ".",
			Stylesheet: "styles/main.css",
			Pages: []Page{
				{Name: "main", Path: "index.html"},
				{Name: "about", Path: "about/index.html"},
				{Name: "contact", Path: "contact/index.html"},
			},
		},
		Checks: ChecksConfig{
			CSS:       true,
			Fonts:     true,
			InlineSVG: false,
			Form:      false,
			Button:    true,
			Panels:    false,
			Hero:      false,
			Cards:     false,
			Flex:      false,
		},
		Images: ImagesConfig{
			Dir:      "images",
			MaxWidth: 2000,
			Exempt:   []string{"**/*svg", "**/*hero*", "**/*hero*/**"},
		},
		Stylesheets: StylesheetsConfig{
			ResetPattern: "normalize",
			FontPattern:  `fonts\.googleapis\.com`,
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Site.Root == "" {
		return fmt.Errorf("site.root is required")
	}
	if c.Site.Stylesheet == "" {
		return fmt.Errorf("site.stylesheet is required")
	}
	if len(c.Site.Pages) == 0 {
		return fmt.Errorf("site.pages must list at least the primary page")
	}
	seen := make(map[string]bool)
	for i, p := range c.Site.Pages {
		if p.Name == "" || p.Path == "" {
			return fmt.Errorf("site.pages[%d] requires name and path", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("site.pages[%d]: duplicate page name %q", i, p.Name)
		}
		seen[p.Name] = true
	}
	if c.Images.Dir == "" {
		return fmt.Errorf("images.dir is required")
	}
	if c.Images.MaxWidth <= 0 {
		return fmt.Errorf("images.max_width must be positive")
	}
	for _, pattern := range c.Images.Exempt {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("images.exempt: invalid pattern %q", pattern)
		}
	}
	if _, err := regexp.Compile(c.Stylesheets.ResetPattern); err != nil {
		return fmt.Errorf("stylesheets.reset_pattern: %w", err)
	}
	if _, err := regexp.Compile(c.Stylesheets.FontPattern); err != nil {
		return fmt.Errorf("stylesheets.font_pattern: %w", err)
	}
	switch c.Output.Format {
	case "text", "json", "markdown":
	default:
		return fmt.Errorf("output.format must be one of text, json, markdown (got %q)", c.Output.Format)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()
	if err := config.MergeFile(path); err != nil {
		return nil, err
	}
	return config, nil
}

// MergeFile decodes a YAML file onto c. Keys absent from the file keep
// their current values, which lets boolean gates be layered.
func (c *Config) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// PrimaryPage returns the page whose absence short-circuits the suite. An
// unvalidated config without pages yields the default primary page.
func (c *Config) PrimaryPage() Page {
	if len(c.Site.Pages) == 0 {
		return DefaultConfig().Site.Pages[0]
	}
	return c.Site.Pages[0]
}
