// Package report renders suite reports and run metrics.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/c360studio/sitecheck/suite"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatText is the line-oriented terminal format.
	FormatText Format = "text"

	// FormatJSON is the report encoded as JSON.
	FormatJSON Format = "json"

	// FormatMarkdown is a summary table with failure sections.
	FormatMarkdown Format = "markdown"
)

// FormatInfo provides metadata about a report format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string

	write func(w io.Writer, r *suite.Report, opts Options) error
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatText: {
		Name:        FormatText,
		MIMEType:    "text/plain",
		Extension:   ".txt",
		Description: "Plain text - one line per assertion",
		write:       writeText,
	},
	FormatJSON: {
		Name:        FormatJSON,
		MIMEType:    "application/json",
		Extension:   ".json",
		Description: "JSON - the full report",
		write:       writeJSON,
	},
	FormatMarkdown: {
		Name:        FormatMarkdown,
		MIMEType:    "text/markdown",
		Extension:   ".md",
		Description: "Markdown - summary table and failures",
		write:       writeMarkdown,
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// Formats returns the registered format names sorted.
func Formats() []string {
	names := make([]string, 0, len(FormatRegistry))
	for name := range FormatRegistry {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

// Options controls rendering.
type Options struct {
	// Verbose includes passing assertions in text output
	Verbose bool
}

// Write renders r to w in the given format.
func Write(w io.Writer, format Format, r *suite.Report, opts Options) error {
	info, ok := GetFormatInfo(format)
	if !ok {
		return fmt.Errorf("unknown report format %q", format)
	}
	if err := info.write(w, r, opts); err != nil {
		return fmt.Errorf("write %s report: %w", format, err)
	}
	return nil
}
