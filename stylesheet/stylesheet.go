// Package stylesheet loads the project stylesheet and checks its text for
// required rules.
//
// Rule checks are textual: each requirement is a regular expression matched
// against the raw stylesheet, so they depend on conventional formatting
// (one declaration per line, selector and brace on the same line). Parse
// offers a tree-sitter view of the same text for syntax diagnostics.
package stylesheet

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Stylesheet is the raw text of the project stylesheet.
type Stylesheet struct {
	// Path is the stylesheet path relative to the site root
	Path string
	// Text is the file content
	Text string
}

// Load reads the stylesheet at root/path. A missing file is not an error:
// Load returns nil, nil and callers treat nil as absent.
func Load(root, path string) (*Stylesheet, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read stylesheet %s: %w", path, err)
	}
	return &Stylesheet{Path: filepath.ToSlash(path), Text: string(data)}, nil
}
