package stylesheet

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"
)

// SyntaxError is a position the CSS grammar could not parse.
type SyntaxError struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Text   string `json:"text"`
	// Missing is set when the parser inserted a token the source lacked
	Missing bool `json:"missing,omitempty"`
}

func (e SyntaxError) String() string {
	if e.Missing {
		return fmt.Sprintf("%d:%d: missing %s", e.Line, e.Column, e.Text)
	}
	return fmt.Sprintf("%d:%d: unexpected %q", e.Line, e.Column, e.Text)
}

// Syntax summarizes a tree-sitter parse of a stylesheet.
type Syntax struct {
	RuleSets     int           `json:"rule_sets"`
	AtRules      int           `json:"at_rules"`
	Declarations int           `json:"declarations"`
	Errors       []SyntaxError `json:"errors,omitempty"`
}

// Clean reports whether the parse produced no error or missing nodes.
func (s *Syntax) Clean() bool {
	return len(s.Errors) == 0
}

// Parse runs the tree-sitter CSS grammar over text.
func Parse(ctx context.Context, text string) (*Syntax, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	content := []byte(text)

	parser := sitter.NewParser()
	parser.SetLanguage(css.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse stylesheet: %w", err)
	}
	defer tree.Close()

	syntax := &Syntax{}
	walk(tree.RootNode(), content, syntax)
	return syntax, nil
}

func walk(node *sitter.Node, content []byte, syntax *Syntax) {
	if node == nil {
		return
	}

	nodeType := node.Type()
	switch {
	case nodeType == "ERROR":
		syntax.Errors = append(syntax.Errors, syntaxError(node, content, false))
		// Errors nest; report the outermost one only.
		return
	case node.IsMissing():
		syntax.Errors = append(syntax.Errors, syntaxError(node, content, true))
		return
	case nodeType == "rule_set":
		syntax.RuleSets++
	case nodeType == "declaration":
		syntax.Declarations++
	case nodeType == "at_rule" || strings.HasSuffix(nodeType, "_statement"):
		syntax.AtRules++
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walk(node.Child(i), content, syntax)
	}
}

func syntaxError(node *sitter.Node, content []byte, missing bool) SyntaxError {
	point := node.StartPoint()
	text := node.Type()
	if !missing {
		text = node.Content(content)
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[:i]
		}
		if len(text) > 40 {
			text = text[:40]
		}
	}
	return SyntaxError{
		Line:    int(point.Row) + 1,
		Column:  int(point.Column) + 1,
		Text:    strings.TrimSpace(text),
		Missing: missing,
	}
}
