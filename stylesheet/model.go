package stylesheet

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// Model is the rule structure of a stylesheet, independent of its layout.
// Rule checks stay textual; the model only explains why a check failed on
// a stylesheet that does declare the property.
type Model struct {
	sheet *css.Stylesheet
}

// ParseModel parses text into rules and declarations.
func ParseModel(text string) (*Model, error) {
	sheet, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse stylesheet rules: %w", err)
	}
	return &Model{sheet: sheet}, nil
}

// Declares reports whether any rule whose selector list contains selector
// sets property. Rules nested in at-rules such as @media count.
func (m *Model) Declares(selector, property string) bool {
	return declares(m.sheet.Rules, selector, property)
}

// Selectors returns every qualified-rule selector in source order.
func (m *Model) Selectors() []string {
	var out []string
	walkRules(m.sheet.Rules, func(r *css.Rule) {
		out = append(out, r.Selectors...)
	})
	return out
}

// Important returns the declarations marked !important as "selector { property }".
func (m *Model) Important() []string {
	var out []string
	walkRules(m.sheet.Rules, func(r *css.Rule) {
		for _, d := range r.Declarations {
			if d.Important {
				out = append(out, fmt.Sprintf("%s { %s }", strings.Join(r.Selectors, ", "), d.Property))
			}
		}
	})
	return out
}

func declares(rules []*css.Rule, selector, property string) bool {
	found := false
	walkRules(rules, func(r *css.Rule) {
		if found || !hasSelector(r, selector) {
			return
		}
		for _, d := range r.Declarations {
			if strings.EqualFold(d.Property, property) {
				found = true
				return
			}
		}
	})
	return found
}

func hasSelector(r *css.Rule, selector string) bool {
	for _, s := range r.Selectors {
		if strings.Join(strings.Fields(s), " ") == selector {
			return true
		}
	}
	return false
}

func walkRules(rules []*css.Rule, fn func(*css.Rule)) {
	for _, r := range rules {
		if r.Kind == css.QualifiedRule {
			fn(r)
		}
		walkRules(r.Rules, fn)
	}
}
