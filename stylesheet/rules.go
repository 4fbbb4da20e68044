package stylesheet

import (
	"fmt"
	"regexp"
	"strings"
)

const importantRequirement = "no !important"

// Requirement is a single textual rule check.
type Requirement struct {
	Name        string         // Human-readable name
	Pattern     *regexp.Regexp // Pattern searched for in the stylesheet text
	Forbidden   bool           // The pattern must not occur
	MinMatches  int            // Minimum number of matches (0 or 1 = at least one)
	Description string         // Description for feedback

	// Selector and Property name the declaration the pattern looks for. When
	// set and the pattern fails, a parsed model is consulted for a hint.
	Selector string
	Property string
}

// Evaluate checks the requirement against text. When it fails, the returned
// string explains what is missing.
func (r Requirement) Evaluate(text string) (bool, string) {
	if r.Forbidden {
		if loc := r.Pattern.FindStringIndex(text); loc != nil {
			return false, fmt.Sprintf("%s: found %q", r.Description, text[loc[0]:loc[1]])
		}
		return true, ""
	}

	if r.MinMatches > 1 {
		n := len(r.Pattern.FindAllStringIndex(text, -1))
		if n < r.MinMatches {
			return false, fmt.Sprintf("%s: found %d, expected at least %d", r.Description, n, r.MinMatches)
		}
		return true, ""
	}

	if !r.Pattern.MatchString(text) {
		return false, r.Description
	}
	return true, ""
}

// hint explains a failure using the parsed model, or returns "".
func (r Requirement) hint(m *Model) string {
	switch {
	case r.Name == importantRequirement:
		if decls := m.Important(); len(decls) > 0 {
			return " (in " + strings.Join(decls, "; ") + ")"
		}
	case r.Selector != "" && m.Declares(r.Selector, r.Property):
		return fmt.Sprintf(" (a %s rule declares %s; check its formatting)", r.Selector, r.Property)
	}
	return ""
}

// RuleGroup bundles requirements reported as one assertion.
type RuleGroup struct {
	Name         string
	Requirements []Requirement
}

// Evaluate runs every requirement and returns the failure messages.
func (g RuleGroup) Evaluate(text string) []string {
	return g.Check(text, nil)
}

// Check is Evaluate with formatting hints taken from m, which may be nil.
func (g RuleGroup) Check(text string, m *Model) []string {
	var failures []string
	for _, req := range g.Requirements {
		ok, msg := req.Evaluate(text)
		if ok {
			continue
		}
		if m != nil {
			msg += req.hint(m)
		}
		failures = append(failures, msg)
	}
	return failures
}

// Rule groups checked whenever stylesheet checks are enabled.
var BaseRules = []RuleGroup{
	{
		Name: "!important never used",
		Requirements: []Requirement{
			{
				Name:        importantRequirement,
				Pattern:     regexp.MustCompile(`!important`),
				Forbidden:   true,
				Description: "do not use !important",
			},
		},
	},
	{
		Name: "global box-sizing rule set to border-box and :root contains CSS variables",
		Requirements: []Requirement{
			{
				Name:        "box-sizing",
				Pattern:     regexp.MustCompile(`\*,[^}]+box-sizing:\s*border-box`),
				Description: "universal selector rule with box-sizing: border-box not found",
				Selector:    "*",
				Property:    "box-sizing",
			},
			{
				Name:        ":root variables",
				Pattern:     regexp.MustCompile(`:root\s+\{\s*\n\s+--`),
				Description: ":root variables not found",
			},
		},
	},
	{
		Name: "font-family and color set in body",
		Requirements: []Requirement{
			{
				Name:        "body font-family",
				Pattern:     regexp.MustCompile(`body\s+\{[^}]+font-family:`),
				Description: "body rule does not set font-family",
				Selector:    "body",
				Property:    "font-family",
			},
			{
				Name:        "body color",
				Pattern:     regexp.MustCompile(`body\s+\{[^}]+color:`),
				Description: "body rule does not set color",
				Selector:    "body",
				Property:    "color",
			},
		},
	},
	{
		Name: "remove underlines from <a> and add :hover for all <a> that contain href attribute",
		Requirements: []Requirement{
			{
				Name:        "a text-decoration",
				Pattern:     regexp.MustCompile(`(?m)^a\s[^}]+text-decoration:\s+none`),
				Description: "a rule with text-decoration: none not found",
				Selector:    "a",
				Property:    "text-decoration",
			},
			{
				Name:        "a[href]:hover",
				Pattern:     regexp.MustCompile(`(?m)^a\[href\]:hover\s+\{\r?$`),
				Description: "a[href]:hover rule not found",
			},
		},
	},
	{
		Name: "CSS contains .button style and .button:hover declarations",
		Requirements: []Requirement{
			{
				Name:        ".button",
				Pattern:     regexp.MustCompile(`\.button\s*\{.*`),
				Description: ".button rule not found",
			},
			{
				Name:        ".button:hover",
				Pattern:     regexp.MustCompile(`\.button:hover\s*\{.*`),
				Description: ".button:hover rule not found",
			},
		},
	},
	{
		Name: "footer has styling including background-color",
		Requirements: []Requirement{
			{
				Name:        "footer background-color",
				Pattern:     regexp.MustCompile(`footer\s*\{[^}]+background-color:`),
				Description: "footer rule does not set background-color",
				Selector:    "footer",
				Property:    "background-color",
			},
		},
	},
	{
		Name: "main has max-width set",
		Requirements: []Requirement{
			{
				Name:        "main max-width",
				Pattern:     regexp.MustCompile(`main\s*\{[^}]+max-width\s*:`),
				Description: "main rule does not set max-width",
				Selector:    "main",
				Property:    "max-width",
			},
		},
	},
}

// HeroRules apply when hero checks are enabled.
var HeroRules = []RuleGroup{
	{
		Name: "hero h1 font-size set using clamp()",
		Requirements: []Requirement{
			{
				Name:        ".hero h1 clamp",
				Pattern:     regexp.MustCompile(`\.hero h1\s*\{[^}]+font-size:\s*clamp\(`),
				Description: ".hero h1 rule does not set font-size with clamp()",
				Selector:    ".hero h1",
				Property:    "font-size",
			},
		},
	},
}

// CardRules apply when card checks are enabled.
var CardRules = []RuleGroup{
	{
		Name: "css contains at least two media queries which use (min-width: ...)",
		Requirements: []Requirement{
			{
				Name:        "min-width media queries",
				Pattern:     regexp.MustCompile(`@media\s*\(min-width`),
				MinMatches:  2,
				Description: "@media (min-width: ...) queries",
			},
		},
	},
}

// FlexRules apply when flex checks are enabled.
var FlexRules = []RuleGroup{
	{
		Name: "body set to display: flex and flex-direction: column",
		Requirements: []Requirement{
			{
				Name:        "body display flex",
				Pattern:     regexp.MustCompile(`body\s*\{[^}]+display:\s+flex`),
				Description: "body rule does not set display: flex",
				Selector:    "body",
				Property:    "display",
			},
			{
				Name:        "body flex-direction column",
				Pattern:     regexp.MustCompile(`body\s*\{[^}]+flex-direction:\s+column`),
				Description: "body rule does not set flex-direction: column",
				Selector:    "body",
				Property:    "flex-direction",
			},
		},
	},
}
