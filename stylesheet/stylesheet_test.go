package stylesheet

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/sitecheck/testutil"
)

func TestLoad(t *testing.T) {
	site := testutil.NewConformingSite(t)

	sheet, err := Load(site.Root, "styles/main.css")
	require.NoError(t, err)
	require.NotNil(t, sheet)
	assert.Equal(t, "styles/main.css", sheet.Path)
	assert.Equal(t, testutil.MainCSS, sheet.Text)
}

func TestLoadMissing(t *testing.T) {
	sheet, err := Load(t.TempDir(), "styles/main.css")
	require.NoError(t, err)
	assert.Nil(t, sheet)
}

func TestLoadDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "styles", "main.css"), 0o755))

	_, err := Load(root, "styles/main.css")
	assert.Error(t, err)
}

func TestParseConformingStylesheet(t *testing.T) {
	syntax, err := Parse(context.Background(), testutil.MainCSS)
	require.NoError(t, err)

	assert.True(t, syntax.Clean(), "errors: %v", syntax.Errors)
	assert.Equal(t, 12, syntax.RuleSets)
	assert.Equal(t, 2, syntax.AtRules)
	assert.Greater(t, syntax.Declarations, 20)
}

func TestParseReportsErrors(t *testing.T) {
	text := "a {\n  color: red;\n}\n}}} @@ {\n"

	syntax, err := Parse(context.Background(), text)
	require.NoError(t, err)
	require.False(t, syntax.Clean())
	for _, e := range syntax.Errors {
		assert.GreaterOrEqual(t, e.Line, 1)
		assert.GreaterOrEqual(t, e.Column, 1)
		assert.NotEmpty(t, e.String())
	}
}

func TestParseCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Parse(ctx, testutil.MainCSS)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSyntaxErrorString(t *testing.T) {
	assert.Equal(t, `3:7: unexpected "}}"`, SyntaxError{Line: 3, Column: 7, Text: "}}"}.String())
	assert.Equal(t, "1:10: missing }", SyntaxError{Line: 1, Column: 10, Text: "}", Missing: true}.String())
}

func groupFailures(groups []RuleGroup, text string) map[string][]string {
	out := make(map[string][]string)
	for _, g := range groups {
		if failures := g.Evaluate(text); len(failures) > 0 {
			out[g.Name] = failures
		}
	}
	return out
}

func TestRulesPassOnConformingStylesheet(t *testing.T) {
	for name, groups := range map[string][]RuleGroup{
		"base":  BaseRules,
		"hero":  HeroRules,
		"cards": CardRules,
		"flex":  FlexRules,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, groupFailures(groups, testutil.MainCSS))
		})
	}
}

func TestBaseRuleFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		group   string
		message string
	}{
		{
			name:    "important",
			mutate:  func(s string) string { return s + "p {\n  color: red !important;\n}\n" },
			group:   "!important never used",
			message: `do not use !important: found "!important"`,
		},
		{
			name:    "no box-sizing",
			mutate:  func(s string) string { return strings.Replace(s, "box-sizing: border-box;", "margin: 0;", 1) },
			group:   "global box-sizing rule set to border-box and :root contains CSS variables",
			message: "universal selector rule with box-sizing: border-box not found",
		},
		{
			name:    "root without variables",
			mutate:  func(s string) string { return strings.ReplaceAll(s, "  --", "  x-") },
			group:   "global box-sizing rule set to border-box and :root contains CSS variables",
			message: ":root variables not found",
		},
		{
			name:    "no body font",
			mutate:  func(s string) string { return strings.Replace(s, `font-family: "Inter", sans-serif;`, "", 1) },
			group:   "font-family and color set in body",
			message: "body rule does not set font-family",
		},
		{
			name:    "underline kept",
			mutate:  func(s string) string { return strings.Replace(s, "text-decoration: none;", "", 1) },
			group:   "remove underlines from <a> and add :hover for all <a> that contain href attribute",
			message: "a rule with text-decoration: none not found",
		},
		{
			name:    "no footer background",
			mutate:  func(s string) string { return strings.Replace(s, "background-color: #eeeeee;", "", 1) },
			group:   "footer has styling including background-color",
			message: "footer rule does not set background-color",
		},
		{
			name:    "no main max-width",
			mutate:  func(s string) string { return strings.Replace(s, "max-width: 60rem;", "", 1) },
			group:   "main has max-width set",
			message: "main rule does not set max-width",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failures := groupFailures(BaseRules, tt.mutate(testutil.MainCSS))
			require.Len(t, failures, 1, "failures: %v", failures)
			assert.Equal(t, []string{tt.message}, failures[tt.group])
		})
	}
}

func TestButtonHoverRule(t *testing.T) {
	const group = "CSS contains .button style and .button:hover declarations"
	withoutHover := strings.Replace(testutil.MainCSS,
		".button:hover {\n  background-color: var(--brand);\n  color: white;\n}\n", "", 1)
	require.NotEqual(t, testutil.MainCSS, withoutHover)

	failures := groupFailures(BaseRules, withoutHover)
	assert.Equal(t, []string{".button:hover rule not found"}, failures[group])

	compact := withoutHover + ".button:hover{color:red}\n"
	assert.Empty(t, groupFailures(BaseRules, compact))
}

func TestCardRuleCountsMediaQueries(t *testing.T) {
	oneQuery := strings.Replace(testutil.MainCSS, "@media (min-width: 900px)", "@media (max-width: 900px)", 1)

	failures := groupFailures(CardRules, oneQuery)
	require.Len(t, failures, 1)
	assert.Equal(t, []string{"@media (min-width: ...) queries: found 1, expected at least 2"},
		failures[CardRules[0].Name])
}

func TestHeroAndFlexRules(t *testing.T) {
	noClamp := strings.Replace(testutil.MainCSS, "font-size: clamp(2rem, 5vw, 4rem);", "font-size: 3rem;", 1)
	assert.Len(t, groupFailures(HeroRules, noClamp), 1)

	noFlex := strings.Replace(testutil.MainCSS, "flex-direction: column;", "", 1)
	failures := groupFailures(FlexRules, noFlex)
	assert.Equal(t, []string{"body rule does not set flex-direction: column"}, failures[FlexRules[0].Name])
}

func TestRulesAcceptCRLF(t *testing.T) {
	crlf := strings.ReplaceAll(testutil.MainCSS, "\n", "\r\n")
	for _, rules := range [][]RuleGroup{BaseRules, HeroRules, CardRules, FlexRules} {
		assert.Empty(t, groupFailures(rules, crlf))
	}
}
