package suite

import (
	"log/slog"

	"github.com/c360studio/sitecheck/stylesheet"
)

func (p *pass) css() []Result {
	if p.sheet == nil {
		return []Result{newResult(GroupCSS, p.cfg.Site.Stylesheet+" file exists",
			[]string{"html pages must load stylesheet named " + p.cfg.Site.Stylesheet})}
	}

	results := p.stylesheetRules(GroupCSS, stylesheet.BaseRules)

	var diags []string
	syntax, err := stylesheet.Parse(p.ctx, p.sheet.Text)
	if err != nil {
		diags = append(diags, err.Error())
	} else {
		p.logger.Debug("parsed stylesheet",
			slog.String("path", p.sheet.Path),
			slog.Int("rule_sets", syntax.RuleSets),
			slog.Int("at_rules", syntax.AtRules),
			slog.Int("declarations", syntax.Declarations))
		for _, e := range syntax.Errors {
			diags = append(diags, p.sheet.Path+":"+e.String())
		}
	}
	return append(results, newWarning(GroupCSS, p.sheet.Path+" parses cleanly", diags))
}

func (p *pass) flex() []Result {
	return p.stylesheetRules(GroupFlex, stylesheet.FlexRules)
}

// stylesheetRules evaluates rule groups against the project stylesheet. It
// yields nothing when stylesheet checks are off or the file is missing; the
// css group reports the missing file once.
func (p *pass) stylesheetRules(group string, rules []stylesheet.RuleGroup) []Result {
	if !p.cfg.Checks.CSS || p.sheet == nil {
		return nil
	}
	results := make([]Result, 0, len(rules))
	for _, rg := range rules {
		results = append(results, newResult(group, rg.Name, rg.Check(p.sheet.Text, p.model)))
	}
	return results
}
