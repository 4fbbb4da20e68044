package suite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/c360studio/sitecheck/document"
)

// stylesheetLinks returns the href of every <link rel="stylesheet"> in order.
func stylesheetLinks(doc *document.Document) []string {
	links := doc.QueryAll("link[rel='stylesheet']")
	hrefs := make([]string, len(links))
	for i, link := range links {
		hrefs[i] = link.AttrOr("href", "")
	}
	return hrefs
}

// projectHref is the stylesheet href expected on a page at depth.
func (p *pass) projectHref(depth int) string {
	return strings.Repeat("../", depth) + p.cfg.Site.Stylesheet
}

func (p *pass) stylesheets() []Result {
	fonts := p.cfg.Checks.Fonts
	reset, err := regexp.Compile(p.cfg.Stylesheets.ResetPattern)
	if err != nil {
		return []Result{newResult(GroupStylesheets, "stylesheet patterns compile", []string{err.Error()})}
	}
	font, err := regexp.Compile(p.cfg.Stylesheets.FontPattern)
	if err != nil {
		return []Result{newResult(GroupStylesheets, "stylesheet patterns compile", []string{err.Error()})}
	}

	want := 2
	order := "reset stylesheet, " + p.cfg.Site.Stylesheet
	if fonts {
		want = 3
		order = "reset stylesheet, fonts, " + p.cfg.Site.Stylesheet
	}

	var results []Result
	for _, doc := range p.site.Present() {
		name := fmt.Sprintf("%s loads %s in order", doc.Label(), order)
		hrefs := stylesheetLinks(doc)
		if len(hrefs) < want {
			results = append(results, newResult(GroupStylesheets, name, []string{
				fmt.Sprintf("%s loads %d stylesheets, expected at least %d (%s)", doc.Label(), len(hrefs), want, order),
			}))
			continue
		}

		var diags []string
		if !reset.MatchString(hrefs[0]) {
			diags = append(diags, fmt.Sprintf("%s: reset stylesheet not loaded first (found %s)", doc.Label(), hrefs[0]))
		}
		if fonts {
			if !font.MatchString(hrefs[1]) {
				diags = append(diags, fmt.Sprintf("%s: fonts not loaded or not loaded second (found %s)", doc.Label(), hrefs[1]))
			}
			loaded := 0
			for _, href := range hrefs {
				if font.MatchString(href) {
					loaded++
				}
			}
			if loaded > 1 {
				diags = append(diags, fmt.Sprintf(
					"%s: fonts loaded %d times; bundle fonts when generating the link tag", doc.Label(), loaded))
			}
		}
		if expected := p.projectHref(doc.Depth); hrefs[len(hrefs)-1] != expected {
			diags = append(diags, fmt.Sprintf("%s not loaded last in %s", expected, doc.Label()))
		}
		results = append(results, newResult(GroupStylesheets, name, diags))
	}
	return results
}
