package suite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/c360studio/sitecheck/document"
	"github.com/c360studio/sitecheck/stylesheet"
)

var (
	absoluteHref  = regexp.MustCompile(`^http`)
	rootedHref    = regexp.MustCompile(`^\./|^/`)
	indexFileHref = regexp.MustCompile(`index\.html`)
)

func (p *pass) head() []Result {
	var results []Result
	for _, doc := range p.site.Present() {
		var diags []string
		if !doc.Has("title") {
			diags = append(diags, fmt.Sprintf("%s is missing <title>", doc.Label()))
		}
		if !doc.Has("meta[name=description]") {
			diags = append(diags, fmt.Sprintf("%s is missing <meta> description tag", doc.Label()))
		}
		if !doc.Has("link[rel='icon']") {
			diags = append(diags, fmt.Sprintf("%s is missing link to favicon", doc.Label()))
		}
		results = append(results, newResult(GroupHead,
			doc.Label()+" has <title>, <meta> description and favicon info", diags))
	}
	return results
}

func (p *pass) markup() []Result {
	var results []Result
	for _, doc := range p.site.Present() {
		var diags []string
		if n := doc.Count("br"); n > 0 {
			diags = append(diags, fmt.Sprintf("%s has %d <br> tags", doc.Label(), n))
		}
		results = append(results, newResult(GroupMarkup,
			doc.Label()+" does not contain any <br> tags", diags))

		diags = nil
		if n := doc.Count("h1"); n != 1 {
			diags = append(diags, fmt.Sprintf("%s has %d <h1>", doc.Label(), n))
		}
		results = append(results, newResult(GroupMarkup,
			doc.Label()+" contains exactly one <h1>", diags))

		diags = nil
		if !doc.Has("header") {
			diags = append(diags, fmt.Sprintf("%s missing <header>", doc.Label()))
		}
		if !doc.Has("header nav") {
			diags = append(diags, fmt.Sprintf("%s does not have a <nav> inside <header>", doc.Label()))
		}
		if !doc.Has("header nav ul") {
			diags = append(diags, fmt.Sprintf("%s does not have a <ul> in a <nav> in <header>", doc.Label()))
		}
		results = append(results, newResult(GroupMarkup,
			doc.Label()+" has a <header> containing a <nav> and a <ul>", diags))
	}
	return results
}

func (p *pass) navigation() []Result {
	var results []Result
	for _, doc := range p.site.Present() {
		var diags []string
		for _, link := range doc.QueryAll("header nav a[href]") {
			diags = append(diags, navLinkProblems(link)...)
		}
		results = append(results, newResult(GroupNavigation,
			doc.Label()+" - relative paths used in main menu; paths do not end with 'index.html'", diags))
	}
	return results
}

// navLinkProblems lists the path hygiene rules a menu link breaks.
func navLinkProblems(link document.Element) []string {
	href := link.AttrOr("href", "")
	if href == "" {
		return nil
	}

	var problems []string
	if absoluteHref.MatchString(href) {
		problems = append(problems, fmt.Sprintf("do not use absolute path: %s", href))
	}
	if rootedHref.MatchString(href) {
		problems = append(problems, fmt.Sprintf("do not begin relative paths with './' or '/': %s", href))
	}
	if indexFileHref.MatchString(href) {
		problems = append(problems, fmt.Sprintf("do not include 'index.html' in path: %s", href))
	} else if !strings.HasSuffix(href, "/") {
		problems = append(problems, fmt.Sprintf("end relative paths to folder containing index.html with '/': %s", href))
	}
	return problems
}

func (p *pass) index() []Result {
	doc := p.site.Primary()

	var diags []string
	if !doc.Has("picture") {
		diags = append(diags, "<picture> not found")
	}
	if n := doc.Count("main"); n != 1 {
		diags = append(diags, fmt.Sprintf("found %d <main> elements when expected one", n))
	}
	if n := doc.Count("article"); n < 2 {
		diags = append(diags, fmt.Sprintf("found %d <article> elements when expected at least two", n))
	}
	if !doc.Has("aside") {
		diags = append(diags, "no <aside> found")
	}
	if !doc.Has("footer") {
		diags = append(diags, "no <footer> found")
	}
	results := []Result{newResult(GroupIndex,
		doc.Label()+" must contain a <picture>, one <main>, at least two <article>, an <aside>, and a <footer>", diags)}

	diags = nil
	if doc.Has("aside") && !doc.Has("aside > p") {
		diags = append(diags, "text in the <aside> must be inside a <p>")
	}
	if doc.Has("footer") && !doc.Has("footer > p") {
		diags = append(diags, "text in the <footer> must be inside a <p>")
	}
	results = append(results, newResult(GroupIndex, "text in the <aside> and <footer> is inside a <p>", diags))

	button := p.cfg.Checks.Button
	name := "<article> must contain an <h2> and at least one <p>"
	if button {
		name = `<article> must contain an <h2>, at least one <p> and an <a class="button">`
	}
	diags = nil
	for i, article := range doc.QueryAll("article") {
		if !article.Has("h2") {
			diags = append(diags, fmt.Sprintf("<article> number %d missing an <h2>", i+1))
		}
		if !article.Has("p") {
			diags = append(diags, fmt.Sprintf("<article> number %d missing a <p>", i+1))
		}
		if button && !article.Has("a.button") {
			diags = append(diags, fmt.Sprintf(`<article> number %d does not have an <a class="button">`, i+1))
		}
	}
	results = append(results, newResult(GroupIndex, name, diags))
	return results
}

func (p *pass) inlineSVG() []Result {
	doc := p.site.Primary()

	var diags []string
	if !doc.Has("svg") {
		diags = append(diags, doc.Label()+" missing inline svg")
	}
	if !doc.Has("symbol") {
		diags = append(diags, doc.Label()+" missing symbol")
	}
	return []Result{newResult(GroupSVG,
		doc.Label()+" includes a simple inline SVG image displayed using <symbol>", diags)}
}

func (p *pass) panels() []Result {
	doc := p.site.Primary()
	panels := doc.QueryAll("article.panel")

	var diags []string
	if len(panels) < 2 {
		diags = append(diags, fmt.Sprintf("found %d articles with class panel, expected at least two", len(panels)))
	}
	results := []Result{newResult(GroupPanels, "two articles with class panel", diags)}

	diags = nil
	if len(panels) == 0 {
		diags = append(diags, "no articles with .panel class found")
	}
	for i, panel := range panels {
		if n := len(panel.Find(".left")); n != 1 {
			diags = append(diags, fmt.Sprintf("panel %d contains %d .left elements", i+1, n))
		}
	}
	results = append(results, newResult(GroupPanels, "left class used once inside both panel articles", diags))
	return results
}

func (p *pass) hero() []Result {
	doc := p.site.Primary()

	var diags []string
	if hero, ok := doc.Query(".hero"); !ok {
		diags = append(diags, "no .hero element found")
	} else {
		if !hero.Has("h1") {
			diags = append(diags, ".hero does not contain an <h1>")
		}
		if !hero.Has("p") {
			diags = append(diags, ".hero does not contain a <p>")
		}
	}
	results := []Result{newResult(GroupHero, "hero section contains an <h1> and a <p>", diags)}
	return append(results, p.stylesheetRules(GroupHero, stylesheet.HeroRules)...)
}

func (p *pass) cards() []Result {
	doc := p.site.Primary()

	var diags []string
	if n := doc.Count("section.cards .card"); n != 4 {
		diags = append(diags, fmt.Sprintf("found %d .card elements in section.cards, expected 4", n))
	}
	results := []Result{newResult(GroupCards,
		"section with class .cards contains four cards, each with class .card", diags)}
	return append(results, p.stylesheetRules(GroupCards, stylesheet.CardRules)...)
}
