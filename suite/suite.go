// Package suite runs the conformance assertions over a loaded site.
//
// A pass is a single synchronous read of one snapshot: the pages, the image
// records resolved from them and the project stylesheet. Every assertion is
// independent; a failing assertion never stops the others. The only
// short-circuit is a missing primary page, which reduces the report to one
// failing "html files found" result.
package suite

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/sitecheck/config"
	"github.com/c360studio/sitecheck/document"
	"github.com/c360studio/sitecheck/imagemeta"
	"github.com/c360studio/sitecheck/stylesheet"
)

// Group names.
const (
	GroupPages       = "pages"
	GroupHead        = "head"
	GroupStylesheets = "stylesheets"
	GroupMarkup      = "markup"
	GroupNavigation  = "navigation"
	GroupImages      = "images"
	GroupIndex       = "index"
	GroupSVG         = "svg"
	GroupPanels      = "panels"
	GroupCSS         = "css"
	GroupHero        = "hero"
	GroupCards       = "cards"
	GroupFlex        = "flex"
	GroupForm        = "form"
	GroupRun         = "run"
)

// Page names with dedicated assertions.
const (
	AboutPage   = "about"
	ContactPage = "contact"
)

// group is one gated set of assertions.
type group struct {
	name    string
	enabled func(c config.ChecksConfig) bool
	run     func(p *pass) []Result
}

func always(config.ChecksConfig) bool { return true }

var groups = []group{
	{name: GroupHead, enabled: always, run: (*pass).head},
	{name: GroupStylesheets, enabled: always, run: (*pass).stylesheets},
	{name: GroupMarkup, enabled: always, run: (*pass).markup},
	{name: GroupNavigation, enabled: always, run: (*pass).navigation},
	{name: GroupImages, enabled: always, run: (*pass).images},
	{name: GroupIndex, enabled: always, run: (*pass).index},
	{name: GroupSVG, enabled: func(c config.ChecksConfig) bool { return c.InlineSVG }, run: (*pass).inlineSVG},
	{name: GroupPanels, enabled: func(c config.ChecksConfig) bool { return c.Panels }, run: (*pass).panels},
	{name: GroupCSS, enabled: func(c config.ChecksConfig) bool { return c.CSS }, run: (*pass).css},
	{name: GroupHero, enabled: func(c config.ChecksConfig) bool { return c.Hero }, run: (*pass).hero},
	{name: GroupCards, enabled: func(c config.ChecksConfig) bool { return c.Cards }, run: (*pass).cards},
	// Flex has no markup assertions; its rules live in the stylesheet.
	{name: GroupFlex, enabled: func(c config.ChecksConfig) bool { return c.Flex && c.CSS }, run: (*pass).flex},
	{name: GroupForm, enabled: func(c config.ChecksConfig) bool { return c.Form }, run: (*pass).form},
}

// GroupNames returns every gated group name in run order.
func GroupNames() []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.name
	}
	return names
}

// pass carries the snapshot through the group functions.
type pass struct {
	ctx     context.Context
	cfg     *config.Config
	site    *document.Site
	records []imagemeta.ImageRecord
	sheet   *stylesheet.Stylesheet
	model   *stylesheet.Model // nil when the stylesheet is missing or unparsable
	logger  *slog.Logger
}

// Run executes every enabled group against in and returns the report. A nil
// ctx is treated as context.Background.
func Run(ctx context.Context, in Input) *Report {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := in.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := in.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	if in.Site != nil {
		report.Root = in.Site.Root
	}
	defer func() {
		report.Duration = time.Since(report.StartedAt)
		report.Passed = allRequiredPassed(report.Results)
		passed, failed, warnings := report.Counts()
		logger.Info("check pass complete",
			slog.String("run_id", report.RunID),
			slog.Int("passed", passed),
			slog.Int("failed", failed),
			slog.Int("warnings", warnings),
			slog.Duration("duration", report.Duration))
	}()

	if in.Site == nil || in.Site.Primary() == nil {
		primary := cfg.PrimaryPage()
		logger.Warn("primary page missing, skipping all checks", slog.String("path", primary.Path))
		report.Results = []Result{
			newResult(GroupPages, "html files found",
				[]string{fmt.Sprintf("could not find %s index.html", primary.Name)}),
		}
		return report
	}

	p := &pass{
		ctx:     ctx,
		cfg:     cfg,
		site:    in.Site,
		records: in.Images,
		sheet:   in.Stylesheet,
		logger:  logger,
	}
	if p.sheet != nil {
		model, err := stylesheet.ParseModel(p.sheet.Text)
		if err != nil {
			logger.Debug("stylesheet model unavailable, rule hints disabled",
				slog.String("path", p.sheet.Path),
				slog.String("error", err.Error()))
		}
		p.model = model
	}

	report.Results = append(report.Results, p.pagesLoaded())
	for _, g := range groups {
		if !g.enabled(cfg.Checks) {
			report.Skipped = append(report.Skipped, g.name)
			continue
		}
		if err := ctx.Err(); err != nil {
			report.Results = append(report.Results,
				newResult(GroupRun, "run completed", []string{err.Error()}))
			break
		}
		results := g.run(p)
		logger.Debug("ran group", slog.String("group", g.name), slog.Int("results", len(results)))
		report.Results = append(report.Results, results...)
	}
	return report
}

// Load reads a fresh snapshot for cfg. Missing pages and a missing
// stylesheet are not errors; they surface as failing assertions.
func Load(cfg *config.Config, logger *slog.Logger) (Input, error) {
	if logger == nil {
		logger = slog.Default()
	}

	site := document.Load(cfg.Site.Root, cfg.Site.Pages, logger)
	images := imagemeta.NewResolver(cfg.Site.Root, cfg.Images.Exempt, logger).Resolve(site)

	sheet, err := stylesheet.Load(cfg.Site.Root, cfg.Site.Stylesheet)
	if err != nil {
		return Input{}, fmt.Errorf("load stylesheet: %w", err)
	}
	if sheet == nil {
		logger.Warn("could not find stylesheet", slog.String("path", cfg.Site.Stylesheet))
	}

	return Input{
		Config:     cfg,
		Site:       site,
		Images:     images,
		Stylesheet: sheet,
		Logger:     logger,
	}, nil
}

// Check loads a fresh snapshot and runs every enabled group over it.
func Check(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Report, error) {
	in, err := Load(cfg, logger)
	if err != nil {
		return nil, err
	}
	return Run(ctx, in), nil
}

// pagesLoaded reports configured pages that could not be read.
func (p *pass) pagesLoaded() Result {
	var diags []string
	for _, page := range p.site.Missing() {
		diags = append(diags, fmt.Sprintf("could not find %s index.html (%s)", page.Name, page.Path))
	}
	return newResult(GroupPages, "pages loaded", diags)
}
