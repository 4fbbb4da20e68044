package suite

import (
	"log/slog"
	"time"

	"github.com/c360studio/sitecheck/config"
	"github.com/c360studio/sitecheck/document"
	"github.com/c360studio/sitecheck/imagemeta"
	"github.com/c360studio/sitecheck/stylesheet"
)

// Input is the read-only snapshot one pass checks.
type Input struct {
	Config *config.Config
	Site   *document.Site
	Images []imagemeta.ImageRecord
	// Stylesheet is nil when the project stylesheet does not exist
	Stylesheet *stylesheet.Stylesheet
	// Logger is optional; slog.Default() is used when nil
	Logger *slog.Logger
}

// Result is the verdict of one assertion.
type Result struct {
	Group       string   `json:"group"`
	Name        string   `json:"name"`
	Passed      bool     `json:"passed"`
	Required    bool     `json:"required"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// Report holds every result of one pass.
type Report struct {
	RunID     string        `json:"run_id"`
	Root      string        `json:"root"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Results   []Result      `json:"results"`
	// Skipped lists the groups disabled by configuration
	Skipped []string `json:"skipped,omitempty"`
	// Passed is true when every required result passed
	Passed bool `json:"passed"`
}

// Failures returns the failing required results in report order.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Required && !res.Passed {
			out = append(out, res)
		}
	}
	return out
}

// Warnings returns the failing optional results.
func (r *Report) Warnings() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Required && !res.Passed {
			out = append(out, res)
		}
	}
	return out
}

// Counts returns the number of passed, failed and warning results.
func (r *Report) Counts() (passed, failed, warnings int) {
	for _, res := range r.Results {
		switch {
		case res.Passed:
			passed++
		case res.Required:
			failed++
		default:
			warnings++
		}
	}
	return passed, failed, warnings
}

// Find returns the first result with the given group and name.
func (r *Report) Find(group, name string) (Result, bool) {
	for _, res := range r.Results {
		if res.Group == group && res.Name == name {
			return res, true
		}
	}
	return Result{}, false
}

// allRequiredPassed returns true when every required result has passed.
// Optional failing results do not affect the aggregate verdict.
func allRequiredPassed(results []Result) bool {
	for _, r := range results {
		if r.Required && !r.Passed {
			return false
		}
	}
	return true
}

func newResult(group, name string, diagnostics []string) Result {
	return Result{
		Group:       group,
		Name:        name,
		Passed:      len(diagnostics) == 0,
		Required:    true,
		Diagnostics: diagnostics,
	}
}

func newWarning(group, name string, diagnostics []string) Result {
	res := newResult(group, name, diagnostics)
	res.Required = false
	return res
}
