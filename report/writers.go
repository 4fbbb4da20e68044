package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/c360studio/sitecheck/suite"
)

// status labels a result for output and metrics.
func status(r suite.Result) string {
	switch {
	case r.Passed:
		return "passed"
	case r.Required:
		return "failed"
	default:
		return "warning"
	}
}

func verdict(r *suite.Report) string {
	if r.Passed {
		return "PASS"
	}
	return "FAIL"
}

// Summary returns the one-line outcome of a report.
func Summary(r *suite.Report) string {
	passed, failed, warnings := r.Counts()
	line := fmt.Sprintf("%s: %d passed, %d failed, %d warnings in %s",
		verdict(r), passed, failed, warnings, r.Duration.Round(time.Millisecond))
	if len(r.Skipped) > 0 {
		line += " (skipped: " + strings.Join(r.Skipped, ", ") + ")"
	}
	return line
}

func writeText(w io.Writer, r *suite.Report, opts Options) error {
	bw := bufio.NewWriter(w)
	for _, res := range r.Results {
		var prefix string
		switch status(res) {
		case "passed":
			if !opts.Verbose {
				continue
			}
			prefix = "PASS"
		case "failed":
			prefix = "FAIL"
		default:
			prefix = "WARN"
		}
		fmt.Fprintf(bw, "%s: %s/%s\n", prefix, res.Group, res.Name)
		for _, d := range res.Diagnostics {
			fmt.Fprintf(bw, "  - %s\n", d)
		}
	}
	fmt.Fprintln(bw, Summary(r))
	return bw.Flush()
}

func writeJSON(w io.Writer, r *suite.Report, _ Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

type groupCounts struct {
	name     string
	passed   int
	failed   int
	warnings int
}

func countGroups(r *suite.Report) []*groupCounts {
	var order []*groupCounts
	byName := make(map[string]*groupCounts)
	for _, res := range r.Results {
		g, ok := byName[res.Group]
		if !ok {
			g = &groupCounts{name: res.Group}
			byName[res.Group] = g
			order = append(order, g)
		}
		switch status(res) {
		case "passed":
			g.passed++
		case "failed":
			g.failed++
		default:
			g.warnings++
		}
	}
	return order
}

func writeMarkdown(w io.Writer, r *suite.Report, _ Options) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# sitecheck report\n\n")
	fmt.Fprintf(bw, "**Result:** %s  \n**Root:** `%s`  \n**Run:** `%s`\n\n", verdict(r), r.Root, r.RunID)

	fmt.Fprintln(bw, "| Group | Passed | Failed | Warnings |")
	fmt.Fprintln(bw, "|---|---:|---:|---:|")
	for _, g := range countGroups(r) {
		fmt.Fprintf(bw, "| %s | %d | %d | %d |\n", g.name, g.passed, g.failed, g.warnings)
	}
	if len(r.Skipped) > 0 {
		fmt.Fprintf(bw, "\nSkipped groups: %s\n", strings.Join(r.Skipped, ", "))
	}

	writeSection := func(title string, results []suite.Result) {
		if len(results) == 0 {
			return
		}
		fmt.Fprintf(bw, "\n## %s\n", title)
		for _, res := range results {
			fmt.Fprintf(bw, "\n### %s: %s\n\n", res.Group, escapeMarkdown(res.Name))
			for _, d := range res.Diagnostics {
				fmt.Fprintf(bw, "- %s\n", escapeMarkdown(d))
			}
		}
	}
	writeSection("Failures", r.Failures())
	writeSection("Warnings", r.Warnings())

	return bw.Flush()
}

var markdownEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;", "|", `\|`)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
