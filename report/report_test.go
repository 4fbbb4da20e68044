package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/sitecheck/imagemeta"
	"github.com/c360studio/sitecheck/suite"
)

func sampleReport() *suite.Report {
	return &suite.Report{
		RunID:    "run-1",
		Root:     "/srv/site",
		Duration: 1500 * time.Millisecond,
		Results: []suite.Result{
			{Group: "head", Name: "main index.html has <title>", Passed: true, Required: true},
			{Group: "images", Name: "image paths are all lowercase", Passed: false, Required: true,
				Diagnostics: []string{`image path "images/Hero.JPG" in main index.html should be lowercase with no spaces`}},
			{Group: "css", Name: "styles/main.css parses cleanly", Passed: false, Required: false,
				Diagnostics: []string{"styles/main.css:4:1: unexpected \"}\""}},
		},
		Skipped: []string{"svg", "form"},
		Passed:  false,
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, sampleReport(), Options{}))

	out := buf.String()
	assert.Contains(t, out, "FAIL: images/image paths are all lowercase\n")
	assert.Contains(t, out, `  - image path "images/Hero.JPG" in main index.html should be lowercase with no spaces`)
	assert.Contains(t, out, "WARN: css/styles/main.css parses cleanly\n")
	assert.NotContains(t, out, "PASS:")
	assert.True(t, strings.HasSuffix(out,
		"FAIL: 1 passed, 1 failed, 1 warnings in 1.5s (skipped: svg, form)\n"), out)
}

func TestWriteTextVerbose(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, sampleReport(), Options{Verbose: true}))
	assert.Contains(t, buf.String(), "PASS: head/main index.html has <title>\n")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleReport(), Options{}))

	var decoded suite.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	assert.Len(t, decoded.Results, 3)
	assert.False(t, decoded.Passed)
	assert.Equal(t, []string{"svg", "form"}, decoded.Skipped)
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatMarkdown, sampleReport(), Options{}))

	out := buf.String()
	assert.Contains(t, out, "**Result:** FAIL")
	assert.Contains(t, out, "| head | 1 | 0 | 0 |\n")
	assert.Contains(t, out, "| images | 0 | 1 | 0 |\n")
	assert.Contains(t, out, "| css | 0 | 0 | 1 |\n")
	assert.Contains(t, out, "## Failures")
	assert.Contains(t, out, "## Warnings")
	assert.Contains(t, out, "Skipped groups: svg, form")
	assert.Contains(t, out, "### images: image paths are all lowercase\n")
	assert.NotContains(t, out, "### head:")
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, Format("xml"), sampleReport(), Options{})
	assert.Error(t, err)
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{"json", "markdown", "text"}, Formats())

	info, ok := GetFormatInfo(FormatMarkdown)
	require.True(t, ok)
	assert.Equal(t, ".md", info.Extension)
}

func TestMetricsWriteFile(t *testing.T) {
	m := NewMetrics()
	images := []imagemeta.ImageRecord{
		{Path: "images/a.png", CheckDimensions: true},
		{Path: "images/hero.png"},
		{Src: "https://example.com/b.png", Hotlink: true},
		{Path: "images/c.png", CheckDimensions: true, Err: os.ErrNotExist},
	}
	m.Observe(sampleReport(), images)
	m.Observe(sampleReport(), images)

	path := filepath.Join(t.TempDir(), "sitecheck.prom")
	require.NoError(t, m.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `sitecheck_assertions_total{group="head",status="passed"} 2`)
	assert.Contains(t, out, `sitecheck_assertions_total{group="images",status="failed"} 2`)
	assert.Contains(t, out, `sitecheck_assertions_total{group="css",status="warning"} 2`)
	assert.Contains(t, out, `sitecheck_images_total{kind="local"} 2`)
	assert.Contains(t, out, `sitecheck_images_total{kind="exempt"} 2`)
	assert.Contains(t, out, `sitecheck_images_total{kind="hotlink"} 2`)
	assert.Contains(t, out, `sitecheck_images_total{kind="unreadable"} 2`)
	assert.Contains(t, out, "sitecheck_runs_total 2")
	assert.Contains(t, out, "sitecheck_run_passed 0")
	assert.Contains(t, out, "sitecheck_run_duration_seconds 1.5")
}

func TestMetricsWriteFileError(t *testing.T) {
	m := NewMetrics()
	err := m.WriteFile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	assert.Error(t, err)
}
