package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/sitecheck/config"
	"github.com/c360studio/sitecheck/report"
	"github.com/c360studio/sitecheck/suite"
	"github.com/c360studio/sitecheck/testutil"
)

// execute runs the root command and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckConformingSite(t *testing.T) {
	site := testutil.NewConformingSite(t)

	out, err := execute(t, site.Root)
	require.NoError(t, err, out)
	assert.Contains(t, out, "PASS: ")
	assert.NotContains(t, out, "FAIL:")
}

func TestCheckMissingPrimaryPage(t *testing.T) {
	site := testutil.NewConformingSite(t)
	site.Remove("index.html")

	out, err := execute(t, site.Root)
	assert.ErrorIs(t, err, errChecksFailed)
	assert.Contains(t, out, "FAIL: pages/html files found\n  - could not find main index.html\n")
}

func TestCheckFlagOverrides(t *testing.T) {
	site := testutil.NewConformingSite(t)

	out, err := execute(t, site.Root, "--format", "json", "--check-inline-svg", "--check-css=false")
	require.NoError(t, err, out)

	var r suite.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.True(t, r.Passed)
	assert.NotContains(t, r.Skipped, suite.GroupSVG)
	assert.Contains(t, r.Skipped, suite.GroupCSS)
	_, ok := r.Find(suite.GroupSVG, "main index.html includes a simple inline SVG image displayed using <symbol>")
	assert.True(t, ok)
}

func TestCheckMaxImageWidth(t *testing.T) {
	site := testutil.NewConformingSite(t)

	out, err := execute(t, site.Root, "--max-image-width", "100")
	assert.ErrorIs(t, err, errChecksFailed)
	assert.Contains(t, out, "FAIL: images/images must be 100px wide or less")
}

func TestCheckConfigFile(t *testing.T) {
	site := testutil.NewConformingSite(t)
	site.WriteFile(config.ProjectConfigFile, "checks:\n  form: true\noutput:\n  format: markdown\n")

	out, err := execute(t, site.Root)
	require.NoError(t, err, out)
	assert.Contains(t, out, "# sitecheck report")
	assert.Contains(t, out, "| form |")
}

func TestCheckInvalidFormat(t *testing.T) {
	site := testutil.NewConformingSite(t)

	_, err := execute(t, site.Root, "--format", "xml")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errChecksFailed)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestCheckMetricsFile(t *testing.T) {
	site := testutil.NewConformingSite(t)
	path := filepath.Join(t.TempDir(), "sitecheck.prom")

	_, err := execute(t, site.Root, "--metrics-file", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sitecheck_runs_total 1")
	assert.Contains(t, string(data), "sitecheck_run_passed 1")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "sitecheck version "+Version+" (build: "+BuildTime+")\n", out)
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Created ")

	cfg, err := config.LoadFromFile(filepath.Join(dir, config.ProjectConfigFile))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Checks, cfg.Checks)

	out, err = execute(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
}

func TestImagesTable(t *testing.T) {
	site := testutil.NewConformingSite(t)

	out, err := execute(t, "images", site.Root)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "PAGE"))
	assert.Contains(t, out, "40x30")
	assert.Contains(t, out, "exempt")
	assert.NotContains(t, out, "mismatch")
}

func TestImagesJSON(t *testing.T) {
	site := testutil.NewConformingSite(t)
	site.Replace("index.html", `width="40"`, `width="41"`)

	out, err := execute(t, "images", "--json", site.Root)
	require.NoError(t, err)

	var rows []imageRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.NotEmpty(t, rows)

	statuses := make(map[string]string)
	for _, row := range rows {
		statuses[row.Path] = row.Status
		if row.Path != "" {
			assert.Positive(t, row.Bytes, row.Path)
		}
	}
	assert.Equal(t, "mismatch", statuses["images/design.png"])
	assert.Equal(t, "exempt", statuses["images/hero-banner.png"])
}

func TestImagesMissingPrimary(t *testing.T) {
	site := testutil.NewSite(t)

	_, err := execute(t, "images", site.Root)
	require.Error(t, err)
	assert.Equal(t, "could not find main index.html", err.Error())
}

// syncBuffer is a bytes.Buffer safe for the watcher goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchSiteRerunsOnChange(t *testing.T) {
	site := testutil.NewConformingSite(t)
	cfg := site.Config()
	logger := newLogger("error", io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var out syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- watchSite(ctx, cfg, 50*time.Millisecond, logger, &out, report.NewMetrics())
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "PASS: ")
	}, 5*time.Second, 20*time.Millisecond)

	// The watcher registers after the first pass, so keep writing until a
	// re-run is seen.
	broken := strings.Replace(testutil.IndexHTML, `width="40"`, `width="41"`, 1)
	require.Eventually(t, func() bool {
		if strings.Contains(out.String(), "changed: index.html") {
			return true
		}
		site.WriteFile("index.html", broken)
		return false
	}, 5*time.Second, 100*time.Millisecond)
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "FAIL: ")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
