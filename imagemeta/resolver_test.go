package imagemeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/sitecheck/config"
	"github.com/c360studio/sitecheck/document"
	"github.com/c360studio/sitecheck/testutil"
)

func resolveSite(t *testing.T, site *testutil.Site) []ImageRecord {
	t.Helper()
	cfg := site.Config()
	docs := document.Load(site.Root, cfg.Site.Pages, nil)
	return NewResolver(site.Root, cfg.Images.Exempt, nil).Resolve(docs)
}

func TestResolveConformingSite(t *testing.T) {
	records := resolveSite(t, testutil.NewConformingSite(t))

	require.Len(t, records, 4)

	// Document order first, then element order.
	assert.Equal(t, "main", records[0].Page)
	assert.Equal(t, "images/hero-banner.png", records[0].Path)
	assert.False(t, records[0].CheckDimensions, "hero images are exempt")

	assert.Equal(t, "main", records[1].Page)
	assert.Equal(t, "images/design.png", records[1].Path)
	assert.True(t, records[1].CheckDimensions)
	assert.Equal(t, Size{Width: 40, Height: 30}, records[1].Intrinsic)
	assert.Equal(t, Declared{Width: 40, Height: 30, HasWidth: true, HasHeight: true}, records[1].Declared)

	assert.Equal(t, "about", records[2].Page)
	assert.Equal(t, "../images/team-400.png", records[2].Src)
	assert.Equal(t, "images/team-400.png", records[2].Path)
	assert.Equal(t, Size{Width: 400, Height: 300}, records[2].Intrinsic)

	assert.Equal(t, "contact", records[3].Page)
	assert.Equal(t, "images/map.svg", records[3].Path)
	assert.False(t, records[3].CheckDimensions, "svg images are exempt")
	assert.Equal(t, Size{Width: 120, Height: 80}, records[3].Intrinsic)

	for _, rec := range records {
		assert.NoError(t, rec.Err, rec.Path)
		assert.False(t, rec.Hotlink)
		assert.True(t, rec.Resolved())
	}
}

func TestResolveHotlinkNeverReadsDisk(t *testing.T) {
	site := testutil.NewConformingSite(t)
	site.Replace("index.html", `src="images/design.png"`, `src="https://cdn.example.com/Design Photo.png"`)

	records := resolveSite(t, site)
	require.Len(t, records, 4)

	hot := records[1]
	assert.True(t, hot.Hotlink)
	assert.Empty(t, hot.Path)
	assert.Equal(t, Size{}, hot.Intrinsic)
	assert.NoError(t, hot.Err)
	assert.False(t, hot.Resolved())
}

func TestResolveDuplicatesAcrossPages(t *testing.T) {
	site := testutil.NewConformingSite(t)
	site.Replace("contact/index.html", `src="../images/map.svg"`, `src="../images/design.png"`)

	records := resolveSite(t, site)
	require.Len(t, records, 4)
	assert.Equal(t, records[1].Path, records[3].Path)
	assert.Equal(t, "main", records[1].Page)
	assert.Equal(t, "contact", records[3].Page)
}

func TestResolveRecordsUnreadableImages(t *testing.T) {
	site := testutil.NewConformingSite(t)
	site.Remove("images/design.png")
	site.WriteFile("images/team-400.png", "not really a png")

	records := resolveSite(t, site)
	require.Len(t, records, 4)

	assert.Error(t, records[1].Err, "missing file")
	assert.Error(t, records[2].Err, "corrupt header")
	assert.False(t, records[1].Resolved())
	// Other records still resolve.
	assert.NoError(t, records[3].Err)
}

func TestResolveMissingSrc(t *testing.T) {
	doc, err := document.ParseString("main", "index.html", 0, `<img alt="x">`)
	require.NoError(t, err)

	records := NewResolver(t.TempDir(), config.DefaultConfig().Images.Exempt, nil).ResolveDocument(doc)
	require.Len(t, records, 1)
	assert.ErrorIs(t, records[0].Err, ErrMissingSrc)
}

func TestDeclaredAttributes(t *testing.T) {
	doc, err := document.ParseString("main", "index.html", 0,
		`<img src="https://x.test/a.png" width=" 12 " height="auto"><img src="https://x.test/b.png">`)
	require.NoError(t, err)

	records := NewResolver(t.TempDir(), nil, nil).ResolveDocument(doc)
	require.Len(t, records, 2)
	assert.Equal(t, Declared{Width: 12, HasWidth: true, HasHeight: true}, records[0].Declared)
	assert.Equal(t, Declared{}, records[1].Declared)
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"images/a.png", "images/a.png"},
		{"../images/a.png", "images/a.png"},
		{"../../images/a.png", "../images/a.png"},
		{"img/a.png", "img/a.png"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.src))
		})
	}
}

func TestExempt(t *testing.T) {
	r := NewResolver("", config.DefaultConfig().Images.Exempt, nil)

	tests := []struct {
		path string
		want bool
	}{
		{"images/logo.svg", true},
		{"images/hero.jpg", true},
		{"images/home-hero-wide.png", true},
		{"images/hero/dawn.jpg", true},
		{"images/photo.jpg", false},
		{"images/svg-notes.png", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Exempt(tt.path))
		})
	}
}

func TestIsHotlink(t *testing.T) {
	assert.True(t, IsHotlink("https://example.com/a.png"))
	assert.True(t, IsHotlink("http://example.com/a.png"))
	assert.False(t, IsHotlink("images/a.png"))
	assert.False(t, IsHotlink("../images/http.png"))
}

func TestResolveUnsizedSVG(t *testing.T) {
	site := testutil.NewConformingSite(t)
	site.WriteFile("images/map.svg", `<svg xmlns="http://www.w3.org/2000/svg" width="100%" height="100%"></svg>`)

	records := resolveSite(t, site)
	require.Len(t, records, 4)
	assert.Equal(t, "images/map.svg", records[3].Path)
	assert.NoError(t, records[3].Err, "exempt svg needs no size")
	assert.Equal(t, Size{}, records[3].Intrinsic)

	cfg := site.Config()
	docs := document.Load(site.Root, cfg.Site.Pages, nil)
	strict := NewResolver(site.Root, nil, nil).Resolve(docs)
	assert.ErrorIs(t, strict[3].Err, ErrUnsized, "checked svg still needs a size")
}
