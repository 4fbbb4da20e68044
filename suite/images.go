package suite

import (
	"errors"
	"fmt"
	"path"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/sitecheck/imagemeta"
)

var upperOrSpace = regexp.MustCompile(`[A-Z]|\s`)

func (p *pass) images() []Result {
	results := []Result{
		p.imagePathCase(),
		p.imageWidth(),
		p.imageDirectory(),
		p.imageDimensions(),
	}

	primary := p.site.Primary()

	var diags []string
	sources := primary.QueryAll("picture > source")
	if len(sources) < 3 {
		diags = append(diags, fmt.Sprintf("found %d <source> elements in <picture>, expected at least three", len(sources)))
	}
	for i, source := range sources {
		if !source.HasAttr("media") {
			diags = append(diags, fmt.Sprintf("<source> number %d missing media attribute", i+1))
		}
		if !source.HasAttr("srcset") {
			diags = append(diags, fmt.Sprintf("<source> number %d missing srcset attribute", i+1))
		}
	}
	results = append(results, newResult(GroupImages,
		"<picture> element must contain three <source> elements with media and srcset attributes", diags))

	diags = nil
	if !primary.Has("picture > img") {
		diags = append(diags, "<picture> has no fallback <img>")
	}
	results = append(results, newResult(GroupImages, "<picture> contains a fallback <img>", diags))

	if about := p.site.Page(AboutPage); about != nil {
		diags = nil
		if img, ok := about.Query("img"); !ok {
			diags = append(diags, about.Label()+" has no <img>")
		} else {
			if !img.HasAttr("srcset") {
				diags = append(diags, about.Label()+" img missing srcset")
			}
			if !img.HasAttr("sizes") {
				diags = append(diags, about.Label()+" img missing sizes attribute")
			}
		}
		results = append(results, newResult(GroupImages,
			"about page includes an <img> element that uses srcset and sizes to load three versions of the same image with different widths", diags))
	}

	if contact := p.site.Page(ContactPage); contact != nil {
		diags = nil
		if !contact.Has("img[src$='.svg']") {
			diags = append(diags, contact.Label()+" has no <img> loading an SVG file")
		}
		results = append(results, newResult(GroupImages, "contact page loads an SVG file with <img>", diags))
	}
	return results
}

func (p *pass) imagePathCase() Result {
	var diags []string
	for _, rec := range p.records {
		if upperOrSpace.MatchString(rec.Path) {
			diags = append(diags, fmt.Sprintf("image path %q in %s index.html should be lowercase with no spaces", rec.Path, rec.Page))
		}
	}
	return newResult(GroupImages, "image paths are all lowercase and contain no spaces", diags)
}

func (p *pass) imageWidth() Result {
	maxWidth := p.cfg.Images.MaxWidth
	var diags []string
	for _, rec := range p.records {
		if !rec.CheckDimensions || !rec.Resolved() {
			continue
		}
		if rec.Intrinsic.Width > maxWidth {
			diags = append(diags, fmt.Sprintf("image width of %d for %q in %s index.html too wide", rec.Intrinsic.Width, rec.Path, rec.Page))
		}
	}
	return newResult(GroupImages, fmt.Sprintf("images must be %dpx wide or less", maxWidth), diags)
}

func (p *pass) imageDirectory() Result {
	pattern := path.Join(p.cfg.Images.Dir, "**")
	var diags []string
	for _, rec := range p.records {
		switch {
		case rec.Hotlink:
			diags = append(diags, fmt.Sprintf("image %s in %s index.html is hotlinked; save it in the %s directory", rec.Src, rec.Page, p.cfg.Images.Dir))
		case errors.Is(rec.Err, imagemeta.ErrMissingSrc):
			diags = append(diags, fmt.Sprintf("%s index.html has an <img> without a src attribute", rec.Page))
		default:
			if ok, _ := doublestar.Match(pattern, rec.Path); !ok {
				diags = append(diags, fmt.Sprintf("image path %s in %s index.html should be a relative path into %s/", rec.Path, rec.Page, p.cfg.Images.Dir))
			}
		}
	}
	return newResult(GroupImages, "relative paths to images used, and images must be in the images directory", diags)
}

func (p *pass) imageDimensions() Result {
	var diags []string
	for _, rec := range p.records {
		if rec.Hotlink || errors.Is(rec.Err, imagemeta.ErrMissingSrc) {
			continue
		}
		if rec.Err != nil {
			diags = append(diags, fmt.Sprintf("%s index.html: %q could not be read: %v", rec.Page, rec.Path, rec.Err))
			continue
		}
		if !rec.CheckDimensions {
			continue
		}
		if rec.Declared.Width != rec.Intrinsic.Width {
			diags = append(diags, fmt.Sprintf("%s index.html: %q <img> width attribute of %d needs to be set to image intrinsic width of %d",
				rec.Page, rec.Path, rec.Declared.Width, rec.Intrinsic.Width))
		}
		if rec.Declared.Height != rec.Intrinsic.Height {
			diags = append(diags, fmt.Sprintf("%s index.html: %q <img> height attribute of %d needs to be set to image intrinsic height of %d",
				rec.Page, rec.Path, rec.Declared.Height, rec.Intrinsic.Height))
		}
	}
	return newResult(GroupImages,
		"non-SVG and non-hero images have the <img> height and width attributes set to the image's intrinsic dimensions", diags)
}
