package imagemeta

import (
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrNoDimensions is returned when an image header carries no usable size.
var ErrNoDimensions = errors.New("image has no decodable dimensions")

// ErrUnsized is returned for a well-formed SVG whose root declares no
// absolute size (e.g. width="100%" and no viewBox).
var ErrUnsized = fmt.Errorf("svg has no absolute size: %w", ErrNoDimensions)

// Size is an image width and height in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ReadSize returns the intrinsic pixel dimensions of the image at path.
// Only the header is decoded for raster formats.
func ReadSize(path string) (Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return Size{}, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return readSVGSize(f)
	}

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Size{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Size{}, fmt.Errorf("%s (%s): %w", filepath.Base(path), format, ErrNoDimensions)
	}
	return Size{Width: cfg.Width, Height: cfg.Height}, nil
}

// readSVGSize reads width/height from the root <svg> element, falling back
// to the viewBox extent when either attribute is absent or relative.
func readSVGSize(r io.Reader) (Size, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Size{}, fmt.Errorf("no <svg> root: %w", ErrNoDimensions)
			}
			return Size{}, fmt.Errorf("decode svg: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "svg" {
			return Size{}, fmt.Errorf("root element <%s>: %w", start.Name.Local, ErrNoDimensions)
		}

		var width, height, viewBox string
		for _, a := range start.Attr {
			switch a.Name.Local {
			case "width":
				width = a.Value
			case "height":
				height = a.Value
			case "viewBox":
				viewBox = a.Value
			}
		}

		size := Size{Width: parseLength(width), Height: parseLength(height)}
		if size.Width > 0 && size.Height > 0 {
			return size, nil
		}
		if vb := strings.Fields(strings.ReplaceAll(viewBox, ",", " ")); len(vb) == 4 {
			vw, errW := strconv.ParseFloat(vb[2], 64)
			vh, errH := strconv.ParseFloat(vb[3], 64)
			if errW == nil && errH == nil && vw > 0 && vh > 0 {
				return Size{Width: int(vw + 0.5), Height: int(vh + 0.5)}, nil
			}
		}
		return Size{}, ErrUnsized
	}
}

// parseLength accepts unitless or px lengths; anything else yields 0.
func parseLength(s string) int {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0
	}
	return int(v + 0.5)
}
