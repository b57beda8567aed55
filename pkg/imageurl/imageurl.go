// Package imageurl builds image service URLs with resize and filter segments.
package imageurl

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

var (
	allowedFormats   = mapset.NewSet("webp", "png", "jpeg")
	allowedRotations = mapset.NewSet(90, 180, 270)
	allowedLoading   = mapset.NewSet("lazy", "eager")
)

// Options controls resizing, filters and the extra image attributes
type Options struct {
	Width   int
	Height  int
	Loading string
	Class   string
	Filters *Filters
}

// Filters are appended to the URL in a fixed order: blur, quality,
// brightness, fill, grayscale, rotate, format. Zero values are omitted.
type Filters struct {
	Blur       int
	Brightness int
	Fill       string
	Format     string
	Grayscale  bool
	Quality    int
	Rotate     int
}

// Attr is an HTML attribute for the img element
type Attr struct {
	Key   string
	Value string
}

// Result holds the built URL and the attributes to place next to it
type Result struct {
	Src   string
	Attrs []Attr
}

// Build appends the resize and filter segments described by opts to src.
// A nil opts returns src unchanged.
func Build(src string, opts *Options) Result {
	result := Result{Src: src}
	if opts == nil {
		return result
	}

	if opts.Width > 0 {
		result.Attrs = append(result.Attrs, Attr{Key: "width", Value: strconv.Itoa(opts.Width)})
	}
	if opts.Height > 0 {
		result.Attrs = append(result.Attrs, Attr{Key: "height", Value: strconv.Itoa(opts.Height)})
	}
	if allowedLoading.Contains(opts.Loading) {
		result.Attrs = append(result.Attrs, Attr{Key: "loading", Value: opts.Loading})
	}
	if opts.Class != "" {
		result.Attrs = append(result.Attrs, Attr{Key: "class", Value: opts.Class})
	}

	if opts.Width > 0 && opts.Height > 0 {
		result.Src += fmt.Sprintf("/m/%dx%d", opts.Width, opts.Height)
	}
	if params := opts.Filters.params(); len(params) > 0 {
		result.Src += "/filters:" + strings.Join(params, ":")
	}
	return result
}

func (f *Filters) params() []string {
	if f == nil {
		return nil
	}
	var params []string
	if f.Blur != 0 {
		params = append(params, fmt.Sprintf("blur(%d)", f.Blur))
	}
	if f.Quality != 0 {
		params = append(params, fmt.Sprintf("quality(%d)", f.Quality))
	}
	if f.Brightness != 0 {
		params = append(params, fmt.Sprintf("brightness(%d)", f.Brightness))
	}
	if f.Fill != "" {
		params = append(params, fmt.Sprintf("fill(%s)", f.Fill))
	}
	if f.Grayscale {
		params = append(params, "grayscale()")
	}
	if allowedRotations.Contains(f.Rotate) {
		params = append(params, fmt.Sprintf("rotate(%d)", f.Rotate))
	}
	if allowedFormats.Contains(f.Format) {
		params = append(params, fmt.Sprintf("format(%s)", f.Format))
	}
	return params
}

// ParseFilters reads filters from a loosely typed map such as decoded JSON
// arguments. Unrecognized keys and values of the wrong type are ignored.
func ParseFilters(m map[string]any) *Filters {
	if len(m) == 0 {
		return nil
	}
	f := &Filters{}
	for key, value := range m {
		switch key {
		case "blur":
			f.Blur = intValue(value)
		case "brightness":
			f.Brightness = intValue(value)
		case "quality":
			f.Quality = intValue(value)
		case "rotate":
			f.Rotate = intValue(value)
		case "fill":
			f.Fill, _ = value.(string)
		case "format":
			f.Format, _ = value.(string)
		case "grayscale":
			f.Grayscale, _ = value.(bool)
		}
	}
	return f
}

func intValue(v any) int {
	switch val := v.(type) {
	case int:
		return val
	case float64:
		return int(val)
	case json.Number:
		i, _ := strconv.Atoi(val.String())
		return i
	case string:
		i, _ := strconv.Atoi(val)
		return i
	default:
		return 0
	}
}
