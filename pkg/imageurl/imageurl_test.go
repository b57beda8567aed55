package imageurl

import (
	"reflect"
	"testing"
)

const base = "https://a.example.com/f/39898/3310x2192/e4ec08624e/demo.jpg"

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		opts     *Options
		expected string
	}{
		{
			name:     "nil options",
			opts:     nil,
			expected: base,
		},
		{
			name:     "size",
			opts:     &Options{Width: 800, Height: 600},
			expected: base + "/m/800x600",
		},
		{
			name:     "width only skips resize segment",
			opts:     &Options{Width: 800},
			expected: base,
		},
		{
			name:     "negative height skips resize segment",
			opts:     &Options{Width: 800, Height: -1},
			expected: base,
		},
		{
			name: "filters in declared order",
			opts: &Options{Filters: &Filters{
				Format:     "webp",
				Rotate:     90,
				Grayscale:  true,
				Fill:       "transparent",
				Brightness: 10,
				Quality:    75,
				Blur:       5,
			}},
			expected: base + "/filters:blur(5):quality(75):brightness(10):fill(transparent):grayscale():rotate(90):format(webp)",
		},
		{
			name:     "size and filters",
			opts:     &Options{Width: 10, Height: 20, Filters: &Filters{Quality: 50}},
			expected: base + "/m/10x20/filters:quality(50)",
		},
		{
			name:     "invalid rotation and format dropped",
			opts:     &Options{Filters: &Filters{Rotate: 45, Format: "gif", Blur: 2}},
			expected: base + "/filters:blur(2)",
		},
		{
			name:     "all filters falsy",
			opts:     &Options{Filters: &Filters{}},
			expected: base,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(base, tt.opts)
			if got.Src != tt.expected {
				t.Errorf("Build().Src = %q, want %q", got.Src, tt.expected)
			}
		})
	}
}

func TestBuildAttrs(t *testing.T) {
	got := Build(base, &Options{Width: 100, Height: 50, Loading: "lazy", Class: "hero"})
	want := []Attr{
		{Key: "width", Value: "100"},
		{Key: "height", Value: "50"},
		{Key: "loading", Value: "lazy"},
		{Key: "class", Value: "hero"},
	}
	if !reflect.DeepEqual(got.Attrs, want) {
		t.Errorf("Attrs = %#v, want %#v", got.Attrs, want)
	}

	got = Build(base, &Options{Loading: "sometimes"})
	if len(got.Attrs) != 0 {
		t.Errorf("unknown loading value should be ignored, got %#v", got.Attrs)
	}
}

func TestParseFilters(t *testing.T) {
	f := ParseFilters(map[string]any{
		"blur":      float64(3),
		"format":    "png",
		"grayscale": true,
		"sepia":     true,
		"rotate":    "180",
		"fill":      42,
	})
	want := &Filters{Blur: 3, Format: "png", Grayscale: true, Rotate: 180}
	if !reflect.DeepEqual(f, want) {
		t.Errorf("ParseFilters() = %#v, want %#v", f, want)
	}

	if ParseFilters(nil) != nil {
		t.Error("ParseFilters(nil) should return nil")
	}
}
