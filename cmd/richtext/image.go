package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/athapong/richtext/pkg/imageurl"
)

func (a *app) imageCmd() *cobra.Command {
	var (
		opts    imageurl.Options
		filters imageurl.Filters
	)

	cmd := &cobra.Command{
		Use:   "image <src>",
		Short: "Build an image service URL with resize and filter segments",
		Long: `Image prints the URL built from src and the resize/filter flags, followed by
the img attributes it implies.

Examples:
  richtext image https://img.example.com/f/1/a.jpg --width 300 --height 200
  richtext image https://img.example.com/f/1/a.jpg --quality 80 --img-format webp --loading lazy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if filters != (imageurl.Filters{}) {
				opts.Filters = &filters
			}
			result := imageurl.Build(args[0], &opts)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Src)
			for _, attr := range result.Attrs {
				fmt.Fprintf(out, "%s=%q\n", attr.Key, attr.Value)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.Width, "width", 0, "Target width in pixels")
	f.IntVar(&opts.Height, "height", 0, "Target height in pixels")
	f.StringVar(&opts.Loading, "loading", "", "Loading hint: lazy or eager")
	f.StringVar(&opts.Class, "class", "", "CSS class for the img element")
	f.IntVar(&filters.Blur, "blur", 0, "Blur filter amount")
	f.IntVar(&filters.Quality, "quality", 0, "Quality filter (1-100)")
	f.IntVar(&filters.Brightness, "brightness", 0, "Brightness filter")
	f.StringVar(&filters.Fill, "fill", "", "Fill color filter")
	f.BoolVar(&filters.Grayscale, "grayscale", false, "Grayscale filter")
	f.IntVar(&filters.Rotate, "rotate", 0, "Rotation: 90, 180 or 270")
	f.StringVar(&filters.Format, "img-format", "", "Image format: webp, png or jpeg")
	return cmd
}
