package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gardar/ocrebuild/pkg/pdfocr"
)

func layersCmd() *cobra.Command {
	var layerName string

	cmd := &cobra.Command{
		Use:   "layers <pdf>...",
		Short: "List the OCR text layers of rendered PDFs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var errs []error
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					errs = append(errs, fmt.Errorf("failed to read %s: %w", path, err))
					continue
				}
				res, err := pdfocr.CheckLayers(data, layerName)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", path, err))
					continue
				}
				fmt.Fprintf(out, "%s: %d layers, %d text layers, pages %v\n",
					path, len(res.Layers), len(res.TextLayers), res.Pages)
				for _, l := range res.Layers {
					fmt.Fprintf(out, "  %s\n", l)
				}
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().StringVar(&layerName, "layer-name", pdfocr.DefaultConfig().LayerName, "base name of the text layers")
	return cmd
}
