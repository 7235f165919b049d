// ocrebuild runs documents through OCR and rebuilds them from the recognized words.
//
// For every input document it writes one plain-text file per page that has paragraphs
// ({base}-page-{n}.txt) and a PDF ({base}.pdf) in which every word is drawn at the
// position and size the OCR engine found it.
//
// Configuration:
//
// Settings are read from an optional YAML file (see internal/config); flags override it.
//
//	provider: documentai
//	documentai:
//	  project_id: "your-gcp-project-id"
//	  location: "eu"
//	  processor_id: "your-processor-id"
//
// Usage:
//
//	ocrebuild rebuild [flags] <document>...   OCR, then write text and PDF
//	ocrebuild text    [flags] <document>...   OCR, then write text only
//	ocrebuild render  [flags] <document>...   OCR, then write the PDF only
//	ocrebuild layers  <pdf>...                List the text layers of rendered PDFs
//
// Authentication:
//
// Document AI and Cloud Storage use the GOOGLE_APPLICATION_CREDENTIALS environment
// variable.
//
// Example:
//
//	export GOOGLE_APPLICATION_CREDENTIALS=/path/to/credentials.json
//	ocrebuild rebuild --config config.yml scan.pdf
//	ocrebuild render --provider json --invisible --background scan.analysis.json
//	ocrebuild rebuild --provider hocr --dpi 300 -o ./out page.hocr
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:           "ocrebuild",
		Short:         "Rebuild documents from OCR results as page text and PDF",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "path to the config YAML file")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "text", "log format: text|json")

	root.AddCommand(
		runCmd(&g, "rebuild", "Run OCR and write page text and the rebuilt PDF", modeAll),
		runCmd(&g, "text", "Run OCR and write page text only", modeText),
		runCmd(&g, "render", "Run OCR and write the rebuilt PDF only", modePDF),
		layersCmd(),
	)
	return root
}
