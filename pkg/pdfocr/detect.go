package pdfocr

import (
	"fmt"
	"regexp"
	"strconv"
)

var ocgPattern = regexp.MustCompile(`/Type\s*/OCG\s*/Name\s*\(`)

// DetectLayers finds the names of the optional content groups (layers) in raw PDF data,
// in the order they appear.
func DetectLayers(pdfData []byte) ([]string, error) {
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("empty PDF data")
	}

	content := string(pdfData)
	var layers []string
	for _, loc := range ocgPattern.FindAllStringIndex(content, -1) {
		name, _ := readLiteralString(content, loc[1])
		layers = append(layers, name)
	}

	// Check if any are UTF-16 BOM
	for i, layer := range layers {
		if len(layer) >= 2 && layer[0] == '\xfe' && layer[1] == '\xff' {
			decoded, err := decodeUTF16BE([]byte(layer))
			if err == nil {
				layers[i] = decoded
			}
		}
	}

	// Deduplicate
	unique := make([]string, 0, len(layers))
	seen := make(map[string]bool)
	for _, l := range layers {
		if !seen[l] {
			seen[l] = true
			unique = append(unique, l)
		}
	}
	return unique, nil
}

// readLiteralString reads a PDF literal string whose body starts at start (just after
// the opening parenthesis). It returns the unescaped body and the offset after the
// closing parenthesis.
func readLiteralString(content string, start int) (string, int) {
	depth := 1
	i := start
	for ; i < len(content); i++ {
		switch content[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return unescapePDFString(content[start:i]), i + 1
			}
		}
	}
	return unescapePDFString(content[start:]), len(content)
}

// LayerCheckResult contains the results of checking for text layers
type LayerCheckResult struct {
	Layers     []string // All detected layers
	TextLayers []string // Layers named after the configured layer name
	Pages      []int    // Page numbers parsed from the text layer names
}

// CheckLayers lists the layers of a PDF and picks out the per-page text layers
// written with the given base name.
func CheckLayers(pdfData []byte, layerName string) (LayerCheckResult, error) {
	result := LayerCheckResult{}

	layers, err := DetectLayers(pdfData)
	if err != nil {
		return result, fmt.Errorf("cannot analyze layers: %w", err)
	}
	result.Layers = layers

	pageLayerPattern := regexp.MustCompile(fmt.Sprintf(`^%s\s*\(Page\s*(\d+)\)$`, regexp.QuoteMeta(layerName)))
	for _, layer := range layers {
		m := pageLayerPattern.FindStringSubmatch(layer)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		result.TextLayers = append(result.TextLayers, layer)
		result.Pages = append(result.Pages, n)
	}
	return result, nil
}
