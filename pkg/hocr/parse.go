package hocr

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

// lineClasses are the hOCR classes Tesseract uses for a line of text
var lineClasses = []string{"ocr_line", "ocr_caption", "ocr_textfloat", "ocr_header", "ocrx_line"}

// ParseHOCR converts raw hOCR data into a structured HOCR object.
func ParseHOCR(data []byte) (HOCR, error) {
	var result HOCR
	result.Metadata = make(map[string]string)

	// Convert to UTF-8 if needed
	decoded := data
	if enc := detectCharset(string(data)); enc != "" && enc != "utf-8" && enc != "utf8" {
		var err error
		decoded, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return result, fmt.Errorf("failed to decode %s: %w", enc, err)
		}
	}

	doc, err := html.Parse(strings.NewReader(string(decoded)))
	if err != nil {
		return result, fmt.Errorf("failed to parse hOCR HTML: %w", err)
	}

	// Extract document metadata from the head section
	extractDocumentMeta(&result, doc)

	for _, n := range collect(doc, "ocr_page")["ocr_page"] {
		result.Pages = append(result.Pages, processPage(n))
	}
	if len(result.Pages) == 0 {
		return result, fmt.Errorf("no ocr_page elements found in HOCR data")
	}
	return result, nil
}

// detectCharset returns the lower-cased charset declared in the document, if any
func detectCharset(content string) string {
	i := strings.Index(content, "charset=")
	if i < 0 {
		return ""
	}
	snippet := content[i+len("charset="):]
	if len(snippet) > 20 {
		snippet = snippet[:20]
	}
	fields := strings.FieldsFunc(snippet, func(r rune) bool {
		return r == '"' || r == ';' || r == '\'' || r == '>' || r == ' ' || r == '/'
	})
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// ParseTitle breaks down an hOCR title attribute into its components
// Example input: "bbox 100 200 300 400; x_wconf 95"
func ParseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(part)
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

// ParseBoundingBoxFromTitle extracts a bounding box from a title string
// Returns a structured BoundingBox object or nil if extraction fails
func ParseBoundingBoxFromTitle(title string) *BoundingBox {
	bbox, ok := ParseTitle(title)["bbox"]
	if !ok || len(bbox) < 4 {
		return nil
	}
	var v [4]float64
	for i := range v {
		f, err := strconv.ParseFloat(bbox[i], 64)
		if err != nil {
			return nil
		}
		v[i] = f
	}
	return &BoundingBox{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}
}

// extractDocumentMeta extracts document-level metadata from the html and head elements
func extractDocumentMeta(result *HOCR, doc *html.Node) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "html":
				if lang := getAttrVal(n, "lang"); lang != "" {
					result.Language = lang
				} else if lang := getAttrVal(n, "xml:lang"); lang != "" {
					result.Language = lang
				}
			case "title":
				if n.FirstChild != nil {
					result.Title = n.FirstChild.Data
				}
			case "meta":
				name, content := getAttrVal(n, "name"), getAttrVal(n, "content")
				if strings.HasPrefix(name, "ocr-") && content != "" {
					result.Metadata[name] = content
				}
			case "body":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
}

// processPage extracts page information and its children (areas, paragraphs, lines)
func processPage(n *html.Node) Page {
	page := Page{ID: getAttrVal(n, "id"), Lang: getAttrVal(n, "lang")}

	title := getAttrVal(n, "title")
	if bbox := ParseBoundingBoxFromTitle(title); bbox != nil {
		page.BBox = *bbox
	}
	props := ParseTitle(title)
	if image, ok := props["image"]; ok && len(image) > 0 {
		page.ImageName = strings.Trim(strings.Join(image, " "), `"`)
	}
	if ppageno, ok := props["ppageno"]; ok && len(ppageno) > 0 {
		if n, err := strconv.Atoi(ppageno[0]); err == nil {
			page.PageNumber = n + 1
		}
	}
	if res, ok := props["scan_res"]; ok && len(res) > 0 {
		page.DPI, _ = strconv.ParseFloat(res[0], 64)
	}

	children := collect(n, append([]string{"ocr_carea", "ocr_par"}, lineClasses...)...)
	for _, c := range children["ocr_carea"] {
		page.Areas = append(page.Areas, processArea(c))
	}
	for _, c := range children["ocr_par"] {
		page.Paragraphs = append(page.Paragraphs, processParagraph(c))
	}
	for _, c := range linesOf(children) {
		page.Lines = append(page.Lines, processLine(c))
	}
	return page
}

// processArea extracts area information and its children (paragraphs, lines, words)
func processArea(n *html.Node) Area {
	area := Area{ID: getAttrVal(n, "id")}
	if bbox := ParseBoundingBoxFromTitle(getAttrVal(n, "title")); bbox != nil {
		area.BBox = *bbox
	}

	children := collect(n, append([]string{"ocr_par", "ocrx_word"}, lineClasses...)...)
	for _, c := range children["ocr_par"] {
		area.Paragraphs = append(area.Paragraphs, processParagraph(c))
	}
	for _, c := range linesOf(children) {
		area.Lines = append(area.Lines, processLine(c))
	}
	for _, c := range children["ocrx_word"] {
		area.Words = append(area.Words, processWord(c))
	}
	return area
}

// processParagraph extracts paragraph information and its children (lines, words)
func processParagraph(n *html.Node) Paragraph {
	paragraph := Paragraph{ID: getAttrVal(n, "id"), Lang: getAttrVal(n, "lang")}
	if bbox := ParseBoundingBoxFromTitle(getAttrVal(n, "title")); bbox != nil {
		paragraph.BBox = *bbox
	}

	children := collect(n, append([]string{"ocrx_word"}, lineClasses...)...)
	for _, c := range linesOf(children) {
		paragraph.Lines = append(paragraph.Lines, processLine(c))
	}
	for _, c := range children["ocrx_word"] {
		paragraph.Words = append(paragraph.Words, processWord(c))
	}
	return paragraph
}

// processLine extracts line information and its words
func processLine(n *html.Node) Line {
	line := Line{ID: getAttrVal(n, "id")}
	title := getAttrVal(n, "title")
	if bbox := ParseBoundingBoxFromTitle(title); bbox != nil {
		line.BBox = *bbox
	}
	if baseline, ok := ParseTitle(title)["baseline"]; ok && len(baseline) > 0 {
		line.Baseline = strings.Join(baseline, " ")
	}

	for _, c := range collect(n, "ocrx_word")["ocrx_word"] {
		line.Words = append(line.Words, processWord(c))
	}
	return line
}

// processWord extracts a word element's text and properties
func processWord(n *html.Node) Word {
	word := Word{ID: getAttrVal(n, "id"), Lang: getAttrVal(n, "lang")}
	title := getAttrVal(n, "title")
	if bbox := ParseBoundingBoxFromTitle(title); bbox != nil {
		word.BBox = *bbox
	}
	props := ParseTitle(title)
	if conf, ok := props["x_wconf"]; ok && len(conf) > 0 {
		word.Confidence, _ = strconv.ParseFloat(conf[0], 64)
	}
	word.Text = extractTextContent(n)
	return word
}

// collect returns, per class, the elements below n that carry one of the classes.
// It does not descend into a matched element, so nested structure is left to the
// element's own processing.
func collect(n *html.Node, classes ...string) map[string][]*html.Node {
	found := make(map[string][]*html.Node)
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			for _, class := range classes {
				if hasClass(node, class) {
					found[class] = append(found[class], node)
					return
				}
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return found
}

// linesOf merges the collected line-like elements back into document order
func linesOf(children map[string][]*html.Node) []*html.Node {
	var lines []*html.Node
	for _, class := range lineClasses {
		lines = append(lines, children[class]...)
	}
	if len(lines) < 2 {
		return lines
	}
	// Different line classes were collected separately; restore source order
	order := make(map[*html.Node]int)
	i := 0
	var number func(*html.Node)
	number = func(n *html.Node) {
		order[n] = i
		i++
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			number(c)
		}
	}
	root := lines[0]
	for root.Parent != nil {
		root = root.Parent
	}
	number(root)
	sort.SliceStable(lines, func(a, b int) bool { return order[lines[a]] < order[lines[b]] })
	return lines
}

// hasClass reports whether the element's class attribute contains class as a token
func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttrVal(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// extractTextContent gets all text from a node and its children
func extractTextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(extractTextContent(c))
	}
	return strings.TrimSpace(b.String())
}

// Get the value of a specific attribute from a node
func getAttrVal(n *html.Node, attrName string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrName {
			return attr.Val
		}
	}
	return ""
}
