package hocr

import (
	"strings"
)

// block is a run of words that reads as one paragraph
type block struct {
	bbox  BoundingBox
	lines [][]Word
}

// text joins the block's lines with single spaces
func (b block) text() string {
	var parts []string
	for _, line := range b.lines {
		for _, w := range line {
			if w.Text != "" {
				parts = append(parts, w.Text)
			}
		}
	}
	return strings.Join(parts, " ")
}

// words returns the block's words in reading order
func (b block) words() []Word {
	var out []Word
	for _, line := range b.lines {
		out = append(out, line...)
	}
	return out
}

// pageBlocks walks a page in document order and returns its paragraphs.
// Lines and words that sit outside any ocr_par each form a paragraph of their own.
func pageBlocks(page Page) []block {
	var blocks []block
	seen := make(map[string]bool)

	addLine := func(line Line) {
		if line.ID != "" && seen[line.ID] {
			return
		}
		seen[line.ID] = true
		if len(line.Words) > 0 {
			blocks = append(blocks, block{bbox: line.BBox, lines: [][]Word{line.Words}})
		}
	}
	addParagraph := func(para Paragraph) {
		b := block{bbox: para.BBox}
		for _, line := range para.Lines {
			if line.ID != "" && seen[line.ID] {
				continue
			}
			seen[line.ID] = true
			b.lines = append(b.lines, line.Words)
		}
		if len(para.Words) > 0 {
			b.lines = append(b.lines, para.Words)
		}
		if len(b.lines) > 0 {
			blocks = append(blocks, b)
		}
	}

	for _, area := range page.Areas {
		for _, para := range area.Paragraphs {
			addParagraph(para)
		}
		for _, line := range area.Lines {
			addLine(line)
		}
		if len(area.Words) > 0 {
			blocks = append(blocks, block{bbox: area.BBox, lines: [][]Word{area.Words}})
		}
	}
	for _, para := range page.Paragraphs {
		addParagraph(para)
	}
	for _, line := range page.Lines {
		addLine(line)
	}
	return blocks
}
