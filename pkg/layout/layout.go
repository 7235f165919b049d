// Package layout reconstructs visual structure from OCR geometry.
//
// The functions here are pure: they read the analysis data model and return new values.
//
// - GroupParagraphs: partitions paragraphs by page, keeping their order
// - MergeRuns: folds consecutive words that share a vertical position into runs
// - FontSize / RunFontSize: infer a font size in points from a word's polygon height
package layout

import (
	"math"
	"strings"

	"github.com/gardar/ocrebuild/pkg/analysis"
)

const (
	// DefaultVariance is the vertical tolerance, in physical units, for treating two words as co-linear
	DefaultVariance = 0.02

	// PointsPerUnit converts physical units (inches) to PDF points
	PointsPerUnit = 72.0

	// MinTextHeight replaces zero or negative text heights, in physical units
	MinTextHeight = 0.1
)

// PageText is the paragraph text that belongs to one page
type PageText struct {
	PageNumber int
	Paragraphs []string
}

// Text joins the paragraphs, each followed by a newline
func (p PageText) Text() string {
	var b strings.Builder
	for _, para := range p.Paragraphs {
		b.WriteString(para)
		b.WriteString("\n")
	}
	return b.String()
}

// GroupParagraphs partitions paragraphs by page number.
// Groups are ordered by the first appearance of their page number and the
// paragraphs inside a group keep their original relative order.
func GroupParagraphs(paragraphs []analysis.Paragraph) []PageText {
	var groups []PageText
	index := make(map[int]int)
	for _, para := range paragraphs {
		i, ok := index[para.PageNumber]
		if !ok {
			i = len(groups)
			index[para.PageNumber] = i
			groups = append(groups, PageText{PageNumber: para.PageNumber})
		}
		groups[i].Paragraphs = append(groups[i].Paragraphs, para.Text)
	}
	return groups
}

// Run is a maximal sequence of consecutive words judged to lie on the same line
type Run struct {
	Words []analysis.Word
}

// First returns the word that anchors the run
func (r Run) First() analysis.Word { return r.Words[0] }

// Text joins the words of the run with single spaces
func (r Run) Text() string {
	parts := make([]string, len(r.Words))
	for i, w := range r.Words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// MergeRuns groups words into runs in a single greedy pass over the given order.
// A word joins the current run when its top-left Y is within variance of the
// previous word in that run, otherwise it starts a new run. Words are not re-sorted,
// so runs follow the OCR emission order rather than visual line order.
func MergeRuns(words []analysis.Word, variance float64) []Run {
	var runs []Run
	for i := 0; i < len(words); i++ {
		run := Run{Words: []analysis.Word{words[i]}}
		// Words folded into this run are consumed and never start a run themselves
		for i+1 < len(words) &&
			math.Abs(words[i+1].Polygon.TopLeft().Y-words[i].Polygon.TopLeft().Y) < variance {
			i++
			run.Words = append(run.Words, words[i])
		}
		runs = append(runs, run)
	}
	return runs
}

// TextHeight returns the word's polygon height, clamped to MinTextHeight when it is
// zero, negative or not a number.
func TextHeight(w analysis.Word) float64 {
	h := w.Polygon.Height()
	if !(h > 0) {
		return MinTextHeight
	}
	return h
}

// FontSize returns the font size in points for a word
func FontSize(w analysis.Word) float64 {
	return ToPoints(TextHeight(w))
}

// RunFontSize sizes a run by its first word
func RunFontSize(r Run) float64 {
	return FontSize(r.First())
}

// ToPoints converts a physical length to points
func ToPoints(v float64) float64 {
	return v * PointsPerUnit
}
