package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/gardar/ocrebuild/pkg/analysis"
)

func word(text string, x, y, h float64) analysis.Word {
	return analysis.Word{Text: text, Polygon: analysis.RectPolygon(x, y, x+0.5, y+h)}
}

func TestGroupParagraphsStable(t *testing.T) {
	paras := []analysis.Paragraph{
		{Text: "a", PageNumber: 2},
		{Text: "b", PageNumber: 1},
		{Text: "c", PageNumber: 2},
		{Text: "d", PageNumber: 1},
		{Text: "", PageNumber: 2},
		{Text: "e", PageNumber: 9},
	}
	got := GroupParagraphs(paras)
	want := []PageText{
		{PageNumber: 2, Paragraphs: []string{"a", "c", ""}},
		{PageNumber: 1, Paragraphs: []string{"b", "d"}},
		{PageNumber: 9, Paragraphs: []string{"e"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GroupParagraphs() = %+v, want %+v", got, want)
	}
	if text := got[0].Text(); text != "a\nc\n\n" {
		t.Fatalf("Text() = %q", text)
	}
}

func TestGroupParagraphsEmpty(t *testing.T) {
	if got := GroupParagraphs(nil); len(got) != 0 {
		t.Fatalf("expected no groups, got %+v", got)
	}
}

func TestMergeRunsExample(t *testing.T) {
	words := []analysis.Word{
		word("w1", 1, 0.10, 0.1),
		word("w2", 2, 0.11, 0.1),
		word("w3", 1, 0.50, 0.1),
	}
	runs := MergeRuns(words, DefaultVariance)
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Text() != "w1 w2" || runs[1].Text() != "w3" {
		t.Fatalf("unexpected runs: %q, %q", runs[0].Text(), runs[1].Text())
	}
	if runs[0].First().Text != "w1" {
		t.Fatalf("run anchored on %q", runs[0].First().Text)
	}
}

func TestMergeRunsChainsAdjacentPairs(t *testing.T) {
	// Each step is below the variance, so the run drifts past it overall
	words := []analysis.Word{
		word("a", 0, 0.100, 0.1),
		word("b", 1, 0.115, 0.1),
		word("c", 2, 0.130, 0.1),
		word("d", 3, 0.145, 0.1),
	}
	runs := MergeRuns(words, 0.02)
	if len(runs) != 1 || runs[0].Text() != "a b c d" {
		t.Fatalf("unexpected runs: %+v", runs)
	}
}

func TestMergeRunsBoundaryStartsNewRun(t *testing.T) {
	words := []analysis.Word{word("a", 0, 0.25, 0.1), word("b", 1, 0.5, 0.1)}
	runs := MergeRuns(words, 0.25)
	if len(runs) != 2 {
		t.Fatalf("difference equal to variance must split, got %d runs", len(runs))
	}
}

func TestMergeRunsNonPositiveVariance(t *testing.T) {
	words := []analysis.Word{word("a", 0, 1, 0.1), word("b", 1, 1, 0.1)}
	for _, v := range []float64{0, -1} {
		if runs := MergeRuns(words, v); len(runs) != 2 {
			t.Fatalf("variance %v: expected 2 runs, got %d", v, len(runs))
		}
	}
}

func TestMergeRunsPartition(t *testing.T) {
	ys := []float64{0.1, 0.105, 0.9, 0.3, 0.31, 0.311, 0.7, 0.1, 0.1}
	var words []analysis.Word
	for i, y := range ys {
		words = append(words, word(string(rune('a'+i)), float64(i), y, 0.1))
	}
	runs := MergeRuns(words, DefaultVariance)

	var flat []analysis.Word
	for _, r := range runs {
		if len(r.Words) == 0 {
			t.Fatalf("empty run")
		}
		flat = append(flat, r.Words...)
	}
	if !reflect.DeepEqual(flat, words) {
		t.Fatalf("runs do not reproduce input order")
	}
	if len(runs) != 5 {
		t.Fatalf("expected 5 runs, got %d", len(runs))
	}
}

func TestMergeRunsEmpty(t *testing.T) {
	if runs := MergeRuns(nil, DefaultVariance); len(runs) != 0 {
		t.Fatalf("expected no runs, got %d", len(runs))
	}
}

func TestFontSize(t *testing.T) {
	tests := []struct {
		name string
		w    analysis.Word
		want float64
	}{
		{"invoice", analysis.Word{Polygon: analysis.RectPolygon(1, 1, 2, 1.2)}, 14.4},
		{"zero height", analysis.Word{Polygon: analysis.RectPolygon(1, 0, 2, 0)}, 7.2},
		{"negative height", analysis.Word{Polygon: analysis.RectPolygon(1, 1, 2, 0.5)}, 7.2},
		{"nan", analysis.Word{Polygon: analysis.RectPolygon(1, math.NaN(), 2, 1)}, 7.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FontSize(tt.w)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("FontSize() = %v, want %v", got, tt.want)
			}
			if got <= 0 {
				t.Fatalf("font size must be positive")
			}
		})
	}
}

func TestRunFontSizeUsesFirstWord(t *testing.T) {
	r := Run{Words: []analysis.Word{word("big", 0, 1, 0.5), word("small", 1, 1, 0.1)}}
	if got := RunFontSize(r); math.Abs(got-36) > 1e-9 {
		t.Fatalf("RunFontSize() = %v, want 36", got)
	}
}
