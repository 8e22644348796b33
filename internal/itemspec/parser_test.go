package itemspec

import (
	"math"
	"strings"
	"testing"

	"github.com/gogpu/folio/linebreak"
)

const sample = `
# two lines of three words
width 100 80

box 30
glue 6 3 2
box 25 word 7
penalty 5 50 flagged
box 20
glue 0 10000 0
forced
`

func TestParse(t *testing.T) {
	spec, err := Parse("sample.items", strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got, want := spec.Widths, []float64{100, 80}; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Widths = %v, want %v", got, want)
	}

	want := []linebreak.Item{
		linebreak.Box(30, 0),
		linebreak.Glue(6, 3, 2),
		linebreak.Box(25, 7),
		linebreak.Penalty(5, 50, true),
		linebreak.Box(20, 2),
		linebreak.Glue(0, 10000, 0),
		linebreak.ForcedBreak(),
	}
	if len(spec.Items) != len(want) {
		t.Fatalf("len(Items) = %d, want %d", len(spec.Items), len(want))
	}
	for i := range want {
		got := spec.Items[i]
		if got.Kind != want[i].Kind || got.Width != want[i].Width || got.Stretch != want[i].Stretch ||
			got.Shrink != want[i].Shrink || got.Flagged != want[i].Flagged || got.WordIndex != want[i].WordIndex {
			t.Errorf("Items[%d] = %+v, want %+v", i, got, want[i])
		}
	}
	if !spec.Items[6].IsForcedBreak() {
		t.Errorf("Items[6] = %+v, want a forced break", spec.Items[6])
	}
}

func TestParseInfinitePenalties(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"penalty 0 inf", math.Inf(1)},
		{"penalty 0 +inf", math.Inf(1)},
		{"penalty 0 -inf", math.Inf(-1)},
		{"penalty 0 -250", -250},
		{"penalty 0 1e3", 1000},
	}
	for _, tt := range tests {
		spec, err := ParseString("t", tt.input)
		if err != nil {
			t.Errorf("ParseString(%q) error = %v", tt.input, err)
			continue
		}
		if got := spec.Items[0].Penalty; got != tt.want {
			t.Errorf("ParseString(%q) penalty = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseWithoutWidths(t *testing.T) {
	spec, err := ParseString("t", "box 1\nforced")
	if err != nil {
		t.Fatal(err)
	}
	if spec.Widths != nil {
		t.Errorf("Widths = %v, want nil", spec.Widths)
	}
	if len(spec.Items) != 2 {
		t.Errorf("len(Items) = %d, want 2", len(spec.Items))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown statement", "kern 3", "bad.items:1:1"},
		{"missing glue field", "glue 1 2", "bad.items:1"},
		{"fractional word", "box 3 word 1.5", "bad.items:1"},
		{"negative shrink", "box 1\nglue 1 1 -1", "bad.items:2:1"},
		{"zero width", "width 100 0", "must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString("bad.items", tt.input)
			if err == nil {
				t.Fatalf("ParseString(%q) error = nil", tt.input)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestParsedItemsBreak(t *testing.T) {
	spec, err := ParseString("t", sample)
	if err != nil {
		t.Fatal(err)
	}
	res := linebreak.FindBreaksTiered(spec.Items, spec.Widths, linebreak.DefaultConfig())
	if len(res.Breaks) == 0 {
		t.Fatal("no breaks for parsed items")
	}
	if last := res.Breaks[len(res.Breaks)-1]; last.ItemIndex != len(spec.Items) {
		t.Errorf("last break at %d, want %d", last.ItemIndex, len(spec.Items))
	}
}
