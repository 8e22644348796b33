package itemspec

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/gogpu/folio/linebreak"
)

var (
	specLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "Inf", Pattern: `[-+]?inf\b`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(specLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

// File is the root AST node.
type File struct {
	Statements []*Statement `parser:"Newline* ( @@ Newline* )*"`
}

// Statement is one line of the file.
type Statement struct {
	Pos     lexer.Position `parser:""`
	Width   *WidthStmt     `parser:"  @@"`
	Box     *BoxStmt       `parser:"| @@"`
	Glue    *GlueStmt      `parser:"| @@"`
	Penalty *PenaltyStmt   `parser:"| @@"`
	Forced  bool           `parser:"| @'forced'"`
}

// WidthStmt lists line widths.
type WidthStmt struct {
	Values []float64 `parser:"'width' @Number+"`
}

// BoxStmt is a box item.
type BoxStmt struct {
	Width float64 `parser:"'box' @Number"`
	Word  *int    `parser:"( 'word' @Number )?"`
}

// GlueStmt is a glue item.
type GlueStmt struct {
	Width   float64 `parser:"'glue' @Number"`
	Stretch float64 `parser:"@Number"`
	Shrink  float64 `parser:"@Number"`
}

// PenaltyStmt is a penalty item.
type PenaltyStmt struct {
	Width   float64 `parser:"'penalty' @Number"`
	Value   *Value  `parser:"@@"`
	Flagged bool    `parser:"@'flagged'?"`
}

// Value is a finite number or an infinity.
type Value struct {
	Number *float64 `parser:"  @Number"`
	Inf    *string  `parser:"| @Inf"`
}

// Float returns the value as a float64.
func (v *Value) Float() float64 {
	if v.Number != nil {
		return *v.Number
	}
	if strings.HasPrefix(*v.Inf, "-") {
		return math.Inf(-1)
	}
	return math.Inf(1)
}

// Spec is a parsed item stream.
type Spec struct {
	Items []linebreak.Item
	// Widths is nil when the file has no width statement.
	Widths []float64
}

// Parse reads a spec from r. name is used in error positions.
func Parse(name string, r io.Reader) (*Spec, error) {
	f, err := fileParser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("itemspec: %w", err)
	}
	return f.spec()
}

// ParseString parses a spec from a string.
func ParseString(name, input string) (*Spec, error) {
	f, err := fileParser.ParseString(name, input)
	if err != nil {
		return nil, fmt.Errorf("itemspec: %w", err)
	}
	return f.spec()
}

// spec validates the statements and converts them to items.
func (f *File) spec() (*Spec, error) {
	s := &Spec{}
	boxes := 0
	for _, st := range f.Statements {
		switch {
		case st.Width != nil:
			for _, w := range st.Width.Values {
				if w <= 0 {
					return nil, st.errorf("line width %v must be positive", w)
				}
			}
			s.Widths = append(s.Widths, st.Width.Values...)
		case st.Box != nil:
			word := boxes
			if st.Box.Word != nil {
				word = *st.Box.Word
			}
			s.Items = append(s.Items, linebreak.Box(st.Box.Width, word))
			boxes++
		case st.Glue != nil:
			g := st.Glue
			if g.Stretch < 0 || g.Shrink < 0 {
				return nil, st.errorf("glue stretch and shrink must not be negative")
			}
			s.Items = append(s.Items, linebreak.Glue(g.Width, g.Stretch, g.Shrink))
		case st.Penalty != nil:
			p := st.Penalty
			s.Items = append(s.Items, linebreak.Penalty(p.Width, p.Value.Float(), p.Flagged))
		case st.Forced:
			s.Items = append(s.Items, linebreak.ForcedBreak())
		}
	}
	return s, nil
}

func (st *Statement) errorf(format string, args ...any) error {
	return fmt.Errorf("itemspec: %s: %s", st.Pos, fmt.Sprintf(format, args...))
}
