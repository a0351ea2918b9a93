package macro

import (
	"errors"
	"reflect"
	"testing"

	"github.com/wedtex/snipconv/internal/model"
)

const exePart = `Exe('%b\Macros\Active Strings\FasTeX\FasTeX_Templates.edt');`

func TestParse(t *testing.T) {
	tests := map[string]struct {
		macro    string
		wantKind Kind
		wantID   string
		wantOK   bool
	}{
		"bare template": {
			macro:    `Assign('FasTeX','bal');` + exePart,
			wantKind: KindTemplate,
			wantID:   "bal",
			wantOK:   true,
		},
		"template with line-up": {
			macro:    `Assign('FasTeX','bdoc');` + exePart + `LineUp(2);TrackCaret;`,
			wantKind: KindTemplate,
			wantID:   "bdoc",
			wantOK:   true,
		},
		"template with line-up and char-left": {
			macro:    `Assign('FasTeX','bfig');` + exePart + `LineUp(3);TrackCaret;CharLeft;`,
			wantKind: KindTemplate,
			wantID:   "bfig",
			wantOK:   true,
		},
		"bare insert": {
			macro:    `BeginGroup;Backspace(2);Ins('\alpha');EndGroup;`,
			wantKind: KindInsert,
			wantOK:   true,
		},
		"insert with char-left": {
			macro:    `BeginGroup;Backspace(3);Ins('\frac{}{}');CharLeft;EndGroup;`,
			wantKind: KindInsert,
			wantOK:   true,
		},
		"insert with counted char-left": {
			macro:    `BeginGroup;Backspace(3);Ins('\sqrt{}');CharLeft(1);EndGroup;`,
			wantKind: KindInsert,
			wantOK:   true,
		},
		"insert with backtick delimiters": {
			macro:    "BeginGroup;Backspace(2);Ins(`\\alpha`);EndGroup;",
			wantKind: KindInsert,
			wantOK:   true,
		},
		"unrecognized command": {
			macro:  `Relax;CmdLine;`,
			wantOK: false,
		},
		"template with wrong exe path": {
			macro:  `Assign('FasTeX','bal');Exe('%b\Macros\Other.edt');`,
			wantOK: false,
		},
		"trailing garbage rejected": {
			macro:  `BeginGroup;Backspace(2);Ins('x');EndGroup;Relax;`,
			wantOK: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m, ok := Parse(tt.macro)
			if ok != tt.wantOK {
				t.Fatalf("Parse() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if m.Kind() != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", m.Kind(), tt.wantKind)
			}
			if tt.wantID != "" && m.TemplateID() != tt.wantID {
				t.Errorf("TemplateID() = %q, want %q", m.TemplateID(), tt.wantID)
			}
		})
	}
}

func TestMatchInsert(t *testing.T) {
	tests := map[string]struct {
		macro string
		want  model.Line
	}{
		"bare insert passes text through": {
			macro: `BeginGroup;Backspace(2);Ins('\alpha');EndGroup;`,
			want:  model.Line(`\alpha`),
		},
		"char-left places stop before final character": {
			macro: `BeginGroup;Backspace(3);Ins('\frac{$1}{$2}');CharLeft;EndGroup;`,
			want:  model.Line(`\frac{\$1}{\$2$1}`),
		},
		"counted char-left places stop before final n characters": {
			macro: `BeginGroup;Backspace(3);Ins('\frac{}{}');CharLeft(3);EndGroup;`,
			want:  model.Line(`\frac{$1}{}`),
		},
		"double stop drops the bullet artifact": {
			// text "ab*c" with CharLeft;CharLeft(1): $1 before "*c",
			// then the bullet "*" is dropped and $2 goes before "c".
			macro: `BeginGroup;Backspace(4);Ins('ab*c');CharLeft;CharLeft(1);EndGroup;`,
			want:  model.Line(`ab$1$2c`),
		},
		"literal dollars escaped": {
			macro: `BeginGroup;Backspace(2);Ins('$x$');EndGroup;`,
			want:  model.Line(`\$x\$`),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m, ok := Parse(tt.macro)
			if !ok {
				t.Fatalf("Parse(%q) did not match", tt.macro)
			}
			if got := m.Insert(); got != tt.want {
				t.Errorf("Insert() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatchResolve(t *testing.T) {
	table := map[string][]string{
		"bdoc": {`\documentclass{$article}`, `\begin{document}`, `\end{document}`},
	}
	lookup := func(id string) ([]string, bool) {
		lines, ok := table[id]
		return lines, ok
	}

	t.Run("line-up appends stop counted from the end", func(t *testing.T) {
		m, ok := Parse(`Assign('FasTeX','bdoc');` + exePart + `LineUp(2);TrackCaret;`)
		if !ok {
			t.Fatal("Parse() did not match")
		}
		got, err := m.Resolve(lookup)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		want := model.Block{`\documentclass{\$article}`, `\begin{document}$1`, `\end{document}`}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Resolve() = %#v, want %#v", got, want)
		}
	})

	t.Run("char-left splices stop before the line's final character", func(t *testing.T) {
		m, ok := Parse(`Assign('FasTeX','bdoc');` + exePart + `LineUp(3);TrackCaret;CharLeft;`)
		if !ok {
			t.Fatal("Parse() did not match")
		}
		got, err := m.Resolve(lookup)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		want := model.Block{`\documentclass{\$article$1}`, `\begin{document}`, `\end{document}`}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Resolve() = %#v, want %#v", got, want)
		}
	})

	t.Run("missing identifier is a lookup error", func(t *testing.T) {
		m, ok := Parse(`Assign('FasTeX','gone');` + exePart)
		if !ok {
			t.Fatal("Parse() did not match")
		}
		_, err := m.Resolve(lookup)
		var lookupErr *LookupError
		if !errors.As(err, &lookupErr) {
			t.Fatalf("Resolve() error = %v, want LookupError", err)
		}
		if lookupErr.ID != "gone" {
			t.Errorf("LookupError.ID = %q, want %q", lookupErr.ID, "gone")
		}
	})

	t.Run("resolve does not mutate the table", func(t *testing.T) {
		m, _ := Parse(`Assign('FasTeX','bdoc');` + exePart + `LineUp(2);TrackCaret;`)
		if _, err := m.Resolve(lookup); err != nil {
			t.Fatal(err)
		}
		if table["bdoc"][1] != `\begin{document}` {
			t.Errorf("table mutated: %q", table["bdoc"][1])
		}
	})
}
