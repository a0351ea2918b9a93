package convert

import (
	"reflect"
	"testing"

	"github.com/wedtex/snipconv/internal/model"
)

func TestVSCode(t *testing.T) {
	tests := map[string]struct {
		snip model.Snippet
		opts Options
		want VSCodeSnippet
	}{
		"no markers passes body through": {
			snip: model.Snippet{Trigger: "xa", Body: model.Line(`\alpha`), Description: `\alpha`},
			opts: Options{Prefix: ";", EndTab: true},
			want: VSCodeSnippet{Prefix: ";xa", Body: model.Line(`\alpha`), Description: `\alpha`},
		},
		"endtab keeps markers": {
			snip: model.Snippet{Trigger: "fr", Body: model.Line(`\frac{$1}{$2}`)},
			opts: Options{EndTab: true},
			want: VSCodeSnippet{Prefix: "fr", Body: model.Line(`\frac{$1}{$2}`)},
		},
		"no endtab rewrites highest to final stop": {
			snip: model.Snippet{Trigger: "fr", Body: model.Line(`\frac{$1}{$2}`)},
			opts: Options{},
			want: VSCodeSnippet{Prefix: "fr", Body: model.Line(`\frac{$1}{$0}`)},
		},
		"block rewrite": {
			snip: model.Snippet{Trigger: "bd", Body: model.Block{"a$1", "b$2"}},
			opts: Options{Suffix: "  "},
			want: VSCodeSnippet{Prefix: "bd  ", Body: model.Block{"a$1", "b$0"}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := VSCode(tt.snip, tt.opts); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("VSCode() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

// Converting a converter's own output again with endtab on changes no
// tab-stop markers.
func TestVSCodeIdempotent(t *testing.T) {
	snips := []model.Snippet{
		{Trigger: "fr", Body: model.Line(`\frac{$1}{$2}`), Description: "frac"},
		{Trigger: "bd", Body: model.Block{"a$1", "b"}, Description: "bd"},
		{Trigger: "pl", Body: model.Line("plain"), Description: "plain"},
	}
	opts := Options{EndTab: true}
	for _, s := range snips {
		once := VSCode(s, opts)
		again := VSCode(model.Snippet{Trigger: once.Prefix, Body: once.Body, Description: once.Description}, Options{EndTab: true})
		if !reflect.DeepEqual(once.Body, again.Body) {
			t.Errorf("second conversion changed body: %#v -> %#v", once.Body, again.Body)
		}
	}
}

func TestVSCodeAll(t *testing.T) {
	snips := []model.Snippet{
		{Trigger: "a", Body: model.Line("one"), Description: "first"},
		{Trigger: "b", Body: model.Line("two"), Description: "second"},
		{Trigger: "c", Body: model.Line("three"), Description: "first"},
	}
	got := VSCodeAll(snips, Options{EndTab: true})

	if got.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (duplicate description collapsed)", got.Len())
	}
	v, _ := got.Get("first")
	if v.(VSCodeSnippet).Body != model.Line("three") {
		t.Errorf("duplicate key: last write should win, got %#v", v)
	}
	if keys := got.Keys(); keys[0] != "first" || keys[1] != "second" {
		t.Errorf("Keys() = %v, want source order preserved", keys)
	}
}

func TestAtom(t *testing.T) {
	tests := map[string]struct {
		snip model.Snippet
		opts Options
		want AtomSnippet
	}{
		"no markers undecorated body": {
			snip: model.Snippet{Trigger: "xa", Body: model.Line(`\alpha`)},
			opts: Options{Prefix: ";", EndTab: true},
			want: AtomSnippet{Prefix: ";xa", Body: `\alpha`},
		},
		"endtab appends synthesized final stop": {
			snip: model.Snippet{Trigger: "fr", Body: model.Line(`\frac{$1}{$2}`)},
			opts: Options{EndTab: true},
			want: AtomSnippet{Prefix: "fr", Body: `\frac{$1}{$2}$3`},
		},
		"block joined with newline": {
			snip: model.Snippet{Trigger: "bd", Body: model.Block{"a$1", "b"}},
			opts: Options{EndTab: true},
			want: AtomSnippet{Prefix: "bd", Body: "a$1\nb\n$2"},
		},
		"no endtab leaves body alone": {
			snip: model.Snippet{Trigger: "bd", Body: model.Block{"a", "b"}},
			opts: Options{},
			want: AtomSnippet{Prefix: "bd", Body: "a\nb"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Atom(tt.snip, tt.opts); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Atom() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestAtomAll(t *testing.T) {
	snips := []model.Snippet{
		{Trigger: "xa", Body: model.Line(`\alpha`), Description: "alpha"},
	}
	got := AtomAll(snips, Options{Prefix: ";", EndTab: true})

	if keys := got.Keys(); len(keys) != 1 || keys[0] != AtomScope {
		t.Fatalf("Keys() = %v, want [%s]", got.Keys(), AtomScope)
	}
}

func TestLive(t *testing.T) {
	tests := map[string]struct {
		snip model.Snippet
		opts Options
		want LiveSnippet
	}{
		"single line gets anchor, leading stop, doubled sigils": {
			snip: model.Snippet{
				Trigger:     "fr",
				Body:        model.Line(`\frac{$1}{$2}`),
				Mode:        model.ModeMaths,
				Description: `\frac{}{}`,
			},
			opts: Options{Suffix: "  ", EndTab: true},
			want: LiveSnippet{
				Prefix:              `(^|[^\\])fr  `,
				Body:                `$1\frac{$$1}{$$2}`,
				Mode:                model.ModeMaths,
				TriggerWhenComplete: true,
				Description:         `\frac{}{}`,
				Priority:            2,
			},
		},
		"no endtab rewrites final stop before doubling": {
			snip: model.Snippet{Trigger: "fr", Body: model.Line("a$1b$2"), Mode: model.ModeAny},
			opts: Options{},
			want: LiveSnippet{
				Prefix:              `(^|[^\\])fr`,
				Body:                "$1a$$1b$0",
				Mode:                model.ModeAny,
				TriggerWhenComplete: true,
				Priority:            2,
			},
		},
		"block joined with escape sequence": {
			snip: model.Snippet{Trigger: "bd", Body: model.Block{"a$1", "b"}, Mode: model.ModeText},
			opts: Options{EndTab: true},
			want: LiveSnippet{
				Prefix:              `(^|[^\\])bd`,
				Body:                `$1\na$$1\nb`,
				Mode:                model.ModeText,
				TriggerWhenComplete: true,
				Priority:            2,
			},
		},
		"no markers only static decoration": {
			snip: model.Snippet{Trigger: "xab", Body: model.Line(`\alpha\beta`), Mode: model.ModeMaths},
			opts: Options{EndTab: true},
			want: LiveSnippet{
				Prefix:              `(^|[^\\])xab`,
				Body:                `$1\alpha\beta`,
				Mode:                model.ModeMaths,
				TriggerWhenComplete: true,
				Priority:            3,
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Live(tt.snip, tt.opts); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Live() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	snips := []model.Snippet{
		{Trigger: "xa", Body: model.Line(`\alpha`), Mode: model.ModeMaths, Description: "alpha"},
		{Trigger: "bd", Body: model.Block{"a", "b"}, Mode: model.ModeText, Description: "bd"},
	}
	live, vsc := Split(snips, Options{Suffix: "  ", EndTab: true}, Options{Prefix: ";", EndTab: true})

	if len(live) != 1 || live[0].Priority != 2 {
		t.Errorf("Split() live = %#v, want one single-line entry", live)
	}
	if vsc.Len() != 1 {
		t.Errorf("Split() vscode len = %d, want 1", vsc.Len())
	}
	v, ok := vsc.Get("bd")
	if !ok || v.(VSCodeSnippet).Prefix != ";bd" {
		t.Errorf("Split() vscode entry = %#v", v)
	}
}
