package model

import "testing"

func TestMaxTabStop(t *testing.T) {
	tests := map[string]struct {
		body Body
		want int
	}{
		"no markers":           {body: Line("plain"), want: 0},
		"single marker":        {body: Line(`\frac{$1}{}`), want: 1},
		"two markers":          {body: Line(`\frac{$1}{$2}`), want: 2},
		"escaped not counted":  {body: Line(`\$1 costs \$2`), want: 0},
		"block takes max":      {body: Block{"a$1", "b$3", "c$2"}, want: 3},
		"marker at line start": {body: Line("$1rest"), want: 1},
		"empty block":          {body: Block{}, want: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := MaxTabStop(tt.body); got != tt.want {
				t.Errorf("MaxTabStop() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRewriteFinalStop(t *testing.T) {
	tests := map[string]struct {
		in   string
		max  int
		want string
	}{
		"highest becomes zero":   {in: `\frac{$1}{$2}`, max: 2, want: `\frac{$1}{$0}`},
		"lower stops untouched":  {in: "a$1b$2", max: 2, want: "a$1b$0"},
		"escaped left alone":     {in: `\$2`, max: 2, want: `\$2`},
		"marker at start":        {in: "$1x", max: 1, want: "$0x"},
		"zero max is a no-op":    {in: "a$1", max: 0, want: "a$1"},
		"adjacent markers":       {in: "$1$2", max: 2, want: "$1$0"},
		"already rewritten stay": {in: "a$0", max: 2, want: "a$0"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := RewriteFinalStop(tt.in, tt.max); got != tt.want {
				t.Errorf("RewriteFinalStop(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestDoubleTabStops(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"single marker":      {in: `\frac{$1}{$2}`, want: `\frac{$$1}{$$2}`},
		"final stop single":  {in: "a$1b$0", want: "a$$1b$0"},
		"escaped untouched":  {in: `\$1`, want: `\$1`},
		"adjacent markers":   {in: "$1$2", want: "$$1$$2"},
		"no markers":         {in: "plain", want: "plain"},
		"dollar at line end": {in: "cost $", want: "cost $"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := DoubleTabStops(tt.in); got != tt.want {
				t.Errorf("DoubleTabStops(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripTabStops(t *testing.T) {
	tests := map[string]struct {
		in    string
		limit int
		want  string
	}{
		"removes markers":    {in: `\frac{$1}{$2}`, limit: 9, want: `\frac{}{}`},
		"respects limit":     {in: "$1$2$3", limit: 2, want: "$3"},
		"negative unlimited": {in: "$1$2$3", limit: -1, want: ""},
		"escaped kept":       {in: `\$1 and $2`, limit: 9, want: `\$1 and `},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := StripTabStops(tt.in, tt.limit); got != tt.want {
				t.Errorf("StripTabStops(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}
