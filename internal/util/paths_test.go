package util

import (
	"path/filepath"
	"testing"
)

func TestHomeDir(t *testing.T) {
	home := HomeDir()
	if home == "" {
		t.Error("HomeDir() returned empty string")
	}

	// Verify it's an absolute path
	if !filepath.IsAbs(home) {
		t.Errorf("HomeDir() returned relative path: %s", home)
	}
}

func TestSnipconvConfigPath(t *testing.T) {
	t.Run("xdg set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		if got, want := SnipconvConfigPath(), filepath.Join("/tmp/xdg", "snipconv"); got != want {
			t.Errorf("SnipconvConfigPath() = %q, want %q", got, want)
		}
	})

	t.Run("xdg unset", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		want := filepath.Join(HomeDir(), ".config", "snipconv")
		if got := SnipconvConfigPath(); got != want {
			t.Errorf("SnipconvConfigPath() = %q, want %q", got, want)
		}
	})
}

func TestDefaultDataPath(t *testing.T) {
	if got := DefaultDataPath(); filepath.Base(got) != "data.json" {
		t.Errorf("DefaultDataPath() = %q, want a data.json path", got)
	}
}

func TestExpandPath(t *testing.T) {
	tests := map[string]struct {
		path    string
		baseDir string
		want    string
	}{
		"empty":        {path: "", baseDir: "/base", want: ""},
		"tilde only":   {path: "~", baseDir: "/base", want: HomeDir()},
		"tilde prefix": {path: "~/data", baseDir: "/base", want: filepath.Join(HomeDir(), "data")},
		"relative":     {path: "out/data.json", baseDir: "/base", want: "/base/out/data.json"},
		"absolute":     {path: "/abs/data.json", baseDir: "/base", want: "/abs/data.json"},
		"no base":      {path: "out", baseDir: "", want: "out"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := ExpandPath(tt.path, tt.baseDir); got != tt.want {
				t.Errorf("ExpandPath(%q, %q) = %q, want %q", tt.path, tt.baseDir, got, tt.want)
			}
		})
	}
}
