package cli

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/gridlock/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(xdg, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	c := &CLI{Config: config.Default()}
	c.Config.Cache.Dir = "/srv/gridlock-cache"

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/srv/gridlock-cache" {
		t.Errorf("cacheDir() = %q", dir)
	}
}

func TestPuzzleName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"boards/jam-7.txt", "jam-7"},
		{"level", "level"},
		{"-", "board"},
		{"", "board"},
	}
	for _, tt := range tests {
		if got := puzzleName(tt.path); got != tt.want {
			t.Errorf("puzzleName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
