package cli

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/config"
)

func TestCacheDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{"default", "", filepath.Join(home, ".cache", appName)},
		{"xdg", "/tmp/custom-cache", filepath.Join("/tmp/custom-cache", appName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			got, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("cacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocalCacheDirPrefersConfig(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	c := &CLI{Config: config.Default()}
	got, err := c.localCacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg-cache", appName); got != want {
		t.Errorf("without [cache] dir: %q, want %q", got, want)
	}

	c.Config.Cache.Dir = "/srv/clouds"
	if got, _ := c.localCacheDir(); got != "/srv/clouds" {
		t.Errorf("with [cache] dir: %q", got)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only honoured on Linux")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	want := filepath.Join("/tmp/xdg-config", appName, config.FileName)
	if got := defaultConfigHint(); got != want {
		t.Errorf("defaultConfigHint() = %q, want %q", got, want)
	}
}
