package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestGet(t *testing.T) {
	embedded := &debug.BuildInfo{
		GoVersion: "go1.24.0",
		Main:      debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	tests := []struct {
		name    string
		ldflags Info
		bi      *debug.BuildInfo
		want    Info
	}{
		{
			name:    "no build info",
			ldflags: Info{Version: "dev", Commit: "none", Date: "unknown"},
			want:    Info{Version: "dev", Commit: "none", Date: "unknown"},
		},
		{
			name:    "embedded fallback",
			ldflags: Info{Version: "dev", Commit: "none", Date: "unknown"},
			bi:      embedded,
			want:    Info{Version: "v0.3.1", Commit: "abc123", Date: "2026-01-02T03:04:05Z", GoVersion: "go1.24.0"},
		},
		{
			name:    "ldflags win",
			ldflags: Info{Version: "v1.0.0", Commit: "fff", Date: "today"},
			bi:      embedded,
			want:    Info{Version: "v1.0.0", Commit: "fff", Date: "today", GoVersion: "go1.24.0"},
		},
		{
			name:    "devel module",
			ldflags: Info{Version: "dev", Commit: "none", Date: "unknown"},
			bi:      &debug.BuildInfo{GoVersion: "go1.24.0", Main: debug.Module{Version: "(devel)"}},
			want:    Info{Version: "dev", Commit: "none", Date: "unknown", GoVersion: "go1.24.0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubBuildInfo(t, tt.bi)
			v, c, d := Version, Commit, Date
			Version, Commit, Date = tt.ldflags.Version, tt.ldflags.Commit, tt.ldflags.Date
			t.Cleanup(func() { Version, Commit, Date = v, c, d })

			if got := Get(); got != tt.want {
				t.Errorf("Get() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	stubBuildInfo(t, nil)
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} version ") || !strings.Contains(got, "commit: ") {
		t.Errorf("Template() = %q", got)
	}
}
