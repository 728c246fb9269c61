package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func TestGet_Defaults(t *testing.T) {
	info := Get()
	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
}

func TestApplyBuildSettings(t *testing.T) {
	info := Info{Version: "1.0.0"}
	applyBuildSettings(&info, []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
	})
	if info.Commit != "0123456" || !info.Dirty || info.BuildTime != "2026-01-02T03:04:05Z" {
		t.Errorf("unexpected info: %+v", info)
	}

	linked := Info{Commit: "abc", BuildTime: "linked"}
	applyBuildSettings(&linked, []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
	})
	if linked.Commit != "abc" || linked.BuildTime != "linked" {
		t.Errorf("ldflags values must win: %+v", linked)
	}
}

func TestInfo_Strings(t *testing.T) {
	tests := []struct {
		info  Info
		short string
	}{
		{Info{Version: "dev"}, "dev"},
		{Info{Version: "1.0.0", Commit: "abc1234"}, "1.0.0-abc1234"},
		{Info{Version: "1.0.0", Commit: "abc1234", Dirty: true}, "1.0.0-abc1234-dirty"},
	}
	for _, tc := range tests {
		if got := tc.info.Short(); got != tc.short {
			t.Errorf("Short() = %q, want %q", got, tc.short)
		}
	}

	info := Info{Version: "1.0.0", GoVersion: "go1.26.0", BuildTime: "2026-01-02T03:04:05Z"}
	if s := info.String(); !strings.Contains(s, "1.0.0 (go1.26.0)") || !strings.Contains(s, "built 2026-01-02") {
		t.Errorf("unexpected String(): %q", s)
	}
	if ua := info.UserAgent("fetchkit"); ua != "fetchkit/1.0.0" {
		t.Errorf("UserAgent = %q", ua)
	}
}
