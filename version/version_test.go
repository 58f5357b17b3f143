package version

import (
	"runtime/debug"
	"testing"
)

func restore(t *testing.T) {
	v, c, b := Version, Commit, BuildTime
	t.Cleanup(func() { Version, Commit, BuildTime = v, c, b })
}

func TestGet_LinkTimeValues(t *testing.T) {
	restore(t)
	Version, Commit, BuildTime = "1.2.0", "abcdef1234", "2026-01-02T03:04:05Z"

	info := Get()
	if info.Version != "1.2.0" {
		t.Errorf("expected 1.2.0, got %s", info.Version)
	}
	if info.Commit != "abcdef1" {
		t.Errorf("expected commit shortened to abcdef1, got %s", info.Commit)
	}
	if info.BuildTime != "2026-01-02T03:04:05Z" {
		t.Errorf("expected link-time build time, got %s", info.BuildTime)
	}
}

func TestApplySettings(t *testing.T) {
	info := Info{Version: "dev", BuildTime: "fixed"}
	applySettings(&info, []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789"},
		{Key: "vcs.time", Value: "2026-05-01T00:00:00Z"},
		{Key: "vcs.modified", Value: "true"},
	})

	if info.Commit != "0123456789" {
		t.Errorf("expected revision from build info, got %s", info.Commit)
	}
	if info.BuildTime != "fixed" {
		t.Errorf("expected existing build time to win, got %s", info.BuildTime)
	}
	if !info.Dirty {
		t.Error("expected dirty build")
	}
}

func TestInfo_String(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "dev"}, "dev"},
		{Info{Version: "1.0.0", Commit: "abc1234", GoVersion: "go1.26.0"}, "1.0.0 (abc1234, go1.26.0)"},
		{Info{Version: "1.0.0", Commit: "abc1234", Dirty: true, BuildTime: "t"}, "1.0.0 (abc1234, dirty, built t)"},
	}
	for _, tt := range tests {
		if got := tt.info.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestInfo_IsRelease(t *testing.T) {
	if (Info{Version: "dev"}).IsRelease() {
		t.Error("dev should not be a release")
	}
	if (Info{Version: "1.0.0", Dirty: true}).IsRelease() {
		t.Error("dirty build should not be a release")
	}
	if !(Info{Version: "1.0.0"}).IsRelease() {
		t.Error("1.0.0 should be a release")
	}
}

func TestUserAgent(t *testing.T) {
	restore(t)
	Version = "2.0.0"
	if got := UserAgent("wxadapter"); got != "wxadapter/2.0.0" {
		t.Errorf("expected wxadapter/2.0.0, got %s", got)
	}
}
