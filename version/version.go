package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Set at build time using -ldflags.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// Info is the resolved build information.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
}

// Get resolves the build information. Link-time values win over the VCS
// stamp.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, BuildTime: BuildTime}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		applySettings(&info, bi.Settings)
	}
	if len(info.Commit) > 7 {
		info.Commit = info.Commit[:7]
	}
	return info
}

func applySettings(info *Info, settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
}

// IsRelease reports whether the version was stamped from a clean build.
func (i Info) IsRelease() bool {
	return i.Version != "dev" && !i.Dirty
}

// String formats i as "1.2.0 (abc1234, dirty, built 2026-01-02T03:04:05Z, go1.26.0)".
func (i Info) String() string {
	var details []string
	if i.Commit != "" {
		details = append(details, i.Commit)
	}
	if i.Dirty {
		details = append(details, "dirty")
	}
	if i.BuildTime != "" {
		details = append(details, "built "+i.BuildTime)
	}
	if i.GoVersion != "" {
		details = append(details, i.GoVersion)
	}
	if len(details) == 0 {
		return i.Version
	}
	return fmt.Sprintf("%s (%s)", i.Version, strings.Join(details, ", "))
}

// UserAgent returns "product/version".
func UserAgent(product string) string {
	return product + "/" + Version
}
