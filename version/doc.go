// Package version reports the build version of wxadapter binaries.
//
// Version, Commit and BuildTime are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/wxadapter/version.Version=1.2.0" ./cmd/wxadapter
//
// Missing values are filled from the VCS stamp of the Go build info.
package version
