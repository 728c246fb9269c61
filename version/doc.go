// Package version reports build information and derives the User-Agent
// the fetch CLI sends.
//
// Version, Commit and BuildTime are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/fetchkit/version.Version=1.0.0"
//
// Without ldflags the commit and build time come from the VCS stamp in the
// binary's build info.
package version
