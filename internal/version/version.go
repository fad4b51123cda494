// internal/version/version.go
package version

// Version is stamped at release time:
//
//	go build -ldflags "-X seqindex/internal/version.Version=v1.2.3"
var Version = "0.0.0-dev"
