// Package buildinfo carries values stamped in at link time with
// -ldflags "-X github.com/aalvaropc/invoicer/internal/buildinfo.Version=...".
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("invoicer %s (commit=%s, date=%s)", Version, Commit, Date)
}
