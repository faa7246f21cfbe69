// Package main provides the entry point for the cougarplanner CLI.
package main

import (
	"github.com/danielzdev/cougarplanner/cmd/cougarplanner/cmd"
)

// Version information populated by the build system.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
