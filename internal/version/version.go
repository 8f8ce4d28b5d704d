package version

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
)

// Version information for the pl0lex CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Colored returns Version with the major, minor and patch parts colorized.
// Versions that are not "X.Y.Z[-suffix]" are returned unchanged.
func Colored() string {
	var major, minor, patch int
	var rest string
	n, _ := fmt.Sscanf(Version, "%d.%d.%d%s", &major, &minor, &patch, &rest)
	if n < 3 {
		return Version
	}
	return versionMajorColor.Sprint(major) + "." +
		versionMinorColor.Sprint(minor) + "." +
		versionPatchColor.Sprint(patch) + rest
}

// String renders the one-line version banner.
func String() string {
	s := "pl0lex " + Colored()
	if GitCommit != "" {
		s += " (" + GitCommit + ")"
	}
	if BuildDate != "" {
		s += " built " + BuildDate
	}
	return s + " " + runtime.Version()
}
