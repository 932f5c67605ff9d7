package version

import "github.com/fatih/color"

// Version information for the deprecheck CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	restColor  = color.New(color.FgBlue, color.Bold)
)

// Colored returns Version with its components highlighted; color is
// dropped automatically when stdout is not a terminal.
func Colored() string {
	major, minor, rest := split(Version)
	if minor == "" {
		return majorColor.Sprint(major)
	}
	return majorColor.Sprint(major) + "." + minorColor.Sprint(minor) + "." + restColor.Sprint(rest)
}

func split(v string) (major, minor, rest string) {
	parts := [3]string{}
	i := 0
	start := 0
	for j := 0; j < len(v) && i < 2; j++ {
		if v[j] == '.' {
			parts[i] = v[start:j]
			i++
			start = j + 1
		}
	}
	if i < 2 {
		return v, "", ""
	}
	parts[2] = v[start:]
	return parts[0], parts[1], parts[2]
}
