package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/ternarybob/banner"
)

// PrintBanner displays the application startup banner to stderr.
func PrintBanner(config *Config) {
	version := GetVersion()
	build := GetBuild()
	commit := GetGitCommit()

	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 70
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		` 888    d8P  8888888888 .d8888b.  .d8888b.        d8888 888b    888`,
		` 888   d8P   888       d88P  Y88bd88P  Y88b      d88888 8888b   888`,
		` 888  d8P    888       Y88b.     Y88b.          d88P888 88888b  888`,
		` 888d88K     8888888    "Y888b.   "Y888b.      d88P 888 888Y88b 888`,
		` 8888888b    888           "Y88b.    "Y88b.   d88P  888 888 Y88b888`,
		` 888  Y88b   888             "888      "888  d88P   888 888  Y88888`,
		` 888   Y88b  888       Y88b  d88PY88b  d88P d8888888888 888   Y8888`,
		` 888    Y88b 8888888888 "Y8888P"  "Y8888P" d88P     888 888    Y888`,
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")
	for _, line := range art {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s  Company Financial Data Pipeline%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")

	kvPad := 16
	kvLines := [][2]string{
		{"Version", version},
		{"Build", build},
		{"Commit", commit},
		{"Environment", config.Environment},
		{"Data Path", config.Storage.Data.Path},
		{"CMS", config.Clients.WordPress.BaseURL},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(os.Stderr, "%s  %-*s %s%s\n", textColor, kvPad, kv[0], kv[1], banner.ColorReset)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")
}
