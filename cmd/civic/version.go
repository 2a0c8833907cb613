package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// Set at release time with -ldflags "-X main.Version=... -X main.Commit=...".
// Without Commit, the VCS stamp go build records is used.
var (
	Version = "0.3.0"
	Commit  = ""
)

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := currentVersion(debug.ReadBuildInfo)
		if jsonOutput {
			outputJSON(info)
			return
		}
		fmt.Println(info.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// currentVersion combines the ldflags values with the build info stamp.
func currentVersion(readBuildInfo func() (*debug.BuildInfo, bool)) versionInfo {
	info := versionInfo{Version: Version, Commit: Commit, GoVersion: runtime.Version()}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String renders e.g. "civic 0.3.0 (280fbcf9a253-dirty, go1.25.8)".
func (v versionInfo) String() string {
	details := []string{}
	if v.Commit != "" {
		commit := shortCommit(v.Commit)
		if v.Modified {
			commit += "-dirty"
		}
		details = append(details, commit)
	}
	details = append(details, v.GoVersion)
	return fmt.Sprintf("civic %s (%s)", v.Version, strings.Join(details, ", "))
}

func shortCommit(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
