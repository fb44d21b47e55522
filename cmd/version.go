package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"
	rdebug "runtime/debug"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/dirtab/pkg/settings"
)

var versionOutput string

// versionData merges the ldflags build info with what the Go runtime knows.
func versionData() map[string]string {
	vi := settings.VersionInformation
	data := map[string]string{
		"name":      settings.CliBinaryName,
		"version":   vi.BuildVersion,
		"commit":    vi.Commit,
		"buildTime": vi.BuildTime,
		"goVersion": runtime.Version(),
		"platform":  runtime.GOOS + "/" + runtime.GOARCH,
	}
	info, ok := rdebug.ReadBuildInfo()
	if !ok {
		return data
	}
	if info.GoVersion != "" {
		data["goVersion"] = info.GoVersion
	}
	if vi.Commit == "unknown" {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				data["commit"] = s.Value[:7]
			}
		}
	}
	return data
}

func versionString() string {
	d := versionData()
	return fmt.Sprintf("%s %s (commit %s, %s)", d["name"], d["version"], d["commit"], d["goVersion"])
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the dirtab version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		switch versionOutput {
		case "", "text":
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
			return nil
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(versionData())
		default:
			return fmt.Errorf("%w: --output %q, want text or json", errBadFlag, versionOutput)
		}
	},
}

func init() { //nolint:gochecknoinits
	versionCmd.Flags().StringVarP(&versionOutput, "output", "o", "text", "output format: text|json")
}
