package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/storetrim/internal/probe"
	"github.com/lakshaymaurya-felt/storetrim/internal/sizefmt"
	"github.com/lakshaymaurya-felt/storetrim/internal/ui"
)

var measureCmd = &cobra.Command{
	Use:   "measure <path>",
	Short: "Report a directory's size without cleaning anything",
	Long:  "Measures a directory tree the same way the cleanup run does and reports its size plus the hosting volume's usage.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		probeIt := func() (string, error) {
			n, err := probe.Size(context.Background(), path)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s (%d bytes)", sizefmt.Format(n), n), nil
		}

		var out string
		var err error
		if isatty.IsTerminal(os.Stdout.Fd()) {
			out, err = ui.Spin("measuring "+path, probeIt)
		} else {
			out, err = probeIt()
		}
		if err != nil {
			return err
		}

		fmt.Printf("%s  %s\n", ui.TitleStyle.Render(path), out)

		if usage, err := disk.Usage(path); err == nil {
			fmt.Println(ui.MutedStyle.Render(fmt.Sprintf("volume: %s free of %s (%.1f%% used)",
				sizefmt.Format(int64(usage.Free)), sizefmt.Format(int64(usage.Total)), usage.UsedPercent)))
		}

		return nil
	},
}
