package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/storetrim/internal/auditlog"
	"github.com/lakshaymaurya-felt/storetrim/internal/cleanup"
	"github.com/lakshaymaurya-felt/storetrim/internal/config"
	"github.com/lakshaymaurya-felt/storetrim/internal/orchestrator"
	"github.com/lakshaymaurya-felt/storetrim/internal/probe"
	"github.com/lakshaymaurya-felt/storetrim/internal/runlock"
	"github.com/lakshaymaurya-felt/storetrim/internal/service"
	"github.com/lakshaymaurya-felt/storetrim/internal/sizefmt"
	"github.com/lakshaymaurya-felt/storetrim/internal/ui"
)

var runFlags struct {
	store        string
	thresholdGB  float64
	logFile      string
	serviceName  string
	stopTimeout  time.Duration
	startTimeout time.Duration
	keepProject  string
	yes          bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Measure the datastore and clean it if over threshold",
	Long: `Runs one cleanup cycle: measure the datastore, and when it exceeds the
threshold, stop the owning service, wipe the reclaimable subdirectories,
re-measure, and restart the service. Exits 0 whenever the cycle completes,
even if individual steps failed; failures are in the audit log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.RunConfig{
			Datastore:    runFlags.store,
			ThresholdGB:  runFlags.thresholdGB,
			LogFile:      runFlags.logFile,
			ServiceName:  runFlags.serviceName,
			StopTimeout:  runFlags.stopTimeout,
			StartTimeout: runFlags.startTimeout,
			KeepProject:  runFlags.keepProject,
			DryRun:       dryRun,
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return runCleanup(cfg)
	},
}

func init() {
	runCmd.Flags().StringVar(&runFlags.store, "store", "", "Datastore directory (absolute path)")
	runCmd.Flags().Float64Var(&runFlags.thresholdGB, "threshold-gb", config.DefaultThresholdGB, "Cleanup trigger threshold in GB")
	runCmd.Flags().StringVar(&runFlags.logFile, "log-file", "", "Audit log destination")
	runCmd.Flags().StringVar(&runFlags.serviceName, "service", "", "OS service that owns the datastore")
	runCmd.Flags().DurationVar(&runFlags.stopTimeout, "stop-timeout", config.DefaultStopTimeout, "Bounded wait for the service to stop")
	runCmd.Flags().DurationVar(&runFlags.startTimeout, "start-timeout", config.DefaultStartTimeout, "Bounded wait for the service to start")
	runCmd.Flags().StringVar(&runFlags.keepProject, "keep-project", config.DefaultKeepProject, "Projects child that must never be deleted")
	runCmd.Flags().BoolVar(&runFlags.yes, "yes", false, "Skip the confirmation prompt")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview deletions without touching service or files")
}

func runCleanup(cfg config.RunConfig) error {
	// One run at a time per (datastore, service) pair.
	release, err := runlock.Acquire(cfg.Datastore, cfg.ServiceName)
	if err != nil {
		return err
	}
	defer release.Release()
	debugf("acquired run lock %s", runlock.Name(cfg.Datastore, cfg.ServiceName))

	if !runFlags.yes && !cfg.DryRun && isatty.IsTerminal(os.Stdin.Fd()) {
		question := fmt.Sprintf("Stop %s and delete reclaimable data under %s?",
			cfg.ServiceName, cfg.Datastore)
		ok, err := ui.Confirm(question)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println(ui.MutedStyle.Render("aborted"))
			return nil
		}
	}

	log, err := auditlog.New(cfg.LogFile)
	if err != nil {
		return err
	}
	defer log.Close()

	ctrl, err := service.NewController()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := logVolumeUsage(log, cfg.Datastore); err != nil {
		return err
	}

	plan := cleanup.NewPlan(cfg.Datastore, cfg.KeepProject, cfg.DryRun)
	report, err := orchestrator.New(cfg, probe.Size, ctrl, plan, log).Run(ctx)
	if err != nil {
		// Broken audit trail: the one error that fails the whole run.
		return err
	}

	if report.CleanupRan {
		if err := logVolumeUsage(log, cfg.Datastore); err != nil {
			return err
		}
	}

	fmt.Println(ui.RenderSummary(report, cfg.DryRun))
	return nil
}

// logVolumeUsage records the hosting volume's occupancy around a run.
// A usage query failure is not worth failing the run over; only the
// audit append can be fatal here.
func logVolumeUsage(log *auditlog.Logger, path string) error {
	usage, err := disk.Usage(path)
	if err != nil {
		debugf("volume usage query failed: %v", err)
		return nil
	}
	return log.Appendf("volume: %s free of %s (%.1f%% used)",
		sizefmt.Format(int64(usage.Free)), sizefmt.Format(int64(usage.Total)), usage.UsedPercent)
}

func debugf(format string, args ...any) {
	if debug {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
