package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/robust-lsm/lsmtune/lsmtune"
	"github.com/robust-lsm/lsmtune/lsmtune/config"
	"github.com/robust-lsm/lsmtune/lsmtune/sweep"
)

var (
	tuneConfigPath  string
	tuneOutputPath  string
	tuneLogLevel    string
	tuneNominalOnly bool
	tuneParallel    bool
)

var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "Run the nominal and robust tuning sweep over a config file",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(tuneLogLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", tuneLogLevel)
		}
		logrus.SetLevel(level)

		cfg, err := config.Load(tuneConfigPath)
		if err != nil {
			logrus.Fatalf("loading config: %v", err)
		}

		expected := make([]lsmtune.Workload, len(cfg.Workload.ExpectedWorkloads))
		for i, w := range cfg.Workload.ExpectedWorkloads {
			expected[i] = w.Workload()
		}

		s := sweep.Sweep{
			BaseProfile:          cfg.System.Profile(),
			ExpectedWorkloads:    expected,
			MemoryBitsPerElement: cfg.Memory.ExpectedMemoryBitsPerElement,
			RhoList:              cfg.Uncertainty.RhoValues(),
			NominalOnly:          tuneNominalOnly,
			Parallel:             tuneParallel,
		}

		logrus.Infof("starting sweep: %d workloads, %d memory budgets, %d rho values",
			len(expected), len(cfg.Memory.ExpectedMemoryBitsPerElement), len(cfg.Uncertainty.RhoValues()))

		rows, err := s.Run()
		if err != nil {
			logrus.Fatalf("sweep failed: %v", err)
		}

		if err := sweep.WriteCSV(tuneOutputPath, rows); err != nil {
			logrus.Fatalf("writing sweep output: %v", err)
		}
		logrus.Infof("wrote %d rows to %s", len(rows), tuneOutputPath)
	},
}

func init() {
	tuneCmd.Flags().StringVar(&tuneConfigPath, "config", "", "path to the tuning config YAML file (required)")
	tuneCmd.Flags().StringVar(&tuneOutputPath, "out", "tunings.csv", "path to write the sweep CSV output")
	tuneCmd.Flags().StringVar(&tuneLogLevel, "log", "info", "log level (debug, info, warn, error)")
	tuneCmd.Flags().BoolVar(&tuneNominalOnly, "nominal-only", false, "skip the robust tuner and emit nominal tunings only")
	tuneCmd.Flags().BoolVar(&tuneParallel, "parallel", false, "run one worker per expected workload")
	_ = tuneCmd.MarkFlagRequired("config")
}
