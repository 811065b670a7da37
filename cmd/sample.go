package cmd

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/robust-lsm/lsmtune/lsmtune"
	wrk "github.com/robust-lsm/lsmtune/lsmtune/workload"
)

var (
	sampleCount      int
	sampleSeed       int64
	sampleOutputPath string
	sampleLogLevel   string
	sampleOpsMask    []bool
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Draw workloads uniformly from the operation simplex and write them to CSV",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(sampleLogLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", sampleLogLevel)
		}
		logrus.SetLevel(level)

		mask := lsmtune.AllOps
		if len(sampleOpsMask) == 4 {
			mask = lsmtune.OpMask{sampleOpsMask[0], sampleOpsMask[1], sampleOpsMask[2], sampleOpsMask[3]}
		}

		sampler := wrk.Sampler{Seed: sampleSeed}
		samples, err := sampler.Sample(sampleCount, mask)
		if err != nil {
			logrus.Fatalf("sampling: %v", err)
		}

		if err := writeWorkloadCSV(sampleOutputPath, samples); err != nil {
			logrus.Fatalf("writing samples: %v", err)
		}
		logrus.Infof("wrote %d samples to %s", len(samples), sampleOutputPath)
	},
}

func writeWorkloadCSV(path string, samples []lsmtune.Workload) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"z0", "z1", "q", "w"}); err != nil {
		return err
	}
	for _, w := range samples {
		record := []string{
			strconv.FormatFloat(w.Z0, 'g', -1, 64),
			strconv.FormatFloat(w.Z1, 'g', -1, 64),
			strconv.FormatFloat(w.Q, 'g', -1, 64),
			strconv.FormatFloat(w.W, 'g', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func init() {
	sampleCmd.Flags().IntVar(&sampleCount, "count", 1000, "number of workloads to sample")
	sampleCmd.Flags().Int64Var(&sampleSeed, "seed", wrk.DefaultSeed, "RNG seed")
	sampleCmd.Flags().StringVar(&sampleOutputPath, "out", "samples.csv", "path to write sampled workloads")
	sampleCmd.Flags().StringVar(&sampleLogLevel, "log", "info", "log level (debug, info, warn, error)")
	sampleCmd.Flags().BoolSliceVar(&sampleOpsMask, "ops-mask", nil, "four booleans enabling z0,z1,q,w respectively; defaults to all enabled")
}
