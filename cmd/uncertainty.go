package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/robust-lsm/lsmtune/lsmtune"
	wrk "github.com/robust-lsm/lsmtune/lsmtune/workload"
)

var (
	uncertaintySamplesPath string
	uncertaintyReferenceZ0 float64
	uncertaintyReferenceZ1 float64
	uncertaintyReferenceQ  float64
	uncertaintyReferenceW  float64
	uncertaintyOutputPath  string
	uncertaintyLogLevel    string
	uncertaintySessionSize int
)

var uncertaintyCmd = &cobra.Command{
	Use:   "uncertainty",
	Short: "Score sampled workloads against a reference and partition them into evaluation sessions",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(uncertaintyLogLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", uncertaintyLogLevel)
		}
		logrus.SetLevel(level)

		samples, err := readWorkloadCSV(uncertaintySamplesPath)
		if err != nil {
			logrus.Fatalf("reading samples: %v", err)
		}

		reference := lsmtune.Workload{
			Z0: uncertaintyReferenceZ0,
			Z1: uncertaintyReferenceZ1,
			Q:  uncertaintyReferenceQ,
			W:  uncertaintyReferenceW,
		}
		if err := reference.Validate(); err != nil {
			logrus.Fatalf("invalid reference workload: %v", err)
		}

		driver := wrk.NewDriver(reference, lsmtune.AllOps)
		if uncertaintySessionSize > 0 {
			driver.SessionSize = uncertaintySessionSize
		}

		scored := driver.Score(samples)
		sessions := driver.Sessions(scored)

		if err := writeSessionCSV(uncertaintyOutputPath, sessions); err != nil {
			logrus.Fatalf("writing sessions: %v", err)
		}
		logrus.Infof("wrote %d sessions to %s", len(sessions), uncertaintyOutputPath)
	},
}

func readWorkloadCSV(path string) ([]lsmtune.Workload, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open samples CSV: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read samples CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("samples CSV empty or missing header")
	}

	samples := make([]lsmtune.Workload, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) < 4 {
			return nil, fmt.Errorf("samples CSV row %d: expected 4 columns", i+2)
		}
		values := make([]float64, 4)
		for k := 0; k < 4; k++ {
			v, err := strconv.ParseFloat(rec[k], 64)
			if err != nil {
				return nil, fmt.Errorf("samples CSV row %d: %w", i+2, err)
			}
			values[k] = v
		}
		samples = append(samples, lsmtune.WorkloadFromComponents(values))
	}
	return samples, nil
}

func writeSessionCSV(path string, sessions []wrk.Session) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sessions CSV: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"session", "z0", "z1", "q", "w", "rho"}); err != nil {
		return err
	}
	for _, session := range sessions {
		for _, s := range session.Samples {
			record := []string{
				session.Name,
				strconv.FormatFloat(s.Workload.Z0, 'g', -1, 64),
				strconv.FormatFloat(s.Workload.Z1, 'g', -1, 64),
				strconv.FormatFloat(s.Workload.Q, 'g', -1, 64),
				strconv.FormatFloat(s.Workload.W, 'g', -1, 64),
				strconv.FormatFloat(s.Rho, 'g', -1, 64),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

func init() {
	uncertaintyCmd.Flags().StringVar(&uncertaintySamplesPath, "samples", "", "path to a workload CSV produced by `sample` (required)")
	uncertaintyCmd.Flags().Float64Var(&uncertaintyReferenceZ0, "ref-z0", 0.25, "reference empty-lookup fraction")
	uncertaintyCmd.Flags().Float64Var(&uncertaintyReferenceZ1, "ref-z1", 0.25, "reference non-empty-lookup fraction")
	uncertaintyCmd.Flags().Float64Var(&uncertaintyReferenceQ, "ref-q", 0.25, "reference range-query fraction")
	uncertaintyCmd.Flags().Float64Var(&uncertaintyReferenceW, "ref-w", 0.25, "reference write fraction")
	uncertaintyCmd.Flags().StringVar(&uncertaintyOutputPath, "out", "sessions.csv", "path to write labeled sessions")
	uncertaintyCmd.Flags().StringVar(&uncertaintyLogLevel, "log", "info", "log level (debug, info, warn, error)")
	uncertaintyCmd.Flags().IntVar(&uncertaintySessionSize, "session-size", 0, "samples drawn per session (0 keeps the driver's default)")
	_ = uncertaintyCmd.MarkFlagRequired("samples")
}
