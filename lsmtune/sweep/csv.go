package sweep

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Header is the exact CSV column order a sweep table is written in.
var Header = []string{
	"workload_idx", "z0", "z1", "q", "w", "N", "M", "rho",
	"nominal_m_filt", "nominal_m_buff", "nominal_T", "nominal_cost", "nominal_is_leveling_policy",
	"robust_m_filt", "robust_m_buff", "robust_T", "robust_cost", "robust_is_leveling_policy",
	"robust_exit_mode", "robust_lambda", "robust_eta", "robust_obj",
}

// WriteCSV writes rows to path in Header order, truncating any existing file.
func WriteCSV(path string, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sweep output CSV: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("write sweep CSV header: %w", err)
	}
	for i, row := range rows {
		if err := writer.Write(row.record()); err != nil {
			return fmt.Errorf("write sweep CSV row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush sweep CSV: %w", err)
	}
	return nil
}

func (r Row) record() []string {
	f := strconv.FormatFloat
	b := strconv.FormatBool
	return []string{
		strconv.Itoa(r.WorkloadIdx),
		f(r.Workload.Z0, 'g', -1, 64),
		f(r.Workload.Z1, 'g', -1, 64),
		f(r.Workload.Q, 'g', -1, 64),
		f(r.Workload.W, 'g', -1, 64),
		f(r.N, 'g', -1, 64),
		f(r.M, 'g', -1, 64),
		f(r.Rho, 'g', -1, 64),
		f(r.NominalMFilt, 'g', -1, 64),
		f(r.NominalMBuff, 'g', -1, 64),
		f(r.NominalT, 'g', -1, 64),
		f(r.NominalCost, 'g', -1, 64),
		b(r.NominalIsLevelingPolicy),
		f(r.RobustMFilt, 'g', -1, 64),
		f(r.RobustMBuff, 'g', -1, 64),
		f(r.RobustT, 'g', -1, 64),
		f(r.RobustCost, 'g', -1, 64),
		b(r.RobustIsLevelingPolicy),
		strconv.Itoa(r.RobustExitMode),
		f(r.RobustLambda, 'g', -1, 64),
		f(r.RobustEta, 'g', -1, 64),
		f(r.RobustObj, 'g', -1, 64),
	}
}

// ReadCSV parses a sweep CSV produced by WriteCSV back into rows. Mainly
// useful for tests and for downstream tools consuming a sweep's output.
func ReadCSV(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sweep CSV: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read sweep CSV: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("sweep CSV missing header")
	}

	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("sweep CSV row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRecord(rec []string) (Row, error) {
	if len(rec) != len(Header) {
		return Row{}, fmt.Errorf("expected %d columns, got %d", len(Header), len(rec))
	}
	atoi := strconv.Atoi
	atof := func(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
	atob := strconv.ParseBool

	var r Row
	var err error
	if r.WorkloadIdx, err = atoi(rec[0]); err != nil {
		return Row{}, fmt.Errorf("workload_idx: %w", err)
	}
	fields := []*float64{
		&r.Workload.Z0, &r.Workload.Z1, &r.Workload.Q, &r.Workload.W,
		&r.N, &r.M, &r.Rho,
		&r.NominalMFilt, &r.NominalMBuff, &r.NominalT, &r.NominalCost,
	}
	for i, f := range fields {
		if *f, err = atof(rec[i+1]); err != nil {
			return Row{}, fmt.Errorf("%s: %w", Header[i+1], err)
		}
	}
	if r.NominalIsLevelingPolicy, err = atob(rec[12]); err != nil {
		return Row{}, fmt.Errorf("nominal_is_leveling_policy: %w", err)
	}
	robustFields := []*float64{&r.RobustMFilt, &r.RobustMBuff, &r.RobustT, &r.RobustCost}
	for i, f := range robustFields {
		if *f, err = atof(rec[13+i]); err != nil {
			return Row{}, fmt.Errorf("%s: %w", Header[13+i], err)
		}
	}
	if r.RobustIsLevelingPolicy, err = atob(rec[17]); err != nil {
		return Row{}, fmt.Errorf("robust_is_leveling_policy: %w", err)
	}
	if r.RobustExitMode, err = atoi(rec[18]); err != nil {
		return Row{}, fmt.Errorf("robust_exit_mode: %w", err)
	}
	tailFields := []*float64{&r.RobustLambda, &r.RobustEta, &r.RobustObj}
	for i, f := range tailFields {
		if *f, err = atof(rec[19+i]); err != nil {
			return Row{}, fmt.Errorf("%s: %w", Header[19+i], err)
		}
	}
	return r, nil
}
