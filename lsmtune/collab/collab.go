// Package collab describes the two external binaries a tuning result can be
// handed to — a kv-store builder and an execution driver — without ever
// invoking them. Constructing and running those processes is out of scope;
// this package exists only so a Design has a documented, typed path to its
// external collaborators.
package collab

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/robust-lsm/lsmtune/lsmtune"
)

// BuilderArgs mirrors the kv-store builder binary's flag set:
// -T, -K, -Z, -B, -E, -b, -N, --parallelism, --key-file, [-d], [--early_fill_stop].
type BuilderArgs struct {
	T              float64 // size ratio
	K              int     // secondary-model run count parameter
	Z              int     // secondary-model run count parameter
	B              float64 // entries per page
	E              float64 // entry size, bits
	BitsPerElement float64 // -b, bloom filter bits/element
	N              float64 // entry count
	Parallelism    int
	KeyFilePath    string
	D              string // optional data directory override, empty if unset
	EarlyFillStop  bool
}

// Args renders the builder's command-line flags in the documented order.
func (a BuilderArgs) Args() []string {
	args := []string{
		"-T", formatFloat(a.T),
		"-K", strconv.Itoa(a.K),
		"-Z", strconv.Itoa(a.Z),
		"-B", formatFloat(a.B),
		"-E", formatFloat(a.E),
		"-b", formatFloat(a.BitsPerElement),
		"-N", formatFloat(a.N),
		"--parallelism", strconv.Itoa(a.Parallelism),
		"--key-file", a.KeyFilePath,
	}
	if a.D != "" {
		args = append(args, "-d", a.D)
	}
	if a.EarlyFillStop {
		args = append(args, "--early_fill_stop")
	}
	return args
}

// BuilderArgsFromDesign fills in the sizing flags a Design determines,
// leaving the caller to supply N, parallelism, and file paths.
func BuilderArgsFromDesign(d lsmtune.Design, n float64, parallelism int, keyFilePath string) BuilderArgs {
	return BuilderArgs{
		T:              d.T,
		BitsPerElement: d.H,
		N:              n,
		Parallelism:    parallelism,
		KeyFilePath:    keyFilePath,
	}
}

// ExecutionArgs mirrors the execution binary's flag set:
// -e, -r, -q, -w, -p, --parallelism, --key-file.
type ExecutionArgs struct {
	EmptyReadFraction  float64 // -e
	ReadFraction       float64 // -r (non-empty reads)
	RangeQueryFraction float64 // -q
	WriteFraction      float64 // -w
	PageSize           float64 // -p
	Parallelism        int
	KeyFilePath        string
}

// Args renders the execution binary's command-line flags in the documented order.
func (a ExecutionArgs) Args() []string {
	return []string{
		"-e", formatFloat(a.EmptyReadFraction),
		"-r", formatFloat(a.ReadFraction),
		"-q", formatFloat(a.RangeQueryFraction),
		"-w", formatFloat(a.WriteFraction),
		"-p", formatFloat(a.PageSize),
		"--parallelism", strconv.Itoa(a.Parallelism),
		"--key-file", a.KeyFilePath,
	}
}

// ExecutionArgsFromWorkload fills in the workload-fraction flags from a
// lsmtune.Workload, leaving page size, parallelism, and file paths to the caller.
func ExecutionArgsFromWorkload(w lsmtune.Workload, pageSize float64, parallelism int, keyFilePath string) ExecutionArgs {
	return ExecutionArgs{
		EmptyReadFraction:  w.Z0,
		ReadFraction:       w.Z1,
		RangeQueryFraction: w.Q,
		WriteFraction:      w.W,
		PageSize:           pageSize,
		Parallelism:        parallelism,
		KeyFilePath:        keyFilePath,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// BuilderMetrics is one parsed line of the builder binary's output: per-level
// hit counts, filter rejections, compaction bytes, and elapsed time.
type BuilderMetrics struct {
	Level           int
	Hits            int64
	FilterRejections int64
	CompactionBytes int64
	ElapsedUs       int64
}

// builderLineRe matches the builder's fixed-format output line:
// "level=<n> hits=<n> filter_rejections=<n> compaction_bytes=<n> elapsed_us=<n>"
var builderLineRe = regexp.MustCompile(
	`^level=(\d+)\s+hits=(\d+)\s+filter_rejections=(\d+)\s+compaction_bytes=(\d+)\s+elapsed_us=(\d+)$`,
)

// ParseBuilderOutput parses every matching line of the builder binary's
// stdout; non-matching lines (banners, warnings) are skipped.
func ParseBuilderOutput(lines []string) ([]BuilderMetrics, error) {
	var out []BuilderMetrics
	for i, line := range lines {
		m := builderLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		metrics, err := parseBuilderMatch(m)
		if err != nil {
			return nil, fmt.Errorf("builder output line %d: %w", i+1, err)
		}
		out = append(out, metrics)
	}
	return out, nil
}

func parseBuilderMatch(m []string) (BuilderMetrics, error) {
	fields := make([]int64, 5)
	for i, s := range m[1:] {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return BuilderMetrics{}, err
		}
		fields[i] = v
	}
	return BuilderMetrics{
		Level:            int(fields[0]),
		Hits:             fields[1],
		FilterRejections: fields[2],
		CompactionBytes:  fields[3],
		ElapsedUs:        fields[4],
	}, nil
}

// ExecutionMetrics is one parsed line of the execution binary's output:
// aggregate op-class latency and throughput.
type ExecutionMetrics struct {
	OpClass    string
	Count      int64
	LatencyUs  float64
	Throughput float64
}

// executionLineRe matches the execution binary's fixed-format output line:
// "op=<class> count=<n> latency_us=<f> throughput=<f>"
var executionLineRe = regexp.MustCompile(
	`^op=(\S+)\s+count=(\d+)\s+latency_us=([\d.eE+-]+)\s+throughput=([\d.eE+-]+)$`,
)

// ParseExecutionOutput parses every matching line of the execution binary's
// stdout; non-matching lines are skipped.
func ParseExecutionOutput(lines []string) ([]ExecutionMetrics, error) {
	var out []ExecutionMetrics
	for i, line := range lines {
		m := executionLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		metrics, err := parseExecutionMatch(m)
		if err != nil {
			return nil, fmt.Errorf("execution output line %d: %w", i+1, err)
		}
		out = append(out, metrics)
	}
	return out, nil
}

func parseExecutionMatch(m []string) (ExecutionMetrics, error) {
	count, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return ExecutionMetrics{}, err
	}
	latency, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return ExecutionMetrics{}, err
	}
	throughput, err := strconv.ParseFloat(m[4], 64)
	if err != nil {
		return ExecutionMetrics{}, err
	}
	return ExecutionMetrics{OpClass: m[1], Count: count, LatencyUs: latency, Throughput: throughput}, nil
}
