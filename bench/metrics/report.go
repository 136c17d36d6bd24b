package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Dist summarises a sample.
type Dist struct {
	P50 float64
	P95 float64
	P99 float64
	Avg float64
	Max float64
	N   int
}

// StageARow compares one type's observed sampling frequency with its weight.
type StageARow struct {
	Type     int
	Name     string
	Weight   float64
	Expected float64
	Observed float64
	AbsErr   float64
}

// StageBRow is one random-walk run.
type StageBRow struct {
	Steps        int
	DownBias     float64
	Nodes        int
	Groups       int
	DurMs        float64
	StepP50Us    float64
	StepP99Us    float64
	AttemptsMean float64
	BytesPerNode float64
}

// StageCRow is the rejection-sampling cost of one required parent type.
type StageCRow struct {
	Type         int
	Name         string
	Groups       int
	Failures     int
	AttemptsMean float64
	AttemptsP99  float64
	AttemptsMax  float64
}

// StageDRow is one snapshot write and audit.
type StageDRow struct {
	Nodes    int
	Bytes    int64
	SaveMs   float64
	AuditMs  float64
	Verified bool
}

// Percentile returns the p-th percentile (0-100) of sorted.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	idx := int(float64(len(sorted)-1) * p / 100)
	return sorted[idx]
}

// DistOf summarises values. values is sorted in place.
func DistOf(values []float64) Dist {
	if len(values) == 0 {
		return Dist{}
	}
	sort.Float64s(values)
	var sum float64
	for _, v := range values {
		sum += v
	}
	return Dist{
		P50: Percentile(values, 50),
		P95: Percentile(values, 95),
		P99: Percentile(values, 99),
		Avg: sum / float64(len(values)),
		Max: values[len(values)-1],
		N:   len(values),
	}
}

// DurationsMicros converts durations to microseconds.
func DurationsMicros(ds []time.Duration) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = float64(d.Nanoseconds()) / 1e3
	}
	return out
}

// WriteStageACSV writes the stage A report.
func WriteStageACSV(rows []StageARow, path string) error {
	records := [][]string{{"Type", "Name", "Weight", "Expected", "Observed", "AbsErr"}}
	for _, r := range rows {
		records = append(records, []string{
			fmt.Sprintf("%d", r.Type),
			r.Name,
			fmt.Sprintf("%g", r.Weight),
			fmt.Sprintf("%.6f", r.Expected),
			fmt.Sprintf("%.6f", r.Observed),
			fmt.Sprintf("%.6f", r.AbsErr),
		})
	}
	return writeCSV(records, path)
}

// WriteStageBCSV writes the stage B report.
func WriteStageBCSV(rows []StageBRow, path string) error {
	records := [][]string{{"Steps", "DownBias", "Nodes", "Groups", "DurMs", "StepP50Us", "StepP99Us", "AttemptsMean", "BytesPerNode"}}
	for _, r := range rows {
		records = append(records, []string{
			fmt.Sprintf("%d", r.Steps),
			fmt.Sprintf("%.2f", r.DownBias),
			fmt.Sprintf("%d", r.Nodes),
			fmt.Sprintf("%d", r.Groups),
			fmt.Sprintf("%.2f", r.DurMs),
			fmt.Sprintf("%.2f", r.StepP50Us),
			fmt.Sprintf("%.2f", r.StepP99Us),
			fmt.Sprintf("%.2f", r.AttemptsMean),
			fmt.Sprintf("%.1f", r.BytesPerNode),
		})
	}
	return writeCSV(records, path)
}

// WriteStageCCSV writes the stage C report.
func WriteStageCCSV(rows []StageCRow, path string) error {
	records := [][]string{{"Type", "Name", "Groups", "Failures", "AttemptsMean", "AttemptsP99", "AttemptsMax"}}
	for _, r := range rows {
		records = append(records, []string{
			fmt.Sprintf("%d", r.Type),
			r.Name,
			fmt.Sprintf("%d", r.Groups),
			fmt.Sprintf("%d", r.Failures),
			fmt.Sprintf("%.2f", r.AttemptsMean),
			fmt.Sprintf("%.0f", r.AttemptsP99),
			fmt.Sprintf("%.0f", r.AttemptsMax),
		})
	}
	return writeCSV(records, path)
}

func writeCSV(records [][]string, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return f.Sync()
}

// ReportDir is the report output directory.
const ReportDir = "report"

// ReportPath returns a dated report path under ReportDir.
func ReportPath(prefix, ext string) string {
	return filepath.Join(ReportDir, prefix+time.Now().Format("20060102")+ext)
}

// WriteJSON writes v as indented JSON.
func WriteJSON(v interface{}, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
