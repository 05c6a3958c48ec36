package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"text/tabwriter"

	"github.com/cespare/xxhash/v2"
	"github.com/kovidgoyal/depthrgb"
)

// DefaultCheckpoints are the qualities summarised in the tabular report.
var DefaultCheckpoints = []int{10, 50, 100}

// Fingerprint returns the xxHash64 of the depth samples of d, row by row, so
// that identical images hash identically whatever their stride or origin.
func Fingerprint(d *depthrgb.Depth) uint64 {
	h := xxhash.New()
	var buf []byte
	for y := range d.Rect.Dy() {
		row := d.Row(y)
		buf = buf[:0]
		for _, v := range row {
			buf = append(buf, byte(v>>8), byte(v))
		}
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

// Print writes the result sorted by image name then quality.
func Print(w io.Writer, r Result) error {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "Results for %s\n", name); err != nil {
			return err
		}
		qs := r[name]
		qualities := make([]int, 0, len(qs))
		for q := range qs {
			qualities = append(qualities, q)
		}
		slices.Sort(qualities)
		for _, q := range qualities {
			if _, err := fmt.Fprintf(w, "  %d - %.4e\n", q, qs[q]); err != nil {
				return err
			}
		}
	}
	return nil
}

// SummaryRow is the image averaged error of one transcoder at each checkpoint
// quality.
type SummaryRow struct {
	Transcoder string
	Errors     map[int]float64
}

// Summarize averages the error over all images at each checkpoint. A
// checkpoint missing from the result is recorded as NaN.
func Summarize(transcoder string, r Result, checkpoints []int) SummaryRow {
	ans := SummaryRow{Transcoder: transcoder, Errors: make(map[int]float64, len(checkpoints))}
	for _, q := range checkpoints {
		var sum float64
		n := 0
		for _, qs := range r {
			if v, ok := qs[q]; ok {
				sum += v
				n++
			}
		}
		if n == 0 {
			ans.Errors[q] = math.NaN()
		} else {
			ans.Errors[q] = sum / float64(n)
		}
	}
	return ans
}

func summary_records(rows []SummaryRow, checkpoints []int, format func(float64) string) [][]string {
	header := []string{"transcoder"}
	for _, q := range checkpoints {
		header = append(header, "q"+strconv.Itoa(q))
	}
	ans := [][]string{header}
	for _, row := range rows {
		rec := []string{row.Transcoder}
		for _, q := range checkpoints {
			rec = append(rec, format(row.Errors[q]))
		}
		ans = append(ans, rec)
	}
	return ans
}

// WriteSummary writes a tab delimited table with one row per transcoder and
// one column per checkpoint quality.
func WriteSummary(w io.Writer, rows []SummaryRow, checkpoints []int) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.WriteAll(summary_records(rows, checkpoints, func(v float64) string {
		return strconv.FormatFloat(v, 'g', -1, 64)
	})); err != nil {
		return err
	}
	return cw.Error()
}

// PrintSummary writes the summary table aligned for reading on a terminal.
func PrintSummary(w io.Writer, rows []SummaryRow, checkpoints []int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, rec := range summary_records(rows, checkpoints, func(v float64) string { return fmt.Sprintf("%.4e", v) }) {
		for i, cell := range rec {
			if i > 0 {
				if _, err := io.WriteString(tw, "\t"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(tw, cell); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(tw, "\n"); err != nil {
			return err
		}
	}
	return tw.Flush()
}
