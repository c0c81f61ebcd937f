// Package report renders a Summary for humans or machines.
package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"blitz/internal/types"
	"blitz/pkg/chart"
	"blitz/pkg/stats"
)

func ms(d time.Duration) string {
	return strconv.FormatFloat(stats.ToMs(d), 'f', -1, 64)
}

// Text writes the summary block followed by the percentile and histogram charts.
func Text(w io.Writer, s stats.Summary) error {
	var b strings.Builder

	fmt.Fprintln(&b, "Summary")
	fmt.Fprintf(&b, "  Average:     %s ms\n", ms(s.Average))
	fmt.Fprintf(&b, "  Median:      %s ms\n", ms(s.Median))
	fmt.Fprintf(&b, "  Longest:     %s ms\n", ms(s.Max))
	fmt.Fprintf(&b, "  Shortest:    %s ms\n", ms(s.Min))
	fmt.Fprintf(&b, "  Requests:    %d\n", s.Count)
	fmt.Fprintf(&b, "  Transferred: %s\n", s.Transferred)

	if len(s.StatusCodes) > 0 {
		codes := make([]int, 0, len(s.StatusCodes))
		for code := range s.StatusCodes {
			codes = append(codes, code)
		}
		slices.Sort(codes)
		fmt.Fprintln(&b, "  Status codes:")
		for _, code := range codes {
			fmt.Fprintf(&b, "    %d: %d\n", code, s.StatusCodes[code])
		}
	}

	percentiles := make([]float64, len(s.Percentiles))
	for i, p := range s.Percentiles {
		percentiles[i] = stats.ToMs(p)
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Latency Percentiles (2% of requests per bar):")
	fmt.Fprintln(&b, chart.Make(percentiles))
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Latency Histogram (each bar is 2% of max latency)")
	fmt.Fprintln(&b, chart.Make(s.Histogram))

	_, err := io.WriteString(w, b.String())
	return err
}

// JSON writes the record followed by a newline.
func JSON(w io.Writer, record *types.RunRecord) error {
	if _, err := record.WriteTo(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Runs writes one line per recorded run.
func Runs(w io.Writer, records []*types.RunRecord) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%-26s  %-20s  %5s  %8s  %12s  %s\n", "ID", "STARTED", "C", "REQUESTS", "MEDIAN (ms)", "URL")
	for _, r := range records {
		fmt.Fprintf(&b, "%-26s  %-20s  %5d  %8d  %12s  %s\n",
			r.ID,
			r.StartedAt.Format(time.RFC3339),
			r.Concurrency,
			r.Count,
			ms(time.Duration(r.MedianNs)),
			r.URL,
		)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
