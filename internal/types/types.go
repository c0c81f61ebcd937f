package types

import (
	"io"
	"time"

	"blitz/internal/utils"
	"blitz/pkg/stats"
)

type Status struct {
	Server  string `json:"server"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (r *Status) WriteTo(w io.Writer) (int64, error) { return utils.WriteTo(r, w) }

// RunRecord is the persisted outcome of one successful run. Durations are nanoseconds.
type RunRecord struct {
	ID               string      `json:"id"`
	URL              string      `json:"url"`
	Concurrency      int         `json:"concurrency"`
	Requests         int         `json:"requests"`
	StartedAt        time.Time   `json:"started_at"`
	ElapsedNs        int64       `json:"elapsed_ns"`
	Count            int         `json:"count"`
	AverageNs        int64       `json:"average_ns"`
	MedianNs         int64       `json:"median_ns"`
	MinNs            int64       `json:"min_ns"`
	MaxNs            int64       `json:"max_ns"`
	PercentilesNs    []int64     `json:"percentiles_ns"`
	Histogram        []int       `json:"histogram"`
	TransferredBytes uint64      `json:"transferred_bytes"`
	StatusCodes      map[int]int `json:"status_codes"`
}

func (r *RunRecord) WriteTo(w io.Writer) (int64, error) { return utils.WriteTo(r, w) }

func NewRunRecord(id, url string, concurrency, requests int, startedAt time.Time, elapsed time.Duration, s stats.Summary) *RunRecord {
	percentiles := make([]int64, len(s.Percentiles))
	for i, p := range s.Percentiles {
		percentiles[i] = int64(p)
	}
	codes := make(map[int]int, len(s.StatusCodes))
	for code, n := range s.StatusCodes {
		codes[code] = n
	}
	return &RunRecord{
		ID:               id,
		URL:              url,
		Concurrency:      concurrency,
		Requests:         requests,
		StartedAt:        startedAt.UTC(),
		ElapsedNs:        int64(elapsed),
		Count:            s.Count,
		AverageNs:        int64(s.Average),
		MedianNs:         int64(s.Median),
		MinNs:            int64(s.Min),
		MaxNs:            int64(s.Max),
		PercentilesNs:    percentiles,
		Histogram:        append([]int{}, s.Histogram...),
		TransferredBytes: s.Transferred.Bytes(),
		StatusCodes:      codes,
	}
}

// Summary rebuilds the statistics the record was made from.
func (r *RunRecord) Summary() stats.Summary {
	percentiles := make([]time.Duration, len(r.PercentilesNs))
	for i, p := range r.PercentilesNs {
		percentiles[i] = time.Duration(p)
	}
	codes := make(map[int]int, len(r.StatusCodes))
	for code, n := range r.StatusCodes {
		codes[code] = n
	}
	histogram := r.Histogram
	if histogram == nil {
		histogram = []int{}
	}
	return stats.Summary{
		Count:       r.Count,
		Average:     time.Duration(r.AverageNs),
		Median:      time.Duration(r.MedianNs),
		Min:         time.Duration(r.MinNs),
		Max:         time.Duration(r.MaxNs),
		Percentiles: percentiles,
		Histogram:   histogram,
		Transferred: stats.NewContentLength(r.TransferredBytes),
		StatusCodes: codes,
	}
}

func (r *RunRecord) Elapsed() time.Duration {
	return time.Duration(r.ElapsedNs)
}
