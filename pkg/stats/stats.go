package stats

import (
	"slices"
	"time"
)

// Buckets is the number of slots in both the percentile and histogram series.
const Buckets = 50

// Fact is one completed request as seen by the worker that issued it.
type Fact struct {
	Status        int
	Duration      time.Duration
	ContentLength ContentLength
}

// Record builds a Fact from a finished response.
func Record(status int, duration time.Duration, bodyLen int) Fact {
	return Fact{
		Status:        status,
		Duration:      duration,
		ContentLength: NewContentLength(uint64(bodyLen)),
	}
}

// Summary is the aggregate of a run. It is computed once and must not be modified.
type Summary struct {
	Count       int
	Average     time.Duration
	Median      time.Duration
	Min         time.Duration
	Max         time.Duration
	Percentiles []time.Duration
	Histogram   []int
	Transferred ContentLength
	StatusCodes map[int]int
}

func zero() Summary {
	return Summary{
		Percentiles: make([]time.Duration, Buckets),
		Histogram:   []int{},
		StatusCodes: map[int]int{},
	}
}

// ToMs converts a duration to fractional milliseconds.
func ToMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Summarize folds facts into a Summary. The order of facts does not matter.
func Summarize(facts []Fact) Summary {
	if len(facts) == 0 {
		return zero()
	}

	count := len(facts)
	sorted := make([]time.Duration, 0, count)
	codes := make(map[int]int)
	var sum time.Duration
	transferred := Zero()
	for _, f := range facts {
		sorted = append(sorted, f.Duration)
		sum += f.Duration
		transferred = transferred.Add(f.ContentLength)
		codes[f.Status]++
	}
	slices.Sort(sorted)

	mid := count / 2
	var median time.Duration
	if count%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}

	return Summary{
		Count:       count,
		Average:     sum / time.Duration(count),
		Median:      median,
		Min:         sorted[0],
		Max:         sorted[count-1],
		Percentiles: percentiles(sorted),
		Histogram:   histogram(sorted),
		Transferred: transferred,
		StatusCodes: codes,
	}
}

// histogram counts samples into equal-width buckets spanning [0, max].
func histogram(sorted []time.Duration) []int {
	counts := make([]int, Buckets)
	binSize := ToMs(sorted[len(sorted)-1]) / Buckets

	for _, d := range sorted {
		index := 0
		if binSize > 0 {
			index = int(ToMs(d) / binSize)
		}
		counts[min(max(index, 0), Buckets-1)]++
	}
	return counts
}

// percentiles samples sorted at every 2% of its length.
func percentiles(sorted []time.Duration) []time.Duration {
	n := len(sorted)
	out := make([]time.Duration, Buckets)
	for i := range out {
		index := i * n / Buckets
		out[i] = sorted[min(max(index, 0), n-1)]
	}
	return out
}
