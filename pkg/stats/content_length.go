package stats

import "fmt"

const (
	kilo = 1024
	megs = 1024 * 1024
	gigs = 1024 * 1024 * 1024
)

// ContentLength is the number of payload bytes in a response, headers excluded.
type ContentLength uint64

// Zero returns an empty content length.
func Zero() ContentLength {
	return 0
}

func NewContentLength(bytes uint64) ContentLength {
	return ContentLength(bytes)
}

func (c ContentLength) Bytes() uint64 {
	return uint64(c)
}

// Add returns the sum of both lengths.
func (c ContentLength) Add(other ContentLength) ContentLength {
	return c + other
}

// String renders the length in the largest unit it strictly exceeds.
func (c ContentLength) String() string {
	switch {
	case c > gigs:
		return fmt.Sprintf("%.2f GB", float64(c)/gigs)
	case c > megs:
		return fmt.Sprintf("%.2f MB", float64(c)/megs)
	case c > kilo:
		return fmt.Sprintf("%.2f KB", float64(c)/kilo)
	default:
		return fmt.Sprintf("%d B", uint64(c))
	}
}
