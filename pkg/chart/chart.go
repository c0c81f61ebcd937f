// Package chart renders numeric series as vertical ASCII bar charts.
package chart

import (
	"fmt"
	"strconv"
	"strings"
)

// Height is the number of rows used for the bars.
const Height = 10

type Number interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64 | ~float32 | ~float64
}

// Make draws one column per value, scaled so the largest value fills every row.
func Make[T Number](values []T) string {
	if len(values) == 0 {
		return ""
	}

	data := make([]float64, len(values))
	top := 0.0
	for i, v := range values {
		data[i] = float64(v)
		if data[i] > top {
			top = data[i]
		}
	}

	labels := map[int]string{
		Height:     label(top),
		Height / 2: label(top / 2),
		1:          label(0),
	}
	width := 0
	for _, l := range labels {
		width = max(width, len(l))
	}

	var b strings.Builder
	for row := Height; row > 0; row-- {
		threshold := float64(row) * top / Height
		fmt.Fprintf(&b, "%*s |", width, labels[row])
		for _, v := range data {
			if v > 0 && v >= threshold {
				b.WriteString("█")
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%*s +%s", width, "", strings.Repeat("-", len(data)))
	return b.String()
}

func label(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
