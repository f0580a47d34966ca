// Package stats contains metric calculations and history reporting.
package stats

import "strconv"

// Metrics is the per-tick score shown next to the paragraph.
type Metrics struct {
	WPM      float64
	Accuracy float64
}

// Compute derives Metrics from session counters and elapsed seconds.
func Compute(wordCount, correctChars, totalChars int, elapsedSeconds float64) Metrics {
	return Metrics{
		WPM:      WPM(wordCount, elapsedSeconds),
		Accuracy: Accuracy(correctChars, totalChars),
	}
}

// WPM counts confirmed words per elapsed minute, rounded to two decimals.
// Words are whole matched words, not five-character units.
func WPM(wordCount int, elapsedSeconds float64) float64 {
	if elapsedSeconds <= 0 || wordCount <= 0 {
		return 0
	}
	return Round2(float64(wordCount) / (elapsedSeconds / 60))
}

// Accuracy returns the percentage of confirmed characters that belonged to
// matched words, rounded to two decimals.
func Accuracy(correctChars, totalChars int) float64 {
	if totalChars <= 0 || correctChars <= 0 {
		return 0
	}
	if correctChars >= totalChars {
		return 100
	}
	return Round2(float64(correctChars) / float64(totalChars) * 100)
}

// Round2 rounds v to two decimal places. Ties are decided on the exact binary
// value and go to the even digit, so 3.125 becomes 3.12.
func Round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
