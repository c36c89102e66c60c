package form

import (
	"strings"
	"unicode/utf8"
)

// Summary length targets for the professional summary counter.
const (
	SummaryMinChars = 150
	SummaryMaxChars = 300
)

// SummaryStatus classifies a summary length against the targets.
type SummaryStatus string

// Summary statuses
const (
	SummaryNeutral SummaryStatus = "neutral" // empty
	SummaryShort   SummaryStatus = "warning" // under SummaryMinChars
	SummaryLong    SummaryStatus = "error"   // over SummaryMaxChars
	SummaryGood    SummaryStatus = "good"
)

// SummaryStats is the character counter shown under the summary field.
type SummaryStats struct {
	Chars  int           `json:"chars"`
	Words  int           `json:"words"`
	Status SummaryStatus `json:"status"`
}

// Stats computes the counter for a summary text.
func Stats(text string) SummaryStats {
	chars := utf8.RuneCountInString(text)
	stats := SummaryStats{
		Chars: chars,
		Words: len(strings.Fields(text)),
	}
	switch {
	case chars == 0:
		stats.Status = SummaryNeutral
	case chars < SummaryMinChars:
		stats.Status = SummaryShort
	case chars > SummaryMaxChars:
		stats.Status = SummaryLong
	default:
		stats.Status = SummaryGood
	}
	return stats
}
