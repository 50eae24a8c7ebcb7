package dataset

import (
	"unicode"

	"github.com/abadojack/whatlanggo"

	"github.com/mikey/sms-spam-classifier/internal/core"
)

// Stats summarizes a corpus for the training and merge reports.
type Stats struct {
	Total   int
	Spam    int
	Ham     int
	Russian int
	English int
	Other   int
}

// SpamRatio is the fraction of spam messages in the corpus.
func (s Stats) SpamRatio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Spam) / float64(s.Total)
}

// Collect tallies label and language counts. Language is decided by
// script: Cyrillic counts as Russian, Latin as English. Short SMS text
// is too noisy for full language identification, so script detection is
// the reliable signal here.
func Collect(records []Record) Stats {
	var s Stats
	s.Total = len(records)
	for _, rec := range records {
		if rec.Label == core.LabelSpam {
			s.Spam++
		} else {
			s.Ham++
		}
		switch whatlanggo.DetectScript(rec.Message) {
		case unicode.Cyrillic:
			s.Russian++
		case unicode.Latin:
			s.English++
		default:
			s.Other++
		}
	}
	return s
}
