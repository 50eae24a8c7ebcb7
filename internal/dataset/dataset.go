// Package dataset handles the labeled SMS corpora: loading the legacy
// Latin-1 English collection and the UTF-8 Russian additions, cleaning,
// merging, and the stratified train/test split.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/textproc"
)

// Encoding identifies the character encoding of a CSV source.
type Encoding string

const (
	EncodingUTF8   Encoding = "utf-8"
	EncodingLatin1 Encoding = "latin-1"
)

// Record is one labeled message.
type Record struct {
	Label   core.Label
	Message string
}

// Load reads a labeled CSV. Both the SMS-collection layout
// (v1,v2,... with extra columns) and the plain label,message layout are
// accepted; a header row is skipped when present. Rows whose label is
// neither spam nor ham are ignored.
func Load(path string, enc Encoding) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	var r io.Reader = file
	if enc == EncodingLatin1 {
		r = transform.NewReader(file, charmap.ISO8859_1.NewDecoder())
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []Record
	first := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset row: %w", err)
		}
		if len(row) < 2 {
			continue
		}
		if first {
			first = false
			if row[0] == "v1" || row[0] == "label" {
				continue
			}
		}
		label, err := core.ParseLabel(row[0])
		if err != nil {
			continue
		}
		records = append(records, Record{
			Label:   label,
			Message: textproc.SanitizeUTF8(row[1]),
		})
	}
	return records, nil
}

// Save writes records as a UTF-8 label,message CSV with a header row.
func Save(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"label", "message"}); err != nil {
		return fmt.Errorf("failed to write dataset header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write([]string{string(rec.Label), rec.Message}); err != nil {
			return fmt.Errorf("failed to write dataset row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// Clean normalizes every message, then drops empties and duplicates
// (keeping the first occurrence). Output order otherwise follows input
// order.
func Clean(records []Record) []Record {
	seen := make(map[string]bool, len(records))
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		msg := textproc.Normalize(rec.Message)
		if msg == "" || seen[msg] {
			continue
		}
		seen[msg] = true
		out = append(out, Record{Label: rec.Label, Message: msg})
	}
	return out
}

// Merge concatenates two corpora and shuffles the result
// deterministically.
func Merge(base, extra []Record, seed int64) []Record {
	merged := make([]Record, 0, len(base)+len(extra))
	merged = append(merged, base...)
	merged = append(merged, extra...)

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(merged), func(i, j int) {
		merged[i], merged[j] = merged[j], merged[i]
	})
	return merged
}

// Split partitions records into train and test sets, stratified by label
// so both sides keep the corpus spam ratio. The split is deterministic
// for a given seed.
func Split(records []Record, testFraction float64, seed int64) (train, test []Record, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction must be in (0, 1), got %v", testFraction)
	}

	byLabel := make(map[core.Label][]Record)
	for _, rec := range records {
		byLabel[rec.Label] = append(byLabel[rec.Label], rec)
	}

	rng := rand.New(rand.NewSource(seed))
	for _, label := range []core.Label{core.LabelHam, core.LabelSpam} {
		group := byLabel[label]
		rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})
		nTest := int(float64(len(group))*testFraction + 0.5)
		if nTest >= len(group) && len(group) > 0 {
			nTest = len(group) - 1
		}
		test = append(test, group[:nTest]...)
		train = append(train, group[nTest:]...)
	}

	rng.Shuffle(len(train), func(i, j int) { train[i], train[j] = train[j], train[i] })
	rng.Shuffle(len(test), func(i, j int) { test[i], test[j] = test[j], test[i] })
	return train, test, nil
}
