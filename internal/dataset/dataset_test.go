package dataset

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mikey/sms-spam-classifier/internal/core"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCollectionLayout(t *testing.T) {
	csvData := "v1,v2,,,\n" +
		"ham,\"Go until jurong point, crazy..\",,,\n" +
		"spam,WINNER!! Claim your prize now,,,\n" +
		"junk,this row has a bad label,,,\n"
	path := writeFile(t, "sms.csv", []byte(csvData))

	records, err := Load(path, EncodingUTF8)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Label != core.LabelHam {
		t.Errorf("records[0].Label = %q, want ham", records[0].Label)
	}
	if records[1].Label != core.LabelSpam {
		t.Errorf("records[1].Label = %q, want spam", records[1].Label)
	}
}

func TestLoadLatin1(t *testing.T) {
	// "£100" in Latin-1: pound sign is the single byte 0xA3.
	csvData := []byte("label,message\nspam,Win \xa3100 cash\n")
	path := writeFile(t, "legacy.csv", csvData)

	records, err := Load(path, EncodingLatin1)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if want := "Win £100 cash"; records[0].Message != want {
		t.Errorf("Message = %q, want %q", records[0].Message, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.csv"), EncodingUTF8); err == nil {
		t.Error("Load accepted a missing file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	records := []Record{
		{Label: core.LabelSpam, Message: "срочно! вы выиграли приз"},
		{Label: core.LabelHam, Message: "see you at lunch, maybe 12:30?"},
	}
	path := filepath.Join(t.TempDir(), "out.csv")

	if err := Save(path, records); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path, EncodingUTF8)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, records) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, records)
	}
}

func TestClean(t *testing.T) {
	records := []Record{
		{Label: core.LabelSpam, Message: "FREE   prize http://spam.example NOW"},
		{Label: core.LabelSpam, Message: "free prize now"}, // duplicate after cleaning
		{Label: core.LabelHam, Message: "   "},
		{Label: core.LabelHam, Message: "ok, sounds good"},
	}

	cleaned := Clean(records)
	if len(cleaned) != 2 {
		t.Fatalf("got %d records, want 2: %+v", len(cleaned), cleaned)
	}
	if cleaned[0].Message != "free prize now" {
		t.Errorf("cleaned[0].Message = %q", cleaned[0].Message)
	}
	if cleaned[1].Message != "ok, sounds good" {
		t.Errorf("cleaned[1].Message = %q", cleaned[1].Message)
	}
}

func TestMergeDeterministic(t *testing.T) {
	base := []Record{
		{Label: core.LabelHam, Message: "a"},
		{Label: core.LabelHam, Message: "b"},
	}
	extra := []Record{
		{Label: core.LabelSpam, Message: "c"},
	}

	first := Merge(base, extra, 42)
	second := Merge(base, extra, 42)

	if len(first) != 3 {
		t.Fatalf("got %d records, want 3", len(first))
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("same seed produced different orders")
	}

	counts := map[string]int{}
	for _, rec := range first {
		counts[rec.Message]++
	}
	for _, msg := range []string{"a", "b", "c"} {
		if counts[msg] != 1 {
			t.Errorf("message %q appears %d times", msg, counts[msg])
		}
	}
}

func TestSplitStratified(t *testing.T) {
	var records []Record
	for i := 0; i < 80; i++ {
		records = append(records, Record{Label: core.LabelHam, Message: "ham " + string(rune('a'+i%26)) + string(rune('a'+i/26))})
	}
	for i := 0; i < 20; i++ {
		records = append(records, Record{Label: core.LabelSpam, Message: "spam " + string(rune('a'+i))})
	}

	train, test, err := Split(records, 0.2, 42)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(train)+len(test) != len(records) {
		t.Fatalf("train %d + test %d != %d", len(train), len(test), len(records))
	}

	countSpam := func(recs []Record) int {
		n := 0
		for _, rec := range recs {
			if rec.Label == core.LabelSpam {
				n++
			}
		}
		return n
	}
	if got := countSpam(test); got != 4 {
		t.Errorf("test spam count = %d, want 4", got)
	}
	if got := countSpam(train); got != 16 {
		t.Errorf("train spam count = %d, want 16", got)
	}

	train2, test2, err := Split(records, 0.2, 42)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if !reflect.DeepEqual(train, train2) || !reflect.DeepEqual(test, test2) {
		t.Error("same seed produced different splits")
	}
}

func TestSplitRejectsBadFraction(t *testing.T) {
	records := []Record{{Label: core.LabelHam, Message: "x"}}
	for _, frac := range []float64{0, 1, -0.2, 1.5} {
		if _, _, err := Split(records, frac, 42); err == nil {
			t.Errorf("Split accepted fraction %v", frac)
		}
	}
}

func TestCollectStats(t *testing.T) {
	records := []Record{
		{Label: core.LabelSpam, Message: "срочно переведите деньги"},
		{Label: core.LabelHam, Message: "привет, как дела?"},
		{Label: core.LabelHam, Message: "see you tomorrow"},
		{Label: core.LabelSpam, Message: "win a free prize"},
	}

	stats := Collect(records)
	if stats.Total != 4 || stats.Spam != 2 || stats.Ham != 2 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.Russian != 2 {
		t.Errorf("Russian = %d, want 2", stats.Russian)
	}
	if stats.English != 2 {
		t.Errorf("English = %d, want 2", stats.English)
	}
	if got := stats.SpamRatio(); got != 0.5 {
		t.Errorf("SpamRatio = %v, want 0.5", got)
	}
}
