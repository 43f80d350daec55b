package collector

import (
	"reflect"
	"testing"
)

func TestDetectIsCaseInsensitive(t *testing.T) {
	d := NewDetector([]string{"ledger", "coinbase"})

	upper := d.Detect("LEDGER wallet hacked")
	lower := d.Detect("ledger wallet hacked")

	want := []string{"Ledger"}
	if !reflect.DeepEqual(upper, want) {
		t.Fatalf("Detect(upper) = %v, want %v", upper, want)
	}
	if !reflect.DeepEqual(lower, want) {
		t.Fatalf("Detect(lower) = %v, want %v", lower, want)
	}
}

func TestDetectReturnsVocabularyOrder(t *testing.T) {
	d := NewDetector([]string{"ledger", "coinbase"})

	// Coinbase appears first in the text, but the result follows the
	// configured vocabulary order.
	got := d.Detect("Coinbase and Ledger team up")

	want := []string{"Ledger", "Coinbase"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Detect = %v, want %v", got, want)
	}
}

func TestDetectScansAllFields(t *testing.T) {
	d := NewDetector([]string{"trezor", "phantom"})

	got := d.Detect("some headline", "body mentions trezor once")

	want := []string{"Trezor"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Detect = %v, want %v", got, want)
	}
}

func TestDetectMatchesSubstringsInsideWords(t *testing.T) {
	// Plain substring matching, no word boundaries: "raby" inside a
	// longer word still counts.
	d := NewDetector([]string{"raby"})

	got := d.Detect("the carabyne case")
	if len(got) != 1 || got[0] != "Raby" {
		t.Fatalf("Detect = %v, want [Raby]", got)
	}
}

func TestDetectEmptyWhenNothingMentioned(t *testing.T) {
	d := NewDetector([]string{"ledger", "trezor"})

	if got := d.Detect("generic market news"); len(got) != 0 {
		t.Fatalf("Detect = %v, want empty", got)
	}
}

func TestNewDetectorNormalizesKeywords(t *testing.T) {
	d := NewDetector([]string{" Ledger ", "", "TREZOR"})

	got := d.Detect("ledger and trezor both mentioned")

	want := []string{"Ledger", "Trezor"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Detect = %v, want %v", got, want)
	}
}
