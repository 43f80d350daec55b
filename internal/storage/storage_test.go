package storage

import (
	"strings"
	"testing"
)

func TestTruncateRunesDB(t *testing.T) {
	if got := truncateRunesDB("short", 600); got != "short" {
		t.Fatalf("truncateRunesDB should keep input under the limit: %q", got)
	}

	long := strings.Repeat("ä", 700)
	got := truncateRunesDB(long, 600)
	if n := len([]rune(got)); n != 600 {
		t.Fatalf("truncateRunesDB length = %d runes, want 600", n)
	}

	if got := truncateRunesDB("anything", 0); got != "" {
		t.Fatalf("truncateRunesDB with zero limit = %q, want empty", got)
	}
}

func TestToValidUTF8ReplacesBadBytes(t *testing.T) {
	bad := string([]byte{0xff, 0xfe}) + "ok"
	got := toValidUTF8(bad)
	if !strings.HasSuffix(got, "ok") {
		t.Fatalf("toValidUTF8 lost valid content: %q", got)
	}
	if strings.Contains(got, string([]byte{0xff})) {
		t.Fatalf("toValidUTF8 kept invalid bytes: %q", got)
	}
}
