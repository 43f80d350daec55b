package config

import (
	"os"
	"reflect"
	"testing"
	"time"
)

func TestGetEnvWithDefault(t *testing.T) {
	const key = "TEST_APP_PORT"

	_ = os.Unsetenv(key)
	if got := getEnv(key, "9000"); got != "9000" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "9000")
	}

	if err := os.Setenv(key, "8080"); err != nil {
		t.Fatalf("Setenv error: %v", err)
	}
	defer os.Unsetenv(key)
	if got := getEnv(key, "9000"); got != "8080" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "8080")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList("ledger, trezor ,,coinbase")
	want := []string{"ledger", "trezor", "coinbase"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitList = %v, want %v", got, want)
	}
}

func TestParseFeedsSkipsMalformedEntries(t *testing.T) {
	got := parseFeeds("Trezor Blog=https://blog.trezor.io/feed,broken entry,Empty=")
	if len(got) != 1 {
		t.Fatalf("parseFeeds kept %d feeds, want 1: %v", len(got), got)
	}
	if got[0].Name != "Trezor Blog" || got[0].URL != "https://blog.trezor.io/feed" {
		t.Fatalf("parseFeeds = %+v", got[0])
	}
}

func TestLoadReadsVocabularyAndLookback(t *testing.T) {
	_ = os.Setenv("COMPETITORS", "ledger,coinbase")
	_ = os.Setenv("LOOKBACK_HOURS", "48")
	defer func() {
		_ = os.Unsetenv("COMPETITORS")
		_ = os.Unsetenv("LOOKBACK_HOURS")
	}()

	cfg := Load()
	if !reflect.DeepEqual(cfg.Competitors, []string{"ledger", "coinbase"}) {
		t.Fatalf("Competitors = %v", cfg.Competitors)
	}
	if cfg.Lookback != 48*time.Hour {
		t.Fatalf("Lookback = %v, want 48h", cfg.Lookback)
	}
}

func TestGetEnvIntRejectsGarbage(t *testing.T) {
	_ = os.Setenv("TEST_LOOKBACK", "not-a-number")
	defer os.Unsetenv("TEST_LOOKBACK")

	if got := getEnvInt("TEST_LOOKBACK", 24); got != 24 {
		t.Fatalf("getEnvInt = %d, want default 24", got)
	}
}
