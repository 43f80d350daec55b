package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bashmore0207/scraperrr/internal/collector"
	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	PostgresDSN string
	RedisAddr   string

	NewsDataAPIKey   string
	NewsDataQuery    string
	NewsDataLanguage string
	NewsDataCategory string

	Competitors []string
	Feeds       []collector.Feed
	Lookback    time.Duration

	NewsDataCronSpec string
	RSSCronSpec      string
}

// Load reads configuration from the environment, with a .env file as a
// fallback for local runs. Values are immutable for the lifetime of the
// process.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort: getEnv("APP_PORT", "9000"),

		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=scraperrr password=scraperrr dbname=scraperrr port=5432 sslmode=disable TimeZone=UTC"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),

		NewsDataAPIKey:   getEnv("NEWSDATA_API_KEY", ""),
		NewsDataQuery:    getEnv("NEWSDATA_QUERY", "cryptocurrency wallet OR crypto wallet OR hardware wallet"),
		NewsDataLanguage: getEnv("NEWSDATA_LANGUAGE", "en"),
		NewsDataCategory: getEnv("NEWSDATA_CATEGORY", "technology,business"),

		Competitors: splitList(getEnv("COMPETITORS", "ledger,trezor,tangem,coinbase,metamask,revolut,raby,phantom")),
		Feeds:       parseFeeds(getEnv("RSS_FEEDS", "Trezor Blog=https://blog.trezor.io/feed")),
		Lookback:    time.Duration(getEnvInt("LOOKBACK_HOURS", 24)) * time.Hour,

		NewsDataCronSpec: getEnv("NEWSDATA_CRON_SPEC", "0 * * * *"),
		RSSCronSpec:      getEnv("RSS_CRON_SPEC", "*/30 * * * *"),
	}

	log.Printf("config loaded: port=%s competitors=%d feeds=%d lookback=%s",
		cfg.AppPort, len(cfg.Competitors), len(cfg.Feeds), cfg.Lookback)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("warn: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseFeeds parses "Name=URL,Name=URL" pairs. Entries without a "=" or
// without a URL are skipped with a warning.
func parseFeeds(s string) []collector.Feed {
	var feeds []collector.Feed
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, url, ok := strings.Cut(part, "=")
		if !ok || strings.TrimSpace(url) == "" {
			log.Printf("warn: skipping malformed feed entry %q", part)
			continue
		}
		feeds = append(feeds, collector.Feed{
			Name: strings.TrimSpace(name),
			URL:  strings.TrimSpace(url),
		})
	}
	return feeds
}
