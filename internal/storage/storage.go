package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bashmore0207/scraperrr/internal/collector"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Article is the persisted form of a canonical article. URL carries a
// unique index: even if the dedupe check and the insert race, the second
// insert fails instead of landing a duplicate row.
type Article struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	Title       string                      `gorm:"size:512" json:"title"`
	URL         string                      `gorm:"size:1024;uniqueIndex" json:"url"`
	Source      string                      `gorm:"size:128;index" json:"source"`
	Competitors datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"competitors"`
	PublishedAt time.Time                   `gorm:"index" json:"publishedAt"`
	Summary     string                      `gorm:"size:600" json:"summary"`
	Author      string                      `gorm:"size:256" json:"author"`
	ImageURL    string                      `gorm:"size:1024" json:"imageUrl"`

	CreatedAt time.Time `json:"createdAt"`
}

// ScraperRun is one audit row per pipeline invocation. Append-only:
// nothing in this codebase updates or deletes these rows.
type ScraperRun struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	StartedAt     time.Time `json:"startedAt"`
	CompletedAt   time.Time `json:"completedAt"`
	Source        string    `gorm:"size:64;index" json:"source"`
	ArticlesFound int       `json:"articlesFound"`
	ArticlesAdded int       `json:"articlesAdded"`
	Status        string    `gorm:"size:32;index" json:"status"`
	ErrorMessage  string    `gorm:"size:1024" json:"errorMessage"`

	CreatedAt time.Time `json:"createdAt"`
}

// SavedArticle bookmarks an article for the dashboard's saved view.
type SavedArticle struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"uniqueIndex" json:"articleId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Store struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewStore(dsn, redisAddr string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Article{}, &ScraperRun{}, &SavedArticle{}); err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("warn: redis ping failed: %v", err)
	}

	return &Store{DB: db, Redis: rdb}, nil
}

// toValidUTF8 normalizes a string to legal UTF-8 so Postgres never
// rejects an insert over a stray byte sequence from an upstream feed.
func toValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "�")
}

// truncateRunesDB cuts a string to the column's rune limit. Second line
// of defense behind the adapters' own truncation.
func truncateRunesDB(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.TrimSpace(s)
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}

// ArticleExists reports whether any stored article has the given URL.
func (s *Store) ArticleExists(url string) (bool, error) {
	var count int64
	if err := s.DB.Model(&Article{}).Where("url = ?", url).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertArticle stores one canonical article. Stored articles are never
// mutated by the ingestion flow.
func (s *Store) InsertArticle(a collector.Article) error {
	if a.URL == "" {
		return errors.New("article has no url")
	}
	row := &Article{
		Title:       truncateRunesDB(toValidUTF8(a.Title), 512),
		URL:         a.URL,
		Source:      truncateRunesDB(toValidUTF8(a.Source), 128),
		Competitors: datatypes.NewJSONSlice(a.Competitors),
		PublishedAt: a.PublishedAt,
		Summary:     truncateRunesDB(toValidUTF8(a.Summary), 600),
		Author:      truncateRunesDB(toValidUTF8(a.Author), 256),
		ImageURL:    a.ImageURL,
	}
	return s.DB.Create(row).Error
}

// InsertRun appends one audit row.
func (s *Store) InsertRun(run *ScraperRun) error {
	return s.DB.Create(run).Error
}

// ListArticles returns stored articles, newest first, optionally
// filtered by mentioned competitor and by source. Results go through a
// short-TTL Redis cache; a dead Redis just disables the cache.
func (s *Store) ListArticles(competitor, source string, limit int) ([]Article, error) {
	if limit <= 0 || limit > 1000 {
		limit = 50
	}

	ctx := context.Background()
	cacheKey := fmt.Sprintf("articles:list:%s:%s:%d", competitor, source, limit)

	if s.Redis != nil {
		if bs, err := s.Redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached []Article
			if err := json.Unmarshal(bs, &cached); err == nil {
				return cached, nil
			}
		}
	}

	db := s.DB.Model(&Article{})
	if competitor != "" {
		// jsonb containment: the competitors array holds the label.
		db = db.Where("competitors @> ?::jsonb", fmt.Sprintf("[%q]", competitor))
	}
	if source != "" {
		db = db.Where("source = ?", source)
	}

	var list []Article
	if err := db.Order("published_at DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}

	const listCacheTTL = 5 * time.Minute
	if s.Redis != nil && len(list) > 0 {
		if bs, err := json.Marshal(list); err == nil {
			_ = s.Redis.Set(ctx, cacheKey, bs, listCacheTTL).Err()
		}
	}

	return list, nil
}

// ListRuns returns recent audit rows, newest first.
func (s *Store) ListRuns(limit int) ([]ScraperRun, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	var runs []ScraperRun
	if err := s.DB.Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// SaveArticle bookmarks an article. Saving twice is a no-op.
func (s *Store) SaveArticle(articleID uint) error {
	var a Article
	if err := s.DB.First(&a, articleID).Error; err != nil {
		return err
	}
	saved := &SavedArticle{ArticleID: articleID}
	return s.DB.Where("article_id = ?", articleID).FirstOrCreate(saved).Error
}

// UnsaveArticle removes a bookmark if present.
func (s *Store) UnsaveArticle(articleID uint) error {
	return s.DB.Where("article_id = ?", articleID).Delete(&SavedArticle{}).Error
}

// ListSaved returns bookmarked articles, most recently saved first.
func (s *Store) ListSaved(limit int) ([]Article, error) {
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	var list []Article
	err := s.DB.
		Joins("JOIN saved_articles ON saved_articles.article_id = articles.id").
		Order("saved_articles.created_at DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Ping verifies database connectivity, used by the smoke-test command.
func (s *Store) Ping() error {
	db, err := s.DB.DB()
	if err != nil {
		return err
	}
	return db.Ping()
}
