// Package detections provides database operations for stored palindrome detections.
//
// This package implements the DetectionStore interface defined in internal/http/detections.go.
//
// # Interface Implementation
//
//	var _ http.DetectionStore = (*Repository)(nil)
//
// # Usage
//
//	repo := detections.NewRepository(db)
//	record, err := repo.Insert(ctx, "Able was I ere I saw Elba", palindrome.English, true)
//	palindromes, err := repo.List(ctx, detections.Filter{Language: &lang})
package detections

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/palindromes/internal/entities"
	"github.com/mrlokans/palindromes/internal/palindrome"
)

// Filter narrows List results. Nil fields are not applied; time bounds are inclusive.
type Filter struct {
	Language *palindrome.Language
	From     *time.Time
	To       *time.Time
}

// Stats summarises the stored detections.
type Stats struct {
	Total          int64                         `json:"total"`
	Palindromes    int64                         `json:"palindromes"`
	NonPalindromes int64                         `json:"non_palindromes"`
	ByLanguage     map[palindrome.Language]int64 `json:"by_language"`
}

// Repository handles all detection database operations.
type Repository struct {
	db  *gorm.DB
	now func() time.Time

	// mu orders timestamp assignment with the insert so that timestamps never
	// go backwards relative to ids.
	mu   sync.Mutex
	last time.Time
}

// NewRepository creates a new detections repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// WithClock replaces the time source used for new timestamps.
func (r *Repository) WithClock(now func() time.Time) *Repository {
	r.now = now
	return r
}

// Insert stores a new detection and returns it with its id and timestamp set.
func (r *Repository) Insert(ctx context.Context, text string, lang palindrome.Language, isPalindrome bool) (*entities.Detection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := r.now().UTC()
	if ts.Before(r.last) {
		ts = r.last
	}

	record := &entities.Detection{
		Text:         text,
		Language:     lang,
		IsPalindrome: isPalindrome,
		Timestamp:    ts,
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, storageError("insert", err)
	}

	r.last = ts
	return record, nil
}

// List returns palindromic detections matching the filter, in insertion order.
func (r *Repository) List(ctx context.Context, filter Filter) ([]entities.Detection, error) {
	query := r.db.WithContext(ctx).Where("is_palindrome = ?", true)

	if filter.Language != nil {
		query = query.Where("language = ?", *filter.Language)
	}
	if filter.From != nil {
		query = query.Where("timestamp >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		query = query.Where("timestamp <= ?", filter.To.UTC())
	}

	records := []entities.Detection{}
	if err := query.Order("id ASC").Find(&records).Error; err != nil {
		return nil, storageError("list", err)
	}
	return records, nil
}

// ListAll returns every detection regardless of outcome, in insertion order.
func (r *Repository) ListAll(ctx context.Context) ([]entities.Detection, error) {
	records := []entities.Detection{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, storageError("list all", err)
	}
	return records, nil
}

// Get looks a detection up by id. A missing record is reported by found == false.
func (r *Repository) Get(ctx context.Context, id uint) (*entities.Detection, bool, error) {
	if !storableID(id) {
		return nil, false, nil
	}

	var record entities.Detection
	err := r.db.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storageError("get", err)
	}
	return &record, true, nil
}

// Delete removes a detection and reports whether one existed.
func (r *Repository) Delete(ctx context.Context, id uint) (bool, error) {
	if !storableID(id) {
		return false, nil
	}
	result := r.db.WithContext(ctx).Delete(&entities.Detection{}, id)
	if result.Error != nil {
		return false, storageError("delete", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// storableID reports whether id fits a SQLite rowid. Other ids cannot exist.
func storableID(id uint) bool {
	return id != 0 && uint64(id) <= math.MaxInt64
}

// Count returns the total number of stored detections.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Detection{}).Count(&count).Error; err != nil {
		return 0, storageError("count", err)
	}
	return count, nil
}

// GetStats returns totals by outcome and by language.
func (r *Repository) GetStats(ctx context.Context) (*Stats, error) {
	var rows []struct {
		Language     palindrome.Language
		IsPalindrome bool
		Count        int64
	}
	err := r.db.WithContext(ctx).Model(&entities.Detection{}).
		Select("language, is_palindrome, COUNT(*) AS count").
		Group("language, is_palindrome").
		Scan(&rows).Error
	if err != nil {
		return nil, storageError("stats", err)
	}

	stats := &Stats{ByLanguage: make(map[palindrome.Language]int64)}
	for _, lang := range palindrome.Languages() {
		stats.ByLanguage[lang] = 0
	}
	for _, row := range rows {
		stats.Total += row.Count
		stats.ByLanguage[row.Language] += row.Count
		if row.IsPalindrome {
			stats.Palindromes += row.Count
		} else {
			stats.NonPalindromes += row.Count
		}
	}
	return stats, nil
}
