package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"complaintportal/backend/internal/config"
	"complaintportal/backend/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_complaint_cache_hits_total",
		Help: "Lookups served from the Redis complaint cache.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_complaint_cache_misses_total",
		Help: "Lookups that fell through the Redis complaint cache to PostgreSQL.",
	})
)

// Service stores complaints in PostgreSQL and, when Redis is configured,
// caches single-record lookups there.
type Service struct {
	DB       *gorm.DB
	Redis    *redis.Client
	CacheTTL time.Duration
}

// NewStorageService creates a PostgreSQL-backed store. rdb may be nil.
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:       db,
		Redis:    rdb,
		CacheTTL: 10 * time.Minute,
	}
}

// Load returns all complaints ordered by insertion.
func (s *Service) Load(ctx context.Context) ([]models.Complaint, error) {
	var rows []ComplaintRow
	if err := s.DB.WithContext(ctx).Order("seq asc").Find(&rows).Error; err != nil {
		log.Printf("ERROR: Failed to load complaints: %v", err)
		return nil, err
	}
	out := make([]models.Complaint, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toComplaint())
	}
	return out, nil
}

// Append inserts a complaint. The unique index on complaint_id rejects
// duplicates even when two writers race past the existence check.
func (s *Service) Append(ctx context.Context, c *models.Complaint) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&ComplaintRow{}).
		Where("complaint_id = ?", c.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
	}

	row := rowFromComplaint(c)
	result := s.DB.WithContext(ctx).Create(&row)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
	}
	if result.Error != nil {
		log.Printf("ERROR: Failed to save complaint %s: %v", c.ID, result.Error)
		return result.Error
	}
	return nil
}

// FindByID returns the complaint with the given identifier, or nil, nil.
func (s *Service) FindByID(ctx context.Context, id string) (*models.Complaint, error) {
	if c, ok := s.cacheGet(ctx, id); ok {
		return c, nil
	}

	var row ComplaintRow
	err := s.DB.WithContext(ctx).Where("complaint_id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to find complaint %s: %v", id, err)
		return nil, err
	}

	c := row.toComplaint()
	s.cacheSet(ctx, &c)
	return &c, nil
}

// UpdateStatus changes the status of one complaint and drops its cache entry.
func (s *Service) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	result := s.DB.WithContext(ctx).Model(&ComplaintRow{}).
		Where("complaint_id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if s.Redis != nil {
		if err := s.Redis.Del(ctx, config.CacheKeyPrefix+id).Err(); err != nil {
			log.Printf("WARNING: Failed to invalidate cached complaint %s: %v", id, err)
		}
	}
	return nil
}

func (s *Service) cacheGet(ctx context.Context, id string) (*models.Complaint, bool) {
	if s.Redis == nil {
		return nil, false
	}
	raw, err := s.Redis.Get(ctx, config.CacheKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		cacheMissesTotal.Inc()
		return nil, false
	}
	if err != nil {
		log.Printf("WARNING: Redis lookup for complaint %s failed: %v", id, err)
		cacheMissesTotal.Inc()
		return nil, false
	}
	var c models.Complaint
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		log.Printf("WARNING: Dropping unreadable cache entry for complaint %s: %v", id, err)
		cacheMissesTotal.Inc()
		return nil, false
	}
	cacheHitsTotal.Inc()
	return &c, true
}

func (s *Service) cacheSet(ctx context.Context, c *models.Complaint) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(c)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, config.CacheKeyPrefix+c.ID, data, s.CacheTTL).Err(); err != nil {
		log.Printf("WARNING: Failed to cache complaint %s: %v", c.ID, err)
	}
}
