// Package oplog records which operations were requested and from where.
package oplog

import (
	"context"
	"time"

	"github.com/talkincode/stockbill/internal/domain"
	"gorm.io/gorm"
)

// Repository handles database operations for operation log rows
type Repository interface {
	// Create inserts a new audit row
	Create(ctx context.Context, log *domain.OperationLog) error

	// List returns all rows, newest first
	List(ctx context.Context) ([]domain.OperationLog, error)

	// DeleteOlderThan removes rows created before cutoff
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// GormRepository is the GORM implementation of Repository
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new GORM-based repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, log *domain.OperationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *GormRepository) List(ctx context.Context) ([]domain.OperationLog, error) {
	var logs []domain.OperationLog
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&logs).Error
	return logs, err
}

func (r *GormRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&domain.OperationLog{})
	return res.RowsAffected, res.Error
}

// Service writes audit rows
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates the service on top of repo
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Add records action on controller requested from ip
func (s *Service) Add(ctx context.Context, ip, action, controller string) error {
	return s.repo.Create(ctx, &domain.OperationLog{
		Action:     action,
		Controller: controller,
		IP:         ip,
		CreatedAt:  s.now(),
	})
}

// List returns all audit rows
func (s *Service) List(ctx context.Context) ([]domain.OperationLog, error) {
	return s.repo.List(ctx)
}

// Purge deletes rows older than the given number of days
func (s *Service) Purge(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		days = 365
	}
	return s.repo.DeleteOlderThan(ctx, s.now().Add(-time.Hour*24*time.Duration(days)))
}
