package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"courtbook/internal/domain"
)

type CourtRepository struct {
	db *gorm.DB
}

func NewCourtRepository(db *gorm.DB) *CourtRepository {
	return &CourtRepository{db: db}
}

type courtModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Category  string    `gorm:"column:category"`
	Active    bool      `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (courtModel) TableName() string { return "courts" }

func toDomainCourt(m courtModel) domain.Court {
	return domain.Court{
		ID:        m.ID,
		Name:      m.Name,
		Category:  domain.CourtCategory(m.Category),
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
	}
}

func (r *CourtRepository) List(ctx context.Context) ([]domain.Court, error) {
	var rows []courtModel
	tx := r.db.WithContext(ctx).Where("active = ?", true).Order("id").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Court, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainCourt(m))
	}
	return out, nil
}

func (r *CourtRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Court, error) {
	var rows []courtModel
	tx := r.db.WithContext(ctx).Where("id IN ? AND active = ?", ids, true).Order("id").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Court, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainCourt(m))
	}
	return out, nil
}

func (r *CourtRepository) Create(ctx context.Context, c *domain.Court) error {
	m := courtModel{Name: c.Name, Category: string(c.Category), Active: c.Active}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	c.ID = m.ID
	c.CreatedAt = m.CreatedAt
	return nil
}
