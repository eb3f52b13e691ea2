package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"courtbook/internal/domain"
)

type RecurringRepository struct {
	db *gorm.DB
}

func NewRecurringRepository(db *gorm.DB) *RecurringRepository {
	return &RecurringRepository{db: db}
}

type recurringModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	CourtID         int64      `gorm:"column:court_id;index"`
	Weekday         int        `gorm:"column:weekday"`
	FromUnit        int        `gorm:"column:from_unit"`
	ToUnit          int        `gorm:"column:to_unit"`
	Category        string     `gorm:"column:category"`
	PricePerSession float64    `gorm:"column:price_per_session"`
	ActiveFrom      time.Time  `gorm:"column:active_from"`
	ActiveTo        *time.Time `gorm:"column:active_to"`
	Active          bool       `gorm:"column:active"`
	HolderID        *int64     `gorm:"column:holder_id"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
}

func (recurringModel) TableName() string { return "recurring_reservations" }

func toDomainRecurring(m recurringModel) domain.Recurring {
	return domain.Recurring{
		ID:              m.ID,
		CourtID:         m.CourtID,
		Weekday:         time.Weekday(m.Weekday),
		FromUnit:        m.FromUnit,
		ToUnit:          m.ToUnit,
		Category:        domain.CourtCategory(m.Category),
		PricePerSession: m.PricePerSession,
		ActiveFrom:      m.ActiveFrom,
		ActiveTo:        m.ActiveTo,
		Active:          m.Active,
		HolderID:        m.HolderID,
		CreatedAt:       m.CreatedAt,
	}
}

func toRecurringModel(r *domain.Recurring) recurringModel {
	return recurringModel{
		ID:              r.ID,
		CourtID:         r.CourtID,
		Weekday:         int(r.Weekday),
		FromUnit:        r.FromUnit,
		ToUnit:          r.ToUnit,
		Category:        string(r.Category),
		PricePerSession: r.PricePerSession,
		ActiveFrom:      r.ActiveFrom,
		ActiveTo:        r.ActiveTo,
		Active:          r.Active,
		HolderID:        r.HolderID,
		CreatedAt:       r.CreatedAt,
	}
}

// RecurringPatternsFor returns the stored patterns; expansion to dated
// occurrences always happens in the caller, never here.
func (r *RecurringRepository) RecurringPatternsFor(ctx context.Context, courtIDs []int64) ([]domain.Recurring, error) {
	var rows []recurringModel
	q := r.db.WithContext(ctx)
	if len(courtIDs) > 0 {
		q = q.Where("court_id IN ?", courtIDs)
	}
	if tx := q.Find(&rows); tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Recurring, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainRecurring(m))
	}
	return out, nil
}

func (r *RecurringRepository) GetByID(ctx context.Context, id int64) (*domain.Recurring, error) {
	var m recurringModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, tx.Error
	}
	d := toDomainRecurring(m)
	return &d, nil
}

func (r *RecurringRepository) Create(ctx context.Context, rec *domain.Recurring) error {
	m := toRecurringModel(rec)
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	rec.ID = m.ID
	rec.CreatedAt = m.CreatedAt
	return nil
}
