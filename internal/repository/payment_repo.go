package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"courtbook/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

type paymentModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	RecurringID int64     `gorm:"column:recurring_id;index:idx_payment_month"`
	Month       int       `gorm:"column:month;index:idx_payment_month"`
	Year        int       `gorm:"column:year;index:idx_payment_month"`
	Amount      float64   `gorm:"column:amount"`
	Method      *string   `gorm:"column:method"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (paymentModel) TableName() string { return "payment_records" }

func toDomainPayment(m paymentModel) domain.PaymentRecord {
	var method string
	if m.Method != nil {
		method = *m.Method
	}
	return domain.PaymentRecord{
		ID:          m.ID,
		RecurringID: m.RecurringID,
		Month:       time.Month(m.Month),
		Year:        m.Year,
		Amount:      m.Amount,
		Method:      method,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *PaymentRepository) RecordsFor(ctx context.Context, recurringID int64, month time.Month, year int) ([]domain.PaymentRecord, error) {
	var rows []paymentModel
	tx := r.db.WithContext(ctx).
		Where("recurring_id = ? AND month = ? AND year = ?", recurringID, int(month), year).
		Order("created_at").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.PaymentRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainPayment(m))
	}
	return out, nil
}

// Create appends one record. Payment rows are never updated or deleted.
func (r *PaymentRepository) Create(ctx context.Context, rec *domain.PaymentRecord) error {
	var method *string
	if rec.Method != "" {
		v := rec.Method
		method = &v
	}
	m := paymentModel{
		RecurringID: rec.RecurringID,
		Month:       int(rec.Month),
		Year:        rec.Year,
		Amount:      rec.Amount,
		Method:      method,
	}
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	rec.ID = m.ID
	rec.CreatedAt = m.CreatedAt
	return nil
}
