package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"courtbook/internal/domain"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type oneOffModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	CourtID    int64     `gorm:"column:court_id;index:idx_one_off_court_date"`
	Date       time.Time `gorm:"column:date;index:idx_one_off_court_date"`
	FromUnit   int       `gorm:"column:from_unit"`
	ToUnit     int       `gorm:"column:to_unit"`
	MemberID   *int64    `gorm:"column:member_id"`
	GuestName  *string   `gorm:"column:guest_name"`
	Category   string    `gorm:"column:category"`
	TotalPrice float64   `gorm:"column:total_price"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (oneOffModel) TableName() string { return "one_off_reservations" }

func toDomainOneOff(m oneOffModel) domain.OneOff {
	var guest string
	if m.GuestName != nil {
		guest = *m.GuestName
	}
	return domain.OneOff{
		ID:         m.ID,
		CourtID:    m.CourtID,
		Date:       m.Date,
		FromUnit:   m.FromUnit,
		ToUnit:     m.ToUnit,
		MemberID:   m.MemberID,
		GuestName:  guest,
		Category:   domain.CourtCategory(m.Category),
		TotalPrice: m.TotalPrice,
		CreatedAt:  m.CreatedAt,
	}
}

func toOneOffModel(b *domain.OneOff) oneOffModel {
	var guest *string
	if b.GuestName != "" {
		v := b.GuestName
		guest = &v
	}
	return oneOffModel{
		ID:         b.ID,
		CourtID:    b.CourtID,
		Date:       b.Date,
		FromUnit:   b.FromUnit,
		ToUnit:     b.ToUnit,
		MemberID:   b.MemberID,
		GuestName:  guest,
		Category:   string(b.Category),
		TotalPrice: b.TotalPrice,
		CreatedAt:  b.CreatedAt,
	}
}

func (r *ReservationRepository) OneOffsFor(ctx context.Context, date time.Time, courtIDs []int64) ([]domain.OneOff, error) {
	var rows []oneOffModel
	q := r.db.WithContext(ctx).Where("date = ?", date)
	if len(courtIDs) > 0 {
		q = q.Where("court_id IN ?", courtIDs)
	}
	if tx := q.Find(&rows); tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.OneOff, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainOneOff(m))
	}
	return out, nil
}

// CreateOneOffs persists a whole submission in one transaction. Each insert
// re-checks for an overlapping row; on postgres the no_court_overlap
// exclusion constraint backs this across processes. Either every booking
// lands or none do.
func (r *ReservationRepository) CreateOneOffs(ctx context.Context, bookings []*domain.OneOff) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, b := range bookings {
			var cnt int64
			q := `
SELECT COUNT(1)
FROM one_off_reservations
WHERE court_id = ?
  AND date = ?
  AND from_unit < ?
  AND to_unit > ?
`
			if err := tx.Raw(q, b.CourtID, b.Date, b.ToUnit, b.FromUnit).Scan(&cnt).Error; err != nil {
				return err
			}
			if cnt > 0 {
				return ErrOverlap
			}

			m := toOneOffModel(b)
			if err := tx.Create(&m).Error; err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.ConstraintName == "no_court_overlap" {
					return ErrOverlap
				}
				return err
			}
			b.ID = m.ID
			b.CreatedAt = m.CreatedAt
		}
		return nil
	})
}
