package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"courtbook/internal/domain"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

type requestModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	RequesterID int64     `gorm:"column:requester_id;index"`
	Category    string    `gorm:"column:category"`
	Date        time.Time `gorm:"column:date"`
	FromUnit    int       `gorm:"column:from_unit"`
	ToUnit      int       `gorm:"column:to_unit"`
	Status      string    `gorm:"column:status"`

	SuggestedDate     *time.Time `gorm:"column:suggested_date"`
	SuggestedFromUnit *int       `gorm:"column:suggested_from_unit"`
	SuggestedToUnit   *int       `gorm:"column:suggested_to_unit"`

	Notes       *string  `gorm:"column:notes"`
	CourtID     *int64   `gorm:"column:court_id"`
	QuotedPrice *float64 `gorm:"column:quoted_price"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (requestModel) TableName() string { return "lesson_requests" }

func toDomainRequest(m requestModel) domain.LessonRequest {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}
	return domain.LessonRequest{
		ID:                m.ID,
		RequesterID:       m.RequesterID,
		Category:          domain.CourtCategory(m.Category),
		Date:              m.Date,
		FromUnit:          m.FromUnit,
		ToUnit:            m.ToUnit,
		Status:            domain.RequestStatus(m.Status),
		SuggestedDate:     m.SuggestedDate,
		SuggestedFromUnit: m.SuggestedFromUnit,
		SuggestedToUnit:   m.SuggestedToUnit,
		Notes:             notes,
		CourtID:           m.CourtID,
		QuotedPrice:       m.QuotedPrice,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toRequestModel(r *domain.LessonRequest) requestModel {
	var notes *string
	if r.Notes != "" {
		v := r.Notes
		notes = &v
	}
	return requestModel{
		ID:                r.ID,
		RequesterID:       r.RequesterID,
		Category:          string(r.Category),
		Date:              r.Date,
		FromUnit:          r.FromUnit,
		ToUnit:            r.ToUnit,
		Status:            string(r.Status),
		SuggestedDate:     r.SuggestedDate,
		SuggestedFromUnit: r.SuggestedFromUnit,
		SuggestedToUnit:   r.SuggestedToUnit,
		Notes:             notes,
		CourtID:           r.CourtID,
		QuotedPrice:       r.QuotedPrice,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.LessonRequest) error {
	m := toRequestModel(req)
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*req = toDomainRequest(m)
	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*domain.LessonRequest, error) {
	var m requestModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, tx.Error
	}
	d := toDomainRequest(m)
	return &d, nil
}

// Update saves the full request row. Historical requests are retained;
// status transitions are the only mutation the services perform.
func (r *RequestRepository) Update(ctx context.Context, req *domain.LessonRequest) error {
	m := toRequestModel(req)
	if tx := r.db.WithContext(ctx).Save(&m); tx.Error != nil {
		return tx.Error
	}
	req.UpdatedAt = m.UpdatedAt
	return nil
}

// ApproveWithLesson persists the approved request and its lesson session in
// one transaction. Either the lesson row lands and the status flips, or
// neither does; a failed approval can never leave an orphan lesson occupying
// the slot.
func (r *RequestRepository) ApproveWithLesson(ctx context.Context, req *domain.LessonRequest, l *domain.LessonSession) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lm := lessonModel{
			CourtID:   l.CourtID,
			Date:      l.Date,
			FromUnit:  l.FromUnit,
			ToUnit:    l.ToUnit,
			Category:  string(l.Category),
			Status:    string(l.Status),
			CoachID:   l.CoachID,
			RequestID: l.RequestID,
		}
		if err := tx.Create(&lm).Error; err != nil {
			return err
		}
		l.ID = lm.ID
		l.CreatedAt = lm.CreatedAt

		m := toRequestModel(req)
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		req.UpdatedAt = m.UpdatedAt
		return nil
	})
}

func (r *RequestRepository) ListByRequester(ctx context.Context, requesterID int64) ([]domain.LessonRequest, error) {
	var rows []requestModel
	tx := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.LessonRequest, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainRequest(m))
	}
	return out, nil
}

// ListOpen returns every request still awaiting a decision, oldest first.
func (r *RequestRepository) ListOpen(ctx context.Context) ([]domain.LessonRequest, error) {
	var rows []requestModel
	tx := r.db.WithContext(ctx).
		Where("status IN ?", []string{string(domain.RequestPending), string(domain.RequestChanged)}).
		Order("created_at").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.LessonRequest, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainRequest(m))
	}
	return out, nil
}
