package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"courtbook/internal/domain"
)

type LessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

type lessonModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	CourtID   int64     `gorm:"column:court_id;index:idx_lesson_court_date"`
	Date      time.Time `gorm:"column:date;index:idx_lesson_court_date"`
	FromUnit  int       `gorm:"column:from_unit"`
	ToUnit    int       `gorm:"column:to_unit"`
	Category  string    `gorm:"column:category"`
	Status    string    `gorm:"column:status"`
	CoachID   int64     `gorm:"column:coach_id"`
	RequestID *int64    `gorm:"column:request_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (lessonModel) TableName() string { return "lesson_sessions" }

func toDomainLesson(m lessonModel) domain.LessonSession {
	return domain.LessonSession{
		ID:        m.ID,
		CourtID:   m.CourtID,
		Date:      m.Date,
		FromUnit:  m.FromUnit,
		ToUnit:    m.ToUnit,
		Category:  domain.CourtCategory(m.Category),
		Status:    domain.LessonStatus(m.Status),
		CoachID:   m.CoachID,
		RequestID: m.RequestID,
		CreatedAt: m.CreatedAt,
	}
}

func (r *LessonRepository) LessonsFor(ctx context.Context, date time.Time, courtIDs []int64) ([]domain.LessonSession, error) {
	var rows []lessonModel
	q := r.db.WithContext(ctx).Where("date = ?", date)
	if len(courtIDs) > 0 {
		q = q.Where("court_id IN ?", courtIDs)
	}
	if tx := q.Find(&rows); tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.LessonSession, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainLesson(m))
	}
	return out, nil
}

func (r *LessonRepository) Create(ctx context.Context, l *domain.LessonSession) error {
	m := lessonModel{
		CourtID:   l.CourtID,
		Date:      l.Date,
		FromUnit:  l.FromUnit,
		ToUnit:    l.ToUnit,
		Category:  string(l.Category),
		Status:    string(l.Status),
		CoachID:   l.CoachID,
		RequestID: l.RequestID,
	}
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	l.ID = m.ID
	l.CreatedAt = m.CreatedAt
	return nil
}

func (r *LessonRepository) UpdateStatus(ctx context.Context, id int64, status domain.LessonStatus) error {
	return r.db.WithContext(ctx).
		Model(&lessonModel{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}
