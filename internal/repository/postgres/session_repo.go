package postgres

import (
	"context"

	"github.com/dom/account-service/internal/domain"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	return translate(r.db.WithContext(ctx).Create(session).Error)
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).First(&session, "token = ?", token).Error
	if err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

func (r *sessionRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).First(&session, "user_id = ?", userID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

func (r *sessionRepository) DeleteByToken(ctx context.Context, token string) error {
	result := r.db.WithContext(ctx).Delete(&domain.Session{}, "token = ?", token)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *sessionRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	return translate(r.db.WithContext(ctx).Delete(&domain.Session{}, "user_id = ?", userID).Error)
}

func (r *sessionRepository) List(ctx context.Context) ([]*domain.Session, error) {
	var sessions []*domain.Session
	err := r.db.WithContext(ctx).Order("id").Find(&sessions).Error
	if err != nil {
		return nil, translate(err)
	}
	return sessions, nil
}
