package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/riskwatch/internal/alert/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, conn *gorm.DB, alert *domain.Alert) error {
	return conn.WithContext(ctx).Create(alert).Error
}

func (r *repo) FindByID(ctx context.Context, conn *gorm.DB, id snowflake.ID) (*domain.Alert, error) {
	var alert domain.Alert
	err := conn.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&alert).Error
	if err != nil {
		return nil, err
	}
	if alert.ID == 0 {
		return nil, nil
	}
	return &alert, nil
}

func (r *repo) List(ctx context.Context, conn *gorm.DB, limit int) ([]domain.Alert, error) {
	if limit <= 0 {
		limit = 200
	}
	alerts := make([]domain.Alert, 0)
	err := conn.WithContext(ctx).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *repo) Save(ctx context.Context, conn *gorm.DB, alert *domain.Alert) error {
	return conn.WithContext(ctx).Save(alert).Error
}

func (r *repo) Delete(ctx context.Context, conn *gorm.DB, id snowflake.ID) (bool, error) {
	res := conn.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Alert{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
