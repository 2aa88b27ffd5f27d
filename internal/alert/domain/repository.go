package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, alert *Alert) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Alert, error)
	List(ctx context.Context, db *gorm.DB, limit int) ([]Alert, error)
	Save(ctx context.Context, db *gorm.DB, alert *Alert) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
}
