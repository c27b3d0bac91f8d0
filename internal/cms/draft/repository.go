package draft

import (
	"context"
	"errors"
	"time"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record - сохраненный черновик статьи.
type Record struct {
	Key             string `gorm:"column:draft_key;primaryKey"`
	ArticleID       string `gorm:"index"`
	Title           string
	MetaDescription string
	FeaturedImage   string
	Blocks          edtypes.Blocks
	CreatedAt       time.Time
	UpdatedAt       time.Time `gorm:"index"`
}

func (Record) TableName() string { return "drafts" }

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&Record{})
}

// Save создает или полностью перезаписывает черновик.
func (r *Repository) Save(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "draft_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"article_id", "title", "meta_description", "featured_image", "blocks", "updated_at"}),
		}).
		Create(rec).Error
}

// Get возвращает черновик или nil, если его нет.
func (r *Repository) Get(ctx context.Context, key string) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).Where("draft_key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Repository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("draft_key = ?", key).Delete(&Record{}).Error
}

// Expired возвращает id статей, черновики которых не обновлялись с before.
func (r *Repository) Expired(ctx context.Context, before time.Time) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&Record{}).
		Where("updated_at < ?", before).
		Pluck("article_id", &ids).Error
	return ids, err
}
