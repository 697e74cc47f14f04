package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// MaxListLimit caps the page size of List.
const MaxListLimit = 100

// ErrNotFound is returned by Get and Update when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// Record is satisfied by pointers to the persisted models.
type Record[T any] interface {
	*T
	GetID() uint
	SetID(id uint)
}

// Repository is the data-access layer of one entity. Every mutating call commits on
// its own.
type Repository[T any, P Record[T]] struct {
	db *gorm.DB
}

func NewRepository[T any, P Record[T]](db *gorm.DB) *Repository[T, P] {
	return &Repository[T, P]{db: db}
}

// Create inserts data and returns the stored record with its generated id. Any id set
// on data is discarded.
func (r *Repository[T, P]) Create(ctx context.Context, data T) (*T, error) {
	rec := data
	P(&rec).SetID(0)

	if err := r.db.WithContext(ctx).Create(P(&rec)).Error; err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}
	return &rec, nil
}

func (r *Repository[T, P]) Get(ctx context.Context, id uint) (*T, error) {
	var rec T
	err := r.db.WithContext(ctx).First(P(&rec), id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %d: %w", id, err)
	}
	return &rec, nil
}

// List returns records in id order. A negative offset reads from the start, a
// non-positive limit returns nothing and limits above MaxListLimit are clamped.
func (r *Repository[T, P]) List(ctx context.Context, offset, limit int) ([]T, error) {
	recs := make([]T, 0)
	if limit <= 0 {
		return recs, nil
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return recs, nil
}

// Update overwrites every mutable field of record id with data (full replace).
func (r *Repository[T, P]) Update(ctx context.Context, id uint, data T) (*T, error) {
	var rec T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(P(&rec), id).Error; err != nil {
			return err
		}
		if err := tx.Model(P(&rec)).Select("*").Omit("ID", "CreatedAt").Updates(P(&data)).Error; err != nil {
			return err
		}
		return tx.First(P(&rec), id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update %d: %w", id, err)
	}
	return &rec, nil
}

// Delete removes record id. Deleting an absent record is not an error.
func (r *Repository[T, P]) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(P(new(T)), id).Error; err != nil {
		return fmt.Errorf("delete %d: %w", id, err)
	}
	return nil
}

func (r *Repository[T, P]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(P(new(T))).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
