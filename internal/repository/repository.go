// Package repository provides a generic data-access layer over GORM.
//
// # Usage
//
//	books := repository.New[entities.Book](db)
//	book, err := books.Get(42)
package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository is a generic CRUD accessor for a single entity table.
// A miss on Get/Delete/FirstBy is not an error: the entity pointer is
// nil and the caller decides how to react.
type Repository[T any] struct {
	db *gorm.DB
}

// New creates a repository for the entity type T.
func New[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// Get retrieves a single entity by ID. Returns (nil, nil) when absent.
func (r *Repository[T]) Get(id uint) (*T, error) {
	var entity T
	err := r.db.First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// GetMulti returns a pagination window over all records, ordered by ID.
// A skip beyond the record count yields an empty slice.
func (r *Repository[T]) GetMulti(skip, limit int) ([]T, error) {
	var results []T
	err := r.db.Order("id").Offset(skip).Limit(limit).Find(&results).Error
	return results, err
}

// Create inserts the entity and populates its assigned ID.
func (r *Repository[T]) Create(entity *T) error {
	return r.db.Create(entity).Error
}

// Update applies only the columns present in changes, leaving all other
// fields untouched. The existing struct is updated in place.
func (r *Repository[T]) Update(existing *T, changes map[string]any) (*T, error) {
	if len(changes) == 0 {
		return existing, nil
	}
	if err := r.db.Model(existing).Updates(changes).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes the entity and returns it as it existed before
// deletion. Returns (nil, nil) when no such ID exists.
func (r *Repository[T]) Delete(id uint) (*T, error) {
	existing, err := r.Get(id)
	if err != nil || existing == nil {
		return nil, err
	}
	if err := r.db.Delete(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// FilterBy returns all entities whose column matches value exactly,
// ordered by ID. Field names come from service code, never from
// request input.
func (r *Repository[T]) FilterBy(field string, value any) ([]T, error) {
	var results []T
	err := r.db.Where(fmt.Sprintf("%s = ?", field), value).Order("id").Find(&results).Error
	return results, err
}

// FirstBy returns the first entity whose column matches value exactly,
// or (nil, nil) when there is no match.
func (r *Repository[T]) FirstBy(field string, value any) (*T, error) {
	var entity T
	err := r.db.Where(fmt.Sprintf("%s = ?", field), value).Order("id").First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// Count returns the total number of records in the table.
func (r *Repository[T]) Count() (int64, error) {
	var entity T
	var count int64
	err := r.db.Model(&entity).Count(&count).Error
	return count, err
}
