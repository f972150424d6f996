package database

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"libraryapi/internal/entities"
)

func setupDatabase(t *testing.T) *Database {
	t.Helper()
	dbPath := "./test_database_" + t.Name() + ".db"

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	return db
}

func TestNewDatabase_MigratesSchema(t *testing.T) {
	db := setupDatabase(t)

	assert.True(t, db.DB.Migrator().HasTable(&entities.Book{}))
	assert.True(t, db.DB.Migrator().HasTable(&entities.User{}))
}

func TestNewDatabase_TranslatesDuplicateKey(t *testing.T) {
	db := setupDatabase(t)

	first := entities.Book{Title: "Dune", Author: "Frank Herbert", ISBN: "isbn-dup"}
	require.NoError(t, db.DB.Create(&first).Error)

	second := entities.Book{Title: "Other", Author: "Somebody", ISBN: "isbn-dup"}
	err := db.DB.Create(&second).Error
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}
