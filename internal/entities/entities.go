package entities

import (
	"time"
)

// Book is a catalogued title in the library.
type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"index;size:512" json:"title"`
	Author          string    `gorm:"index;size:256" json:"author"`
	ISBN            string    `gorm:"uniqueIndex;size:20" json:"isbn"`
	Publisher       string    `gorm:"size:256" json:"publisher,omitempty"`
	PublicationYear int       `json:"publication_year,omitempty"`
	Description     string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// User is a library account. Email is the login identifier.
// HashedPassword is never serialized in responses.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;size:255" json:"email"`
	HashedPassword string    `gorm:"size:128" json:"-"`
	FullName       string    `gorm:"size:256" json:"full_name"`
	// No gorm default tags: with one, a zero value is omitted from the
	// INSERT and the column default silently overrides an explicit
	// false. The service sets both flags on every insert.
	IsActive bool `json:"is_active"`
	IsAdmin  bool `json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

func (User) TableName() string {
	return "users"
}
