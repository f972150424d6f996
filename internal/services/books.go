package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"libraryapi/internal/entities"
	"libraryapi/internal/repository"
)

// BookCreate is the input for creating a book.
type BookCreate struct {
	Title           string `json:"title" binding:"required"`
	Author          string `json:"author" binding:"required"`
	ISBN            string `json:"isbn" binding:"required"`
	Publisher       string `json:"publisher"`
	PublicationYear int    `json:"publication_year"`
	Description     string `json:"description"`
}

// BookUpdate carries a partial update: nil fields are left untouched.
type BookUpdate struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	ISBN            *string `json:"isbn"`
	Publisher       *string `json:"publisher"`
	PublicationYear *int    `json:"publication_year"`
	Description     *string `json:"description"`
}

// BookService adds ISBN uniqueness and derived lookups on top of the
// book repository.
type BookService struct {
	repo *repository.Repository[entities.Book]
}

func NewBookService(repo *repository.Repository[entities.Book]) *BookService {
	return &BookService{repo: repo}
}

// Get retrieves a book by ID, nil when absent.
func (s *BookService) Get(id uint) (*entities.Book, error) {
	return s.repo.Get(id)
}

// GetMulti returns a pagination window over all books.
func (s *BookService) GetMulti(skip, limit int) ([]entities.Book, error) {
	return s.repo.GetMulti(skip, limit)
}

// Create validates ISBN uniqueness and inserts the book.
func (s *BookService) Create(input BookCreate) (*entities.Book, error) {
	existing, err := s.repo.FirstBy("isbn", input.ISBN)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing ISBN: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: a book with ISBN %q already exists", ErrDuplicateKey, input.ISBN)
	}

	book := &entities.Book{
		Title:           input.Title,
		Author:          input.Author,
		ISBN:            input.ISBN,
		Publisher:       input.Publisher,
		PublicationYear: input.PublicationYear,
		Description:     input.Description,
	}
	if err := s.repo.Create(book); err != nil {
		// The unique index is the authoritative guard against a
		// concurrent create passing the pre-check above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: a book with ISBN %q already exists", ErrDuplicateKey, input.ISBN)
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return book, nil
}

// Update applies a partial update, re-validating ISBN uniqueness when
// the ISBN changes.
func (s *BookService) Update(existing *entities.Book, input BookUpdate) (*entities.Book, error) {
	changes := map[string]any{}
	if input.Title != nil {
		changes["title"] = *input.Title
	}
	if input.Author != nil {
		changes["author"] = *input.Author
	}
	if input.ISBN != nil {
		if *input.ISBN != existing.ISBN {
			other, err := s.repo.FirstBy("isbn", *input.ISBN)
			if err != nil {
				return nil, fmt.Errorf("failed to check existing ISBN: %w", err)
			}
			if other != nil {
				return nil, fmt.Errorf("%w: a book with ISBN %q already exists", ErrDuplicateKey, *input.ISBN)
			}
		}
		changes["isbn"] = *input.ISBN
	}
	if input.Publisher != nil {
		changes["publisher"] = *input.Publisher
	}
	if input.PublicationYear != nil {
		changes["publication_year"] = *input.PublicationYear
	}
	if input.Description != nil {
		changes["description"] = *input.Description
	}

	updated, err := s.repo.Update(existing, changes)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: a book with that ISBN already exists", ErrDuplicateKey)
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	return updated, nil
}

// Remove deletes a book, returning it as it existed before deletion.
// Returns nil when absent.
func (s *BookService) Remove(id uint) (*entities.Book, error) {
	return s.repo.Delete(id)
}

// GetByTitle returns all books with exactly this title.
func (s *BookService) GetByTitle(title string) ([]entities.Book, error) {
	return s.repo.FilterBy("title", title)
}

// GetByAuthor returns all books by exactly this author.
func (s *BookService) GetByAuthor(author string) ([]entities.Book, error) {
	return s.repo.FilterBy("author", author)
}

// GetByISBN returns at most one book. ISBN uniqueness guarantees this.
func (s *BookService) GetByISBN(isbn string) (*entities.Book, error) {
	return s.repo.FirstBy("isbn", isbn)
}
