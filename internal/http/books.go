package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libraryapi/internal/services"
)

type BooksController struct {
	books *services.BookService
}

func NewBooksController(books *services.BookService) *BooksController {
	return &BooksController{books: books}
}

// List returns a pagination window over all books.
func (controller *BooksController) List(c *gin.Context) {
	skip, limit, ok := parsePagination(c)
	if !ok {
		return
	}

	books, err := controller.books.GetMulti(skip, limit)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, books)
}

// Create inserts a new book. Duplicate ISBNs are client errors.
func (controller *BooksController) Create(c *gin.Context) {
	var input services.BookCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	book, err := controller.books.Create(input)
	if err != nil {
		respondServiceError(c, err, "create book")
		return
	}
	c.JSON(http.StatusCreated, book)
}

// GetByID returns one book or 404.
func (controller *BooksController) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.books.Get(id)
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	if book == nil {
		respondNotFound(c, "book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// Update applies a partial update to an existing book.
func (controller *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.books.Get(id)
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	if book == nil {
		respondNotFound(c, "book")
		return
	}

	var input services.BookUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	updated, err := controller.books.Update(book, input)
	if err != nil {
		respondServiceError(c, err, "update book")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a book and returns it as it existed before deletion.
func (controller *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.books.Remove(id)
	if err != nil {
		respondInternalError(c, err, "delete book")
		return
	}
	if book == nil {
		respondNotFound(c, "book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// SearchByTitle returns all books with exactly this title, possibly none.
func (controller *BooksController) SearchByTitle(c *gin.Context) {
	books, err := controller.books.GetByTitle(c.Param("title"))
	if err != nil {
		respondInternalError(c, err, "search books by title")
		return
	}
	c.JSON(http.StatusOK, books)
}

// SearchByAuthor returns all books by exactly this author, possibly none.
func (controller *BooksController) SearchByAuthor(c *gin.Context) {
	books, err := controller.books.GetByAuthor(c.Param("author"))
	if err != nil {
		respondInternalError(c, err, "search books by author")
		return
	}
	c.JSON(http.StatusOK, books)
}

// SearchByISBN returns the single book with this ISBN or 404.
func (controller *BooksController) SearchByISBN(c *gin.Context) {
	book, err := controller.books.GetByISBN(c.Param("isbn"))
	if err != nil {
		respondInternalError(c, err, "search book by isbn")
		return
	}
	if book == nil {
		respondNotFound(c, "book")
		return
	}
	c.JSON(http.StatusOK, book)
}
