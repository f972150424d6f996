package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/entities"
	"libraryapi/internal/services"
)

func (env *testEnv) createBook(t *testing.T, title, author, isbn string) *entities.Book {
	t.Helper()
	book, err := env.books.Create(services.BookCreate{Title: title, Author: author, ISBN: isbn})
	require.NoError(t, err)
	return book
}

func TestBooksAPI_RequiresAuthentication(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/books", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBooksAPI_List(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "reader@example.com", false, true)
	env.createBook(t, "Dune", "Frank Herbert", "isbn-1")
	env.createBook(t, "Dune Messiah", "Frank Herbert", "isbn-2")

	cookies := env.login(t, "reader@example.com", "password123")

	w := env.request(t, http.MethodGet, "/api/v1/books", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var books []entities.Book
	decodeBody(t, w, &books)
	require.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestBooksAPI_ListPagination(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "reader@example.com", false, true)
	for i := 1; i <= 3; i++ {
		env.createBook(t, fmt.Sprintf("Book %d", i), "Author", fmt.Sprintf("isbn-%d", i))
	}

	cookies := env.login(t, "reader@example.com", "password123")

	w := env.request(t, http.MethodGet, "/api/v1/books?skip=1&limit=1", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var books []entities.Book
	decodeBody(t, w, &books)
	require.Len(t, books, 1)
	assert.Equal(t, "Book 2", books[0].Title)
}

func TestBooksAPI_ListNegativePagination(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "reader@example.com", false, true)

	cookies := env.login(t, "reader@example.com", "password123")

	w := env.request(t, http.MethodGet, "/api/v1/books?skip=-1", nil, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/books?limit=-5", nil, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBooksAPI_CreateRequiresAdmin(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "reader@example.com", false, true)

	cookies := env.login(t, "reader@example.com", "password123")

	w := env.request(t, http.MethodPost, "/api/v1/books", gin.H{
		"title":  "Dune",
		"author": "Frank Herbert",
		"isbn":   "isbn-1",
	}, cookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBooksAPI_Create(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "admin@example.com", true, true)

	cookies := env.login(t, "admin@example.com", "password123")

	w := env.request(t, http.MethodPost, "/api/v1/books", gin.H{
		"title":            "Dune",
		"author":           "Frank Herbert",
		"isbn":             "9780441013593",
		"publisher":        "Ace",
		"publication_year": 1965,
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var book entities.Book
	decodeBody(t, w, &book)
	assert.NotZero(t, book.ID)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, 1965, book.PublicationYear)
}

func TestBooksAPI_CreateMissingFields(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "admin@example.com", true, true)

	cookies := env.login(t, "admin@example.com", "password123")

	w := env.request(t, http.MethodPost, "/api/v1/books", gin.H{"title": "No Author"}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBooksAPI_CreateDuplicateISBN(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "admin@example.com", true, true)
	env.createBook(t, "Dune", "Frank Herbert", "isbn-dup")

	cookies := env.login(t, "admin@example.com", "password123")

	w := env.request(t, http.MethodPost, "/api/v1/books", gin.H{
		"title":  "Another",
		"author": "Somebody",
		"isbn":   "isbn-dup",
	}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBooksAPI_GetByID(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "reader@example.com", false, true)
	created := env.createBook(t, "Dune", "Frank Herbert", "isbn-1")

	cookies := env.login(t, "reader@example.com", "password123")

	w := env.request(t, http.MethodGet, fmt.Sprintf("/api/v1/books/%d", created.ID), nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var book entities.Book
	decodeBody(t, w, &book)
	assert.Equal(t, created.ID, book.ID)

	w = env.request(t, http.MethodGet, "/api/v1/books/99999", nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBooksAPI_Update(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "admin@example.com", true, true)
	created := env.createBook(t, "Dune", "Frank Herbert", "isbn-1")

	cookies := env.login(t, "admin@example.com", "password123")

	w := env.request(t, http.MethodPut, fmt.Sprintf("/api/v1/books/%d", created.ID), gin.H{
		"title": "Dune (Revised)",
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var book entities.Book
	decodeBody(t, w, &book)
	assert.Equal(t, "Dune (Revised)", book.Title)
	assert.Equal(t, "Frank Herbert", book.Author) // untouched

	w = env.request(t, http.MethodPut, "/api/v1/books/99999", gin.H{"title": "x"}, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBooksAPI_Delete(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "admin@example.com", true, true)
	created := env.createBook(t, "Doomed", "Author", "isbn-del")

	cookies := env.login(t, "admin@example.com", "password123")

	w := env.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/books/%d", created.ID), nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	// The deleted entity comes back in the response
	var book entities.Book
	decodeBody(t, w, &book)
	assert.Equal(t, "Doomed", book.Title)

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/v1/books/%d", created.ID), nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/books/%d", created.ID), nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBooksAPI_Search(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "reader@example.com", false, true)
	env.createBook(t, "Dune", "Frank Herbert", "isbn-1")
	env.createBook(t, "Dune", "Brian Herbert", "isbn-2")

	cookies := env.login(t, "reader@example.com", "password123")

	w := env.request(t, http.MethodGet, "/api/v1/books/search/title/Dune", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var books []entities.Book
	decodeBody(t, w, &books)
	assert.Len(t, books, 2)

	w = env.request(t, http.MethodGet, "/api/v1/books/search/author/Frank%20Herbert", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &books)
	require.Len(t, books, 1)
	assert.Equal(t, "isbn-1", books[0].ISBN)

	// No match is an empty list, not an error
	w = env.request(t, http.MethodGet, "/api/v1/books/search/title/Nonexistent", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &books)
	assert.Empty(t, books)
}

func TestBooksAPI_SearchByISBN(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "reader@example.com", false, true)
	env.createBook(t, "Dune", "Frank Herbert", "isbn-1")

	cookies := env.login(t, "reader@example.com", "password123")

	w := env.request(t, http.MethodGet, "/api/v1/books/search/isbn/isbn-1", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var book entities.Book
	decodeBody(t, w, &book)
	assert.Equal(t, "Dune", book.Title)

	w = env.request(t, http.MethodGet, "/api/v1/books/search/isbn/no-such-isbn", nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
