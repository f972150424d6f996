// Command generate_demo creates a demo database with sample data from public domain books.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"

	"libraryapi/internal/database"
	"libraryapi/internal/entities"
	"libraryapi/internal/repository"
	"libraryapi/internal/services"

	"golang.org/x/crypto/bcrypt"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	books := services.NewBookService(repository.New[entities.Book](db.DB))
	users := services.NewUserService(repository.New[entities.User](db.DB), bcrypt.DefaultCost)

	createDemoUsers(users)

	for _, book := range getPublicDomainBooks() {
		created, err := books.Create(book)
		if err != nil {
			log.Printf("Failed to save book %s: %v", book.Title, err)
			continue
		}
		log.Printf("Saved: %s by %s", created.Title, created.Author)
	}

	log.Println("Demo database generated successfully!")
}

func createDemoUsers(users *services.UserService) {
	boolTrue := true

	demoUsers := []services.UserCreate{
		{
			Email:    "admin@example.com",
			Password: "demo-admin-password",
			FullName: "Demo Administrator",
			IsAdmin:  &boolTrue,
		},
		{
			Email:    "reader@example.com",
			Password: "demo-reader-password",
			FullName: "Demo Reader",
		},
	}

	for _, cfg := range demoUsers {
		user, err := users.Create(cfg)
		if err != nil {
			log.Printf("Failed to create user %s: %v", cfg.Email, err)
			continue
		}
		log.Printf("Created user: %s (admin=%v)", user.Email, user.IsAdmin)
	}
}

func getPublicDomainBooks() []services.BookCreate {
	return []services.BookCreate{
		{
			Title:           "Meditations",
			Author:          "Marcus Aurelius",
			ISBN:            "9780140449334",
			Publisher:       "Penguin Classics",
			PublicationYear: 180,
			Description:     "Personal writings of the Roman Emperor on Stoic philosophy.",
		},
		{
			Title:           "Pride and Prejudice",
			Author:          "Jane Austen",
			ISBN:            "9780141439518",
			Publisher:       "Penguin Classics",
			PublicationYear: 1813,
			Description:     "A novel of manners following Elizabeth Bennet.",
		},
		{
			Title:           "Moby-Dick",
			Author:          "Herman Melville",
			ISBN:            "9780142437247",
			Publisher:       "Penguin Classics",
			PublicationYear: 1851,
			Description:     "Captain Ahab's obsessive pursuit of the white whale.",
		},
		{
			Title:           "The Adventures of Sherlock Holmes",
			Author:          "Arthur Conan Doyle",
			ISBN:            "9780199536955",
			Publisher:       "Oxford University Press",
			PublicationYear: 1892,
			Description:     "Twelve short stories featuring the consulting detective.",
		},
		{
			Title:           "Frankenstein",
			Author:          "Mary Shelley",
			ISBN:            "9780141439471",
			Publisher:       "Penguin Classics",
			PublicationYear: 1818,
			Description:     "Victor Frankenstein and the creature he brings to life.",
		},
		{
			Title:           "The Time Machine",
			Author:          "H. G. Wells",
			ISBN:            "9780141439976",
			Publisher:       "Penguin Classics",
			PublicationYear: 1895,
			Description:     "A scientist travels to the far future of humanity.",
		},
	}
}
