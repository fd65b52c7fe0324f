package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"bookreview/internal/models"
)

// ErrDuplicate is returned when a store-level uniqueness constraint rejects a
// write (email, ISBN, or (book,user) review pair).
var ErrDuplicate = errors.New("duplicate value for unique field")

// timeLayout is the SQLite TIMESTAMP format used for all inserts.
const timeLayout = "2006-01-02 15:04:05"

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

type Users interface {
	Create(ctx context.Context, u models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// BookQuery describes one page of a filtered, sorted book listing.
// Filter keys are client field names; unknown keys match nothing.
type BookQuery struct {
	Filters map[string]string
	Sort    []SortField
	Limit   int
	Offset  int
}

// SortField is one ORDER BY term. Field is a client field name; unknown
// fields are ignored.
type SortField struct {
	Field string
	Desc  bool
}

type Books interface {
	Insert(ctx context.Context, b models.Book) error
	List(ctx context.Context, q BookQuery) ([]models.Book, int, error)
	Search(ctx context.Context, text string, limit, offset int) ([]models.Book, int, error)
	GetByID(ctx context.Context, id string) (*models.Book, error)
	Update(ctx context.Context, id string, attrs models.BookAttrs) error
	Delete(ctx context.Context, id string) error
}

type Reviews interface {
	Insert(ctx context.Context, r models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	Update(ctx context.Context, id string, attrs models.ReviewAttrs) error
	Delete(ctx context.Context, id string) error
	ListByBook(ctx context.Context, bookID string, limit, offset int) ([]models.Review, int, error)
	ListAll(ctx context.Context) ([]models.Review, error)
	AverageRating(ctx context.Context, bookID string) (float64, error)
	ExistsForBookUser(ctx context.Context, bookID, userID string) (bool, error)
	DeleteByBook(ctx context.Context, bookID string) error
}

type Repository struct {
	Users   Users
	Books   Books
	Reviews Reviews
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:   NewUserRepository(db),
		Books:   NewBookRepository(db),
		Reviews: NewReviewRepository(db),
	}
}
