package service

import (
	"context"
	"time"

	"bookreview/internal/apperr"
	"bookreview/internal/models"
	"bookreview/internal/repository"
)

// Authorization covers signup, login, and per-request token resolution.
type Authorization interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	VerifyToken(ctx context.Context, token string) (*models.User, error)
}

// ListParams carries the parsed listing controls for the book catalogue.
type ListParams struct {
	Filters map[string]string
	Sort    []repository.SortField
	Page    int
	Limit   int
}

// Books covers catalogue management and querying.
type Books interface {
	Create(ctx context.Context, attrs models.BookAttrs, owner *models.User) (*models.Book, error)
	List(ctx context.Context, p ListParams) ([]models.Book, models.Pagination, error)
	Search(ctx context.Context, text string, page, limit int) ([]models.Book, models.Pagination, error)
	Get(ctx context.Context, id string, reviewPage, reviewLimit int) (*models.BookDetail, error)
	Update(ctx context.Context, id string, attrs models.BookAttrs, requesterID string) (*models.Book, error)
	Delete(ctx context.Context, id, requesterID string) error
}

// Reviews covers per-book reviews and the admin-style full listing.
type Reviews interface {
	Add(ctx context.Context, bookID string, attrs models.ReviewAttrs, author *models.User) (*models.Review, error)
	Update(ctx context.Context, id string, attrs models.ReviewAttrs, requesterID string) (*models.Review, error)
	Delete(ctx context.Context, id, requesterID string) error
	ListForBook(ctx context.Context, bookID string, page, limit int) ([]models.Review, models.Pagination, error)
	ListAll(ctx context.Context) ([]models.Review, error)
}

// Config holds the tunables the service layer needs from the outside.
type Config struct {
	TokenSecret string
	TokenTTL    time.Duration
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Books
	Reviews
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg Config) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, cfg.TokenSecret, cfg.TokenTTL),
		Books:         NewBookService(repos.Books, repos.Reviews),
		Reviews:       NewReviewService(repos.Reviews, repos.Books),
	}
}

// requireOwner is the single ownership gate shared by books and reviews:
// the authenticated requester must equal the resource's owner field.
func requireOwner(ownerID, requesterID string) error {
	if ownerID != requesterID {
		return apperr.New(apperr.Forbidden, "Not authorized to modify this resource")
	}
	return nil
}
