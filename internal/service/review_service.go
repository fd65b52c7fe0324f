package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookreview/internal/apperr"
	"bookreview/internal/models"
	"bookreview/internal/repository"

	"github.com/google/uuid"
)

const msgAlreadyReviewed = "You have already reviewed this book"

func errReviewNotFound(id string) error {
	return apperr.New(apperr.NotFound, fmt.Sprintf("No review found with id %s", id))
}

// ReviewService manages reviews. It checks the parent book through the book
// repository before touching review rows.
type ReviewService struct {
	reviews repository.Reviews
	books   repository.Books
}

func NewReviewService(reviews repository.Reviews, books repository.Books) *ReviewService {
	return &ReviewService{reviews: reviews, books: books}
}

var _ Reviews = (*ReviewService)(nil)

// Add persists author's review of the book. The existence pre-check gives a
// friendly conflict early, but the store's (book, user) unique constraint is
// what actually prevents a concurrent double submit.
func (s *ReviewService) Add(ctx context.Context, bookID string, attrs models.ReviewAttrs, author *models.User) (*models.Review, error) {
	normalizeReviewAttrs(&attrs)
	if err := validateReviewAttrs(attrs); err != nil {
		return nil, err
	}

	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, apperr.New(apperr.NotFound, fmt.Sprintf("No book found with id %s", bookID))
	}

	exists, err := s.reviews.ExistsForBookUser(ctx, bookID, author.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.Conflict, msgAlreadyReviewed)
	}

	review := models.Review{
		ID:        uuid.NewString(),
		Title:     attrs.Title,
		Rating:    attrs.Rating,
		Comment:   attrs.Comment,
		BookID:    bookID,
		UserID:    author.ID,
		User:      models.UserRef{ID: author.ID, Name: author.Name},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.reviews.Insert(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.Conflict, msgAlreadyReviewed)
		}
		return nil, err
	}
	return &review, nil
}

// Update re-validates attrs and rewrites the review. Only the author may
// update.
func (s *ReviewService) Update(ctx context.Context, id string, attrs models.ReviewAttrs, requesterID string) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, errReviewNotFound(id)
	}
	if err := requireOwner(review.UserID, requesterID); err != nil {
		return nil, err
	}

	normalizeReviewAttrs(&attrs)
	if err := validateReviewAttrs(attrs); err != nil {
		return nil, err
	}
	if err := s.reviews.Update(ctx, id, attrs); err != nil {
		return nil, err
	}
	return s.reviews.GetByID(ctx, id)
}

// Delete removes the review. Only the author may delete.
func (s *ReviewService) Delete(ctx context.Context, id, requesterID string) error {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if review == nil {
		return errReviewNotFound(id)
	}
	if err := requireOwner(review.UserID, requesterID); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, id)
}

// ListForBook returns one newest-first page of a book's reviews.
func (s *ReviewService) ListForBook(ctx context.Context, bookID string, page, limit int) ([]models.Review, models.Pagination, error) {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	if book == nil {
		return nil, models.Pagination{}, apperr.New(apperr.NotFound, fmt.Sprintf("No book found with id %s", bookID))
	}

	page, limit = clampPage(page, limit, DefaultReviewLimit)
	reviews, total, err := s.reviews.ListByBook(ctx, bookID, limit, (page-1)*limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return reviews, models.NewPagination(total, page, limit), nil
}

// ListAll returns every review with author name and book title, newest first.
// Deliberately unpaginated; callers own the scale tradeoff.
func (s *ReviewService) ListAll(ctx context.Context) ([]models.Review, error) {
	return s.reviews.ListAll(ctx)
}
