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

// Default page sizes for catalogue listings and the reviews block embedded in
// a book detail response.
const (
	DefaultBookLimit      = 10
	DefaultDetailRevLimit = 5
	DefaultReviewLimit    = 10
)

const msgISBNInUse = "ISBN already in use"

func errBookNotFound(id string) error {
	return apperr.New(apperr.NotFound, fmt.Sprintf("Book not found with id of %s", id))
}

// BookService manages the catalogue. It needs the review repository for the
// delete cascade and the detail view's rating block.
type BookService struct {
	books   repository.Books
	reviews repository.Reviews
}

func NewBookService(books repository.Books, reviews repository.Reviews) *BookService {
	return &BookService{books: books, reviews: reviews}
}

var _ Books = (*BookService)(nil)

// Create validates attrs and persists a new book owned by owner.
func (s *BookService) Create(ctx context.Context, attrs models.BookAttrs, owner *models.User) (*models.Book, error) {
	normalizeBookAttrs(&attrs)
	if err := validateBookAttrs(attrs); err != nil {
		return nil, err
	}

	book := models.Book{
		ID:            uuid.NewString(),
		Title:         attrs.Title,
		Author:        attrs.Author,
		Genre:         attrs.Genre,
		Description:   attrs.Description,
		PublishedYear: attrs.PublishedYear,
		ISBN:          attrs.ISBN,
		CreatedAt:     time.Now().UTC(),
		CreatedBy:     models.UserRef{ID: owner.ID, Name: owner.Name},
	}
	if err := s.books.Insert(ctx, book); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.Conflict, msgISBNInUse)
		}
		return nil, err
	}
	return &book, nil
}

// clampPage normalizes page/limit, falling back to def for a missing or
// non-positive limit.
func clampPage(page, limit, def int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = def
	}
	return page, limit
}

// List returns one page of the catalogue under the given filters and sort.
func (s *BookService) List(ctx context.Context, p ListParams) ([]models.Book, models.Pagination, error) {
	page, limit := clampPage(p.Page, p.Limit, DefaultBookLimit)

	books, total, err := s.books.List(ctx, repository.BookQuery{
		Filters: p.Filters,
		Sort:    p.Sort,
		Limit:   limit,
		Offset:  (page - 1) * limit,
	})
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return books, models.NewPagination(total, page, limit), nil
}

// Search matches text against title or author, case-insensitive and partial.
func (s *BookService) Search(ctx context.Context, text string, page, limit int) ([]models.Book, models.Pagination, error) {
	if text == "" {
		return nil, models.Pagination{}, apperr.New(apperr.ValidationFailed, "Please provide a search query")
	}
	page, limit = clampPage(page, limit, DefaultBookLimit)

	books, total, err := s.books.Search(ctx, text, limit, (page-1)*limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return books, models.NewPagination(total, page, limit), nil
}

// Get returns the detail view: the book, its average rating, and one page of
// its reviews.
func (s *BookService) Get(ctx context.Context, id string, reviewPage, reviewLimit int) (*models.BookDetail, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, errBookNotFound(id)
	}

	page, limit := clampPage(reviewPage, reviewLimit, DefaultDetailRevLimit)
	reviews, total, err := s.reviews.ListByBook(ctx, id, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	avg, err := s.reviews.AverageRating(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.BookDetail{
		Book:             *book,
		AverageRating:    avg,
		Reviews:          reviews,
		ReviewPagination: models.NewPagination(total, page, limit),
	}, nil
}

// Update re-validates attrs and rewrites the book. Only the creator may
// update; the owner reference itself never changes.
func (s *BookService) Update(ctx context.Context, id string, attrs models.BookAttrs, requesterID string) (*models.Book, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, errBookNotFound(id)
	}
	if err := requireOwner(book.CreatedBy.ID, requesterID); err != nil {
		return nil, err
	}

	normalizeBookAttrs(&attrs)
	if err := validateBookAttrs(attrs); err != nil {
		return nil, err
	}
	if err := s.books.Update(ctx, id, attrs); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.Conflict, msgISBNInUse)
		}
		return nil, err
	}
	return s.books.GetByID(ctx, id)
}

// Delete removes the book and every review referencing it. The two steps are
// not atomic; if the reviews are gone but the book removal fails, the error
// is surfaced rather than swallowed.
func (s *BookService) Delete(ctx context.Context, id, requesterID string) error {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if book == nil {
		return errBookNotFound(id)
	}
	if err := requireOwner(book.CreatedBy.ID, requesterID); err != nil {
		return err
	}

	if err := s.reviews.DeleteByBook(ctx, id); err != nil {
		return fmt.Errorf("cascade reviews for book %q: %w", id, err)
	}
	if err := s.books.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove book %q after cascade: %w", id, err)
	}
	return nil
}
