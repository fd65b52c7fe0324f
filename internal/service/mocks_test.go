package service

import (
	"context"

	"bookreview/internal/models"
	"bookreview/internal/repository"
)

// Lightweight in-test mocks for the repository interfaces. Unset funcs panic,
// which doubles as a "repo must not be reached" assertion.

type mockUsersRepo struct {
	CreateFn     func(u models.User) error
	GetByEmailFn func(email string) (*models.User, error)
	GetByIDFn    func(id string) (*models.User, error)

	createCalls []models.User
}

func (m *mockUsersRepo) Create(_ context.Context, u models.User) error {
	m.createCalls = append(m.createCalls, u)
	return m.CreateFn(u)
}

func (m *mockUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return m.GetByEmailFn(email)
}

func (m *mockUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	return m.GetByIDFn(id)
}

type mockBooksRepo struct {
	InsertFn  func(b models.Book) error
	ListFn    func(q repository.BookQuery) ([]models.Book, int, error)
	SearchFn  func(text string, limit, offset int) ([]models.Book, int, error)
	GetByIDFn func(id string) (*models.Book, error)
	UpdateFn  func(id string, attrs models.BookAttrs) error
	DeleteFn  func(id string) error

	insertCalls []models.Book
	deleteCalls []string
}

func (m *mockBooksRepo) Insert(_ context.Context, b models.Book) error {
	m.insertCalls = append(m.insertCalls, b)
	return m.InsertFn(b)
}

func (m *mockBooksRepo) List(_ context.Context, q repository.BookQuery) ([]models.Book, int, error) {
	return m.ListFn(q)
}

func (m *mockBooksRepo) Search(_ context.Context, text string, limit, offset int) ([]models.Book, int, error) {
	return m.SearchFn(text, limit, offset)
}

func (m *mockBooksRepo) GetByID(_ context.Context, id string) (*models.Book, error) {
	return m.GetByIDFn(id)
}

func (m *mockBooksRepo) Update(_ context.Context, id string, attrs models.BookAttrs) error {
	return m.UpdateFn(id, attrs)
}

func (m *mockBooksRepo) Delete(_ context.Context, id string) error {
	m.deleteCalls = append(m.deleteCalls, id)
	return m.DeleteFn(id)
}

type mockReviewsRepo struct {
	InsertFn            func(r models.Review) error
	GetByIDFn           func(id string) (*models.Review, error)
	UpdateFn            func(id string, attrs models.ReviewAttrs) error
	DeleteFn            func(id string) error
	ListByBookFn        func(bookID string, limit, offset int) ([]models.Review, int, error)
	ListAllFn           func() ([]models.Review, error)
	AverageRatingFn     func(bookID string) (float64, error)
	ExistsForBookUserFn func(bookID, userID string) (bool, error)
	DeleteByBookFn      func(bookID string) error

	insertCalls       []models.Review
	deleteByBookCalls []string
}

func (m *mockReviewsRepo) Insert(_ context.Context, r models.Review) error {
	m.insertCalls = append(m.insertCalls, r)
	return m.InsertFn(r)
}

func (m *mockReviewsRepo) GetByID(_ context.Context, id string) (*models.Review, error) {
	return m.GetByIDFn(id)
}

func (m *mockReviewsRepo) Update(_ context.Context, id string, attrs models.ReviewAttrs) error {
	return m.UpdateFn(id, attrs)
}

func (m *mockReviewsRepo) Delete(_ context.Context, id string) error {
	return m.DeleteFn(id)
}

func (m *mockReviewsRepo) ListByBook(_ context.Context, bookID string, limit, offset int) ([]models.Review, int, error) {
	return m.ListByBookFn(bookID, limit, offset)
}

func (m *mockReviewsRepo) ListAll(_ context.Context) ([]models.Review, error) {
	return m.ListAllFn()
}

func (m *mockReviewsRepo) AverageRating(_ context.Context, bookID string) (float64, error) {
	return m.AverageRatingFn(bookID)
}

func (m *mockReviewsRepo) ExistsForBookUser(_ context.Context, bookID, userID string) (bool, error) {
	return m.ExistsForBookUserFn(bookID, userID)
}

func (m *mockReviewsRepo) DeleteByBook(_ context.Context, bookID string) error {
	m.deleteByBookCalls = append(m.deleteByBookCalls, bookID)
	return m.DeleteByBookFn(bookID)
}

var (
	_ repository.Users   = (*mockUsersRepo)(nil)
	_ repository.Books   = (*mockBooksRepo)(nil)
	_ repository.Reviews = (*mockReviewsRepo)(nil)
)
