package handlers

import (
	"context"
	"net/http"

	"bookreview/internal/models"
	"bookreview/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser  *models.User
	registerToken string
	registerErr   error
	loginUser     *models.User
	loginToken    string
	loginErr      error
	verifyUser    *models.User
	verifyErr     error

	lastRegisterName  string
	lastRegisterEmail string
	lastLoginEmail    string
	lastVerifyToken   string
}

func (m *mockAuth) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	m.lastRegisterName = name
	m.lastRegisterEmail = email
	return m.registerUser, m.registerToken, m.registerErr
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	m.lastLoginEmail = email
	return m.loginUser, m.loginToken, m.loginErr
}

func (m *mockAuth) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	m.lastVerifyToken = token
	return m.verifyUser, m.verifyErr
}

type mockBooks struct {
	book       *models.Book
	detail     *models.BookDetail
	list       []models.Book
	pagination models.Pagination
	createErr  error
	listErr    error
	searchErr  error
	getErr     error
	updateErr  error
	deleteErr  error

	lastListParams  service.ListParams
	lastSearchText  string
	lastID          string
	lastAttrs       models.BookAttrs
	lastRequesterID string
	lastOwner       *models.User
	deleteCalls     int
}

func (m *mockBooks) Create(ctx context.Context, attrs models.BookAttrs, owner *models.User) (*models.Book, error) {
	m.lastAttrs = attrs
	m.lastOwner = owner
	return m.book, m.createErr
}

func (m *mockBooks) List(ctx context.Context, p service.ListParams) ([]models.Book, models.Pagination, error) {
	m.lastListParams = p
	return m.list, m.pagination, m.listErr
}

func (m *mockBooks) Search(ctx context.Context, text string, page, limit int) ([]models.Book, models.Pagination, error) {
	m.lastSearchText = text
	return m.list, m.pagination, m.searchErr
}

func (m *mockBooks) Get(ctx context.Context, id string, reviewPage, reviewLimit int) (*models.BookDetail, error) {
	m.lastID = id
	return m.detail, m.getErr
}

func (m *mockBooks) Update(ctx context.Context, id string, attrs models.BookAttrs, requesterID string) (*models.Book, error) {
	m.lastID = id
	m.lastAttrs = attrs
	m.lastRequesterID = requesterID
	return m.book, m.updateErr
}

func (m *mockBooks) Delete(ctx context.Context, id, requesterID string) error {
	m.lastID = id
	m.lastRequesterID = requesterID
	m.deleteCalls++
	return m.deleteErr
}

type mockReviews struct {
	review     *models.Review
	list       []models.Review
	pagination models.Pagination
	addErr     error
	updateErr  error
	deleteErr  error
	listErr    error
	listAllErr error

	lastBookID      string
	lastID          string
	lastAttrs       models.ReviewAttrs
	lastAuthor      *models.User
	lastRequesterID string
	deleteCalls     int
}

func (m *mockReviews) Add(ctx context.Context, bookID string, attrs models.ReviewAttrs, author *models.User) (*models.Review, error) {
	m.lastBookID = bookID
	m.lastAttrs = attrs
	m.lastAuthor = author
	return m.review, m.addErr
}

func (m *mockReviews) Update(ctx context.Context, id string, attrs models.ReviewAttrs, requesterID string) (*models.Review, error) {
	m.lastID = id
	m.lastAttrs = attrs
	m.lastRequesterID = requesterID
	return m.review, m.updateErr
}

func (m *mockReviews) Delete(ctx context.Context, id, requesterID string) error {
	m.lastID = id
	m.lastRequesterID = requesterID
	m.deleteCalls++
	return m.deleteErr
}

func (m *mockReviews) ListForBook(ctx context.Context, bookID string, page, limit int) ([]models.Review, models.Pagination, error) {
	m.lastBookID = bookID
	return m.list, m.pagination, m.listErr
}

func (m *mockReviews) ListAll(ctx context.Context) ([]models.Review, error) {
	return m.list, m.listAllErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
