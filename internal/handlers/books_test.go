package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookreview/internal/apperr"
	"bookreview/internal/models"
	"bookreview/internal/repository"
	"bookreview/internal/service"
)

func sampleBook(id, title string) models.Book {
	return models.Book{
		ID:        id,
		Title:     title,
		Author:    "J.R.R. Tolkien",
		Genre:     "Fantasy",
		CreatedBy: models.UserRef{ID: "u-1", Name: "Alice"},
	}
}

func TestListBooks_EnvelopeAndQueryParsing(t *testing.T) {
	books := &mockBooks{
		list:       []models.Book{sampleBook("b-1", "The Hobbit"), sampleBook("b-2", "The Silmarillion")},
		pagination: models.Pagination{Total: 25, Page: 2, Pages: 3, Limit: 10},
	}
	r := newTestRouter(&service.Service{Books: books})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/books?genre=Fantasy&sort=-createdAt,title&page=2&limit=10", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	p := books.lastListParams
	if p.Page != 2 || p.Limit != 10 {
		t.Fatalf("page/limit not forwarded: %+v", p)
	}
	if len(p.Filters) != 1 || p.Filters["genre"] != "Fantasy" {
		t.Fatalf("reserved keys must not become filters: %v", p.Filters)
	}
	wantSort := []repository.SortField{{Field: "createdAt", Desc: true}, {Field: "title"}}
	if len(p.Sort) != 2 || p.Sort[0] != wantSort[0] || p.Sort[1] != wantSort[1] {
		t.Fatalf("sort parsing: got %+v, want %+v", p.Sort, wantSort)
	}

	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["success"] != true || m["count"] != float64(2) {
		t.Fatalf("unexpected envelope: %v", m)
	}
	pg, _ := m["pagination"].(map[string]any)
	if pg["total"] != float64(25) || pg["pages"] != float64(3) {
		t.Fatalf("pagination not passed through: %v", m["pagination"])
	}
}

func TestListBooks_FieldSelection(t *testing.T) {
	books := &mockBooks{list: []models.Book{sampleBook("b-1", "The Hobbit")}}
	r := newTestRouter(&service.Service{Books: books})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/books?fields=title", nil)
	r.ServeHTTP(w, req)

	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	data, _ := m["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("expected one item, got %v", m["data"])
	}
	item, _ := data[0].(map[string]any)
	if item["title"] != "The Hobbit" || item["id"] != "b-1" {
		t.Fatalf("id and title must survive projection: %v", item)
	}
	if _, ok := item["author"]; ok {
		t.Fatalf("author should have been projected away: %v", item)
	}
}

func TestCreateBook(t *testing.T) {
	created := sampleBook("b-1", "The Hobbit")
	books := &mockBooks{book: &created}
	auth := &mockAuth{verifyUser: &models.User{ID: "u-1", Name: "Alice"}}
	r := newTestRouter(&service.Service{Authorization: auth, Books: books})

	body := bytes.NewBufferString(`{"title":"The Hobbit","author":"J.R.R. Tolkien","genre":"Fantasy"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/books", body)
	req.Header = authHeader("tok")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if books.lastOwner == nil || books.lastOwner.ID != "u-1" {
		t.Fatalf("authenticated user not passed as owner: %+v", books.lastOwner)
	}
	if books.lastAttrs.Title != "The Hobbit" {
		t.Fatalf("attrs not bound: %+v", books.lastAttrs)
	}
}

func TestGetBook_NotFound(t *testing.T) {
	books := &mockBooks{getErr: apperr.New(apperr.NotFound, "Book not found with id of b-404")}
	r := newTestRouter(&service.Service{Books: books})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/books/b-404", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["success"] != false || m["message"] != "Book not found with id of b-404" {
		t.Fatalf("unexpected error envelope: %v", m)
	}
}

func TestUpdateBook_Forbidden(t *testing.T) {
	books := &mockBooks{updateErr: apperr.New(apperr.Forbidden, "Not authorized to modify this resource")}
	auth := &mockAuth{verifyUser: &models.User{ID: "u-2"}}
	r := newTestRouter(&service.Service{Authorization: auth, Books: books})

	body := bytes.NewBufferString(`{"title":"Hijacked","author":"X","genre":"Other"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/books/b-1", body)
	req.Header = authHeader("tok")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d (body=%s)", w.Code, w.Body.String())
	}
	if books.lastRequesterID != "u-2" {
		t.Fatalf("requester id not forwarded: %q", books.lastRequesterID)
	}
}

func TestDeleteBook(t *testing.T) {
	books := &mockBooks{}
	auth := &mockAuth{verifyUser: &models.User{ID: "u-1"}}
	r := newTestRouter(&service.Service{Authorization: auth, Books: books})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/books/b-1", nil)
	req.Header = authHeader("tok")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if books.deleteCalls != 1 || books.lastID != "b-1" {
		t.Fatalf("delete not forwarded: calls=%d id=%q", books.deleteCalls, books.lastID)
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	data, _ := m["data"].(map[string]any)
	if m["success"] != true || len(data) != 0 {
		t.Fatalf("expected empty data object, got %v", m)
	}
}

func TestSearchBooks(t *testing.T) {
	books := &mockBooks{
		list:       []models.Book{sampleBook("b-1", "The Hobbit")},
		pagination: models.Pagination{Total: 1, Page: 1, Pages: 1, Limit: 10},
	}
	r := newTestRouter(&service.Service{Books: books})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/books/search?query=hobbit", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if books.lastSearchText != "hobbit" {
		t.Fatalf("query not forwarded: %q", books.lastSearchText)
	}
}

func TestSearchBooks_MissingQuery(t *testing.T) {
	books := &mockBooks{searchErr: apperr.New(apperr.ValidationFailed, "Please provide a search query")}
	r := newTestRouter(&service.Service{Books: books})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/books/search", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
