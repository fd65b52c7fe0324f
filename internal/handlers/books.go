package handlers

import (
	"net/http"

	"bookreview/internal/models"
	"bookreview/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      List books
// @Description  Field-equality filters from any non-reserved query key; sort is a comma list with '-' for descending; fields restricts returned attributes.
// @Tags         books
// @Produce      json
// @Param        page    query  int     false  "Page (default 1)"
// @Param        limit   query  int     false  "Page size (default 10)"
// @Param        sort    query  string  false  "e.g. -createdAt,title"
// @Param        fields  query  string  false  "e.g. title,author"
// @Success      200  {object}  map[string]interface{}  "pagination, count, data"
// @Router       /api/books [get]
func (h *Handler) listBooks(c *gin.Context) {
	page, limit := pageQuery(c)
	books, pagination, err := h.services.Books.List(c.Request.Context(), service.ListParams{
		Filters: filterQuery(c),
		Sort:    sortQuery(c),
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"pagination": pagination,
		"count":      len(books),
		"data":       projectList(books, fieldsQuery(c)),
	})
}

// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        body  body      models.BookAttrs  true  "Book payload"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/books [post]
// @Security     BearerAuth
func (h *Handler) createBook(c *gin.Context) {
	var attrs models.BookAttrs
	if err := bindJSON(c, &attrs); err != nil {
		h.respondError(c, err)
		return
	}

	book, err := h.services.Books.Create(c.Request.Context(), attrs, currentUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, book)
}

// @Summary      Get a book with its reviews and average rating
// @Tags         books
// @Produce      json
// @Param        id     path   string  true   "Book id"
// @Param        page   query  int     false  "Review page (default 1)"
// @Param        limit  query  int     false  "Review page size (default 5)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/books/{id} [get]
func (h *Handler) getBook(c *gin.Context) {
	page, limit := pageQuery(c)
	detail, err := h.services.Books.Get(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, detail)
}

// @Summary      Update a book
// @Description  Only the creating user may update; attributes are re-validated as at creation.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Book id"
// @Param        body  body      models.BookAttrs  true  "Book payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/books/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateBook(c *gin.Context) {
	var attrs models.BookAttrs
	if err := bindJSON(c, &attrs); err != nil {
		h.respondError(c, err)
		return
	}

	book, err := h.services.Books.Update(c.Request.Context(), c.Param("id"), attrs, currentUser(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, book)
}

// @Summary      Delete a book and all its reviews
// @Tags         books
// @Produce      json
// @Param        id  path  string  true  "Book id"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/books/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteBook(c *gin.Context) {
	if err := h.services.Books.Delete(c.Request.Context(), c.Param("id"), currentUser(c).ID); err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{})
}

// @Summary      Search books by title or author
// @Description  Case-insensitive partial match.
// @Tags         books
// @Produce      json
// @Param        query  query  string  true   "Search text"
// @Param        page   query  int     false  "Page (default 1)"
// @Param        limit  query  int     false  "Page size (default 10)"
// @Success      200  {object}  map[string]interface{}  "pagination, count, data"
// @Failure      400  {object}  map[string]string
// @Router       /api/books/search [get]
func (h *Handler) searchBooks(c *gin.Context) {
	page, limit := pageQuery(c)
	books, pagination, err := h.services.Books.Search(c.Request.Context(), c.Query("query"), page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"pagination": pagination,
		"count":      len(books),
		"data":       books,
	})
}
