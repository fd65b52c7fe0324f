package handlers

import (
	"net/http"

	"bookreview/internal/models"

	"github.com/gin-gonic/gin"
)

// @Summary      Add a review to a book
// @Description  One review per user per book; rating must be 1..5.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Book id"
// @Param        body  body      models.ReviewAttrs  true  "Review payload"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/books/{id}/reviews [post]
// @Security     BearerAuth
func (h *Handler) addReview(c *gin.Context) {
	var attrs models.ReviewAttrs
	if err := bindJSON(c, &attrs); err != nil {
		h.respondError(c, err)
		return
	}

	review, err := h.services.Reviews.Add(c.Request.Context(), c.Param("id"), attrs, currentUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, review)
}

// @Summary      List a book's reviews
// @Tags         reviews
// @Produce      json
// @Param        id     path   string  true   "Book id"
// @Param        page   query  int     false  "Page (default 1)"
// @Param        limit  query  int     false  "Page size (default 10)"
// @Success      200  {object}  map[string]interface{}  "pagination, count, data"
// @Failure      404  {object}  map[string]string
// @Router       /api/books/{id}/reviews [get]
func (h *Handler) listBookReviews(c *gin.Context) {
	page, limit := pageQuery(c)
	reviews, pagination, err := h.services.Reviews.ListForBook(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"pagination": pagination,
		"count":      len(reviews),
		"data":       reviews,
	})
}

// @Summary      List every review
// @Description  Unpaginated admin-style listing with author names and book titles.
// @Tags         reviews
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, data"
// @Failure      401  {object}  map[string]string
// @Router       /api/reviews [get]
// @Security     BearerAuth
func (h *Handler) listAllReviews(c *gin.Context) {
	reviews, err := h.services.Reviews.ListAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(reviews),
		"data":    reviews,
	})
}

// @Summary      Update a review
// @Description  Only the authoring user may update; attributes are re-validated.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Review id"
// @Param        body  body      models.ReviewAttrs  true  "Review payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/reviews/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateReview(c *gin.Context) {
	var attrs models.ReviewAttrs
	if err := bindJSON(c, &attrs); err != nil {
		h.respondError(c, err)
		return
	}

	review, err := h.services.Reviews.Update(c.Request.Context(), c.Param("id"), attrs, currentUser(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, review)
}

// @Summary      Delete a review
// @Tags         reviews
// @Produce      json
// @Param        id  path  string  true  "Review id"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/reviews/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteReview(c *gin.Context) {
	if err := h.services.Reviews.Delete(c.Request.Context(), c.Param("id"), currentUser(c).ID); err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{})
}
