package service

import (
	"fmt"
	"strings"
	"time"

	"bookreview/internal/apperr"
	"bookreview/internal/models"
	"bookreview/internal/validation"
)

// Attribute bounds, matching the catalogue's document schema.
const (
	maxNameLen        = 50
	minPasswordLen    = 6
	maxTitleLen       = 200
	maxAuthorLen      = 100
	maxDescriptionLen = 2000
	maxReviewTitleLen = 100
	maxCommentLen     = 1000
)

// firstViolation converts the first failed rule into a ValidationFailed error,
// or returns nil when everything passed.
func firstViolation(v validation.Violations) error {
	if v.OK() {
		return nil
	}
	return apperr.New(apperr.ValidationFailed, v.First())
}

func validateSignup(name, email, password string) error {
	var v validation.Violations
	v.Check(name != "", "Name is required")
	v.Check(len(name) <= maxNameLen, fmt.Sprintf("Name cannot exceed %d characters", maxNameLen))
	v.Check(email != "", "Email is required")
	v.Check(email == "" || validation.EmailRX.MatchString(email), "Please provide a valid email")
	v.Check(password != "", "Password is required")
	v.Check(password == "" || len(password) >= minPasswordLen,
		fmt.Sprintf("Password must be at least %d characters long", minPasswordLen))
	return firstViolation(v)
}

func validateLogin(email, password string) error {
	var v validation.Violations
	v.Check(email != "", "Email is required")
	v.Check(email == "" || validation.EmailRX.MatchString(email), "Please provide a valid email")
	v.Check(password != "", "Password is required")
	return firstViolation(v)
}

// normalizeBookAttrs trims the free-text fields in place.
func normalizeBookAttrs(attrs *models.BookAttrs) {
	attrs.Title = strings.TrimSpace(attrs.Title)
	attrs.Author = strings.TrimSpace(attrs.Author)
	attrs.Genre = strings.TrimSpace(attrs.Genre)
	attrs.Description = strings.TrimSpace(attrs.Description)
	attrs.ISBN = strings.TrimSpace(attrs.ISBN)
}

// validateBookAttrs applies the same rules at creation and update.
func validateBookAttrs(attrs models.BookAttrs) error {
	var v validation.Violations
	v.Check(attrs.Title != "", "Title is required")
	v.Check(len(attrs.Title) <= maxTitleLen, fmt.Sprintf("Title cannot exceed %d characters", maxTitleLen))
	v.Check(attrs.Author != "", "Author is required")
	v.Check(len(attrs.Author) <= maxAuthorLen, fmt.Sprintf("Author name cannot exceed %d characters", maxAuthorLen))
	v.Check(attrs.Genre != "", "Genre is required")
	v.Check(attrs.Genre == "" || validation.In(attrs.Genre, models.Genres...), "Please select a valid genre")
	v.Check(attrs.Description != "", "Description is required")
	v.Check(len(attrs.Description) <= maxDescriptionLen,
		fmt.Sprintf("Description cannot exceed %d characters", maxDescriptionLen))
	if attrs.PublishedYear != nil {
		year := *attrs.PublishedYear
		maxYear := time.Now().Year()
		v.Check(year >= 0 && year <= maxYear,
			fmt.Sprintf("Published year must be between 0 and %d", maxYear))
	}
	v.Check(attrs.ISBN == "" || validation.ISBNRX.MatchString(attrs.ISBN), "Please provide a valid ISBN")
	return firstViolation(v)
}

func normalizeReviewAttrs(attrs *models.ReviewAttrs) {
	attrs.Title = strings.TrimSpace(attrs.Title)
	attrs.Comment = strings.TrimSpace(attrs.Comment)
}

// validateReviewAttrs applies the same rules at creation and update. The
// rating bound is checked here, before anything reaches the store.
func validateReviewAttrs(attrs models.ReviewAttrs) error {
	var v validation.Violations
	v.Check(attrs.Rating >= 1 && attrs.Rating <= 5, "Rating must be between 1 and 5")
	v.Check(len(attrs.Title) <= maxReviewTitleLen,
		fmt.Sprintf("Title cannot exceed %d characters", maxReviewTitleLen))
	v.Check(attrs.Comment != "", "Comment is required")
	v.Check(len(attrs.Comment) <= maxCommentLen, fmt.Sprintf("Comment cannot exceed %d characters", maxCommentLen))
	return firstViolation(v)
}
