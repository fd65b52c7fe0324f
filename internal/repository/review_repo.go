package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookreview/internal/models"
)

type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

var _ Reviews = (*ReviewRepository)(nil)

const (
	insertReviewSQL = `INSERT INTO reviews (id, title, rating, comment, book_id, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	updateReviewSQL = `UPDATE reviews SET title = ?, rating = ?, comment = ? WHERE id = ?`
	deleteReviewSQL = `DELETE FROM reviews WHERE id = ?`

	selectReviewColumns  = `r.id, r.title, r.rating, r.comment, r.book_id, r.user_id, r.created_at, u.name`
	selectReviewByIDSQL  = `SELECT ` + selectReviewColumns + ` FROM reviews r JOIN users u ON u.id = r.user_id WHERE r.id = ?`
	selectBookReviewsSQL = `SELECT ` + selectReviewColumns + ` FROM reviews r JOIN users u ON u.id = r.user_id
		WHERE r.book_id = ? ORDER BY r.created_at DESC LIMIT ? OFFSET ?`
	countBookReviewsSQL = `SELECT COUNT(*) FROM reviews WHERE book_id = ?`
	selectAllReviewsSQL = `SELECT r.id, r.title, r.rating, r.comment, r.book_id, r.user_id, r.created_at, u.name, b.title
		FROM reviews r JOIN users u ON u.id = r.user_id JOIN books b ON b.id = r.book_id
		ORDER BY r.created_at DESC`
	avgRatingSQL         = `SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE book_id = ? GROUP BY book_id`
	existsReviewSQL      = `SELECT EXISTS (SELECT 1 FROM reviews WHERE book_id = ? AND user_id = ?)`
	deleteBookReviewsSQL = `DELETE FROM reviews WHERE book_id = ?`
)

// nullTitle maps an absent review title to NULL.
func nullTitle(title string) any {
	if title == "" {
		return nil
	}
	return title
}

// Insert persists a new review. Returns ErrDuplicate when the (book, user)
// pair already has one; the UNIQUE constraint decides, so two concurrent
// inserts cannot both land.
func (r *ReviewRepository) Insert(ctx context.Context, rv models.Review) error {
	_, err := r.db.ExecContext(ctx, insertReviewSQL,
		rv.ID, nullTitle(rv.Title), rv.Rating, rv.Comment,
		rv.BookID, rv.UserID, rv.CreatedAt.UTC().Format(timeLayout))
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert review for book %q: %w", rv.BookID, err)
	}
	return nil
}

// GetByID fetches a review with its author's name. Returns (nil, nil) if absent.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx, selectReviewByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select review %q: %w", id, err)
	}
	return rv, nil
}

// Update rewrites the client-editable fields, leaving the book and author
// references untouched.
func (r *ReviewRepository) Update(ctx context.Context, id string, attrs models.ReviewAttrs) error {
	_, err := r.db.ExecContext(ctx, updateReviewSQL, nullTitle(attrs.Title), attrs.Rating, attrs.Comment, id)
	if err != nil {
		return fmt.Errorf("update review %q: %w", id, err)
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, deleteReviewSQL, id); err != nil {
		return fmt.Errorf("delete review %q: %w", id, err)
	}
	return nil
}

// ListByBook returns one newest-first page of a book's reviews plus the total.
func (r *ReviewRepository) ListByBook(ctx context.Context, bookID string, limit, offset int) ([]models.Review, int, error) {
	rows, err := r.db.QueryContext(ctx, selectBookReviewsSQL, bookID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("select reviews for book %q: %w", bookID, err)
	}
	defer rows.Close()

	out := make([]models.Review, 0, 16)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countBookReviewsSQL, bookID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reviews for book %q: %w", bookID, err)
	}
	return out, total, nil
}

// ListAll returns every review newest-first with author name and book title.
func (r *ReviewRepository) ListAll(ctx context.Context) ([]models.Review, error) {
	rows, err := r.db.QueryContext(ctx, selectAllReviewsSQL)
	if err != nil {
		return nil, fmt.Errorf("select all reviews: %w", err)
	}
	defer rows.Close()

	out := make([]models.Review, 0, 64)
	for rows.Next() {
		var (
			rv        models.Review
			title     sql.NullString
			bookTitle string
		)
		err := rows.Scan(&rv.ID, &title, &rv.Rating, &rv.Comment, &rv.BookID, &rv.UserID,
			&rv.CreatedAt, &rv.User.Name, &bookTitle)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		if title.Valid {
			rv.Title = title.String
		}
		rv.User.ID = rv.UserID
		rv.Book = &models.BookRef{ID: rv.BookID, Title: bookTitle}
		rv.CreatedAt = rv.CreatedAt.UTC()
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AverageRating computes the mean rating grouped by book; 0 when the book has
// no reviews.
func (r *ReviewRepository) AverageRating(ctx context.Context, bookID string) (float64, error) {
	var avg float64
	err := r.db.QueryRowContext(ctx, avgRatingSQL, bookID).Scan(&avg)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("average rating for book %q: %w", bookID, err)
	}
	return avg, nil
}

// ExistsForBookUser is the best-effort pre-check before inserting a review;
// the UNIQUE constraint remains the final arbiter.
func (r *ReviewRepository) ExistsForBookUser(ctx context.Context, bookID, userID string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, existsReviewSQL, bookID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check review exists for book %q: %w", bookID, err)
	}
	return exists, nil
}

// DeleteByBook removes every review referencing the book (cascade on book
// deletion).
func (r *ReviewRepository) DeleteByBook(ctx context.Context, bookID string) error {
	if _, err := r.db.ExecContext(ctx, deleteBookReviewsSQL, bookID); err != nil {
		return fmt.Errorf("delete reviews for book %q: %w", bookID, err)
	}
	return nil
}

func scanReview(row rowScanner) (*models.Review, error) {
	var (
		rv    models.Review
		title sql.NullString
	)
	err := row.Scan(&rv.ID, &title, &rv.Rating, &rv.Comment, &rv.BookID, &rv.UserID,
		&rv.CreatedAt, &rv.User.Name)
	if err != nil {
		return nil, err
	}
	if title.Valid {
		rv.Title = title.String
	}
	rv.User.ID = rv.UserID
	rv.CreatedAt = rv.CreatedAt.UTC()
	return &rv, nil
}
