package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bookreview/internal/models"
)

type BookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

var _ Books = (*BookRepository)(nil)

// bookColumns maps client field names to qualified columns. Filter or sort
// keys outside this map never reach the SQL text.
var bookColumns = map[string]string{
	"id":            "b.id",
	"title":         "b.title",
	"author":        "b.author",
	"genre":         "b.genre",
	"description":   "b.description",
	"publishedYear": "b.published_year",
	"isbn":          "b.isbn",
	"createdAt":     "b.created_at",
	"createdBy":     "b.created_by",
}

const (
	insertBookSQL = `INSERT INTO books (id, title, author, genre, description, published_year, isbn, created_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	updateBookSQL = `UPDATE books SET title = ?, author = ?, genre = ?, description = ?, published_year = ?, isbn = ?
		WHERE id = ?`
	deleteBookSQL = `DELETE FROM books WHERE id = ?`

	selectBookColumns = `b.id, b.title, b.author, b.genre, b.description, b.published_year, b.isbn, b.created_at, b.created_by, u.name`
	selectBookByIDSQL = `SELECT ` + selectBookColumns + ` FROM books b JOIN users u ON u.id = b.created_by WHERE b.id = ?`
)

// nullISBN maps an empty ISBN to NULL so the UNIQUE index only applies when
// an ISBN is present.
func nullISBN(isbn string) any {
	if isbn == "" {
		return nil
	}
	return isbn
}

// Insert persists a new book. Returns ErrDuplicate when the ISBN is taken.
func (r *BookRepository) Insert(ctx context.Context, b models.Book) error {
	_, err := r.db.ExecContext(ctx, insertBookSQL,
		b.ID, b.Title, b.Author, b.Genre, b.Description,
		b.PublishedYear, nullISBN(b.ISBN),
		b.CreatedAt.UTC().Format(timeLayout), b.CreatedBy.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert book %q: %w", b.Title, err)
	}
	return nil
}

// buildWhere turns the filter map into a WHERE clause. A filter on a field
// that is not a book column matches nothing, like equality on an absent
// document field.
func buildWhere(filters map[string]string) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}
	conds := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for field, value := range filters {
		col, ok := bookColumns[field]
		if !ok {
			return " WHERE 0 = 1", nil
		}
		conds = append(conds, col+" = ?")
		args = append(args, value)
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// buildOrderBy turns sort terms into an ORDER BY clause, skipping unknown
// fields. Default order is newest first.
func buildOrderBy(sort []SortField) string {
	terms := make([]string, 0, len(sort))
	for _, s := range sort {
		col, ok := bookColumns[s.Field]
		if !ok {
			continue
		}
		if s.Desc {
			col += " DESC"
		}
		terms = append(terms, col)
	}
	if len(terms) == 0 {
		return " ORDER BY b.created_at DESC"
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}

// List returns one page of books matching q plus the total match count.
func (r *BookRepository) List(ctx context.Context, q BookQuery) ([]models.Book, int, error) {
	where, args := buildWhere(q.Filters)

	query := `SELECT ` + selectBookColumns + ` FROM books b JOIN users u ON u.id = b.created_by` +
		where + buildOrderBy(q.Sort) + ` LIMIT ? OFFSET ?`
	books, err := r.queryBooks(ctx, query, append(append([]any{}, args...), q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM books b` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}
	return books, total, nil
}

const searchCond = ` WHERE b.title LIKE ? COLLATE NOCASE OR b.author LIKE ? COLLATE NOCASE`

// Search returns books whose title or author contains text, case-insensitive.
func (r *BookRepository) Search(ctx context.Context, text string, limit, offset int) ([]models.Book, int, error) {
	pattern := "%" + escapeLike(text) + "%"

	query := `SELECT ` + selectBookColumns + ` FROM books b JOIN users u ON u.id = b.created_by` +
		searchCond + ` ESCAPE '\' ORDER BY b.created_at DESC LIMIT ? OFFSET ?`
	books, err := r.queryBooks(ctx, query, pattern, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM books b` + searchCond + ` ESCAPE '\'`
	if err := r.db.QueryRowContext(ctx, countQuery, pattern, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count book search: %w", err)
	}
	return books, total, nil
}

// escapeLike neutralizes LIKE wildcards in user-supplied search text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}

// GetByID fetches a book with its creator's name. Returns (nil, nil) if absent.
func (r *BookRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	b, err := scanBook(r.db.QueryRowContext(ctx, selectBookByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select book %q: %w", id, err)
	}
	return b, nil
}

// Update rewrites the client-editable fields. The owner reference and
// creation time are untouched. Returns ErrDuplicate on an ISBN collision.
func (r *BookRepository) Update(ctx context.Context, id string, attrs models.BookAttrs) error {
	_, err := r.db.ExecContext(ctx, updateBookSQL,
		attrs.Title, attrs.Author, attrs.Genre, attrs.Description,
		attrs.PublishedYear, nullISBN(attrs.ISBN), id)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("update book %q: %w", id, err)
	}
	return nil
}

// Delete removes the book row. Reviews must be removed first by the caller.
func (r *BookRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, deleteBookSQL, id); err != nil {
		return fmt.Errorf("delete book %q: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*models.Book, error) {
	var (
		b    models.Book
		year sql.NullInt64
		isbn sql.NullString
	)
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Description,
		&year, &isbn, &b.CreatedAt, &b.CreatedBy.ID, &b.CreatedBy.Name)
	if err != nil {
		return nil, err
	}
	if year.Valid {
		y := int(year.Int64)
		b.PublishedYear = &y
	}
	if isbn.Valid {
		b.ISBN = isbn.String
	}
	b.CreatedAt = b.CreatedAt.UTC()
	return &b, nil
}

func (r *BookRepository) queryBooks(ctx context.Context, query string, args ...any) ([]models.Book, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select books: %w", err)
	}
	defer rows.Close()

	out := make([]models.Book, 0, 16)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
