package models

import "time"

// Genres is the fixed set of accepted book genres.
var Genres = []string{
	"Fiction",
	"Non-fiction",
	"Science Fiction",
	"Fantasy",
	"Mystery",
	"Thriller",
	"Romance",
	"Horror",
	"Biography",
	"History",
	"Children",
	"Young Adult",
	"Science",
	"Self-Help",
	"Other",
}

// Book is a catalogue entry. CreatedBy is set once at creation and only the
// creator may update or delete the record.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	Description   string    `json:"description"`
	PublishedYear *int      `json:"publishedYear,omitempty"`
	ISBN          string    `json:"isbn,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     UserRef   `json:"createdBy"`
}

// BookAttrs carries the client-supplied fields for create and update.
type BookAttrs struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Genre         string `json:"genre"`
	Description   string `json:"description"`
	PublishedYear *int   `json:"publishedYear"`
	ISBN          string `json:"isbn"`
}

// BookDetail is the single-book view: the record plus its average rating and
// one page of reviews.
type BookDetail struct {
	Book
	AverageRating    float64    `json:"averageRating"`
	Reviews          []Review   `json:"reviews"`
	ReviewPagination Pagination `json:"reviewPagination"`
}
