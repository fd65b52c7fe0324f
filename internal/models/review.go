package models

import "time"

// Review is one user's opinion of one book. The store enforces at most one
// review per (book, user) pair.
type Review struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	BookID    string    `json:"bookId"`
	UserID    string    `json:"-"`
	User      UserRef   `json:"user"`
	Book      *BookRef  `json:"book,omitempty"` // populated only in the all-reviews listing
	CreatedAt time.Time `json:"createdAt"`
}

// BookRef is the short book form attached to reviews in the all-reviews listing.
type BookRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ReviewAttrs carries the client-supplied fields for create and update.
type ReviewAttrs struct {
	Title   string `json:"title"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
