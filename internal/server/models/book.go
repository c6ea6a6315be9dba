package models

import "time"

// Book references its author by AuthorID only; the author may have been
// deleted since.
type Book struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Genre      string    `json:"genre"`
	AuthorID   string    `json:"authorId"`
	Cover      string    `json:"cover,omitempty"`
	URL        string    `json:"url,omitempty"`
	IsFavorite bool      `json:"isFavorite"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BookPatch carries the fields of an update; nil means "leave as is".
type BookPatch struct {
	Name       *string
	Genre      *string
	AuthorID   *string
	Cover      *string
	URL        *string
	IsFavorite *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p BookPatch) IsEmpty() bool {
	return p.Name == nil && p.Genre == nil && p.AuthorID == nil &&
		p.Cover == nil && p.URL == nil && p.IsFavorite == nil
}

// Apply copies the set fields onto b.
func (p BookPatch) Apply(b *Book) {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Genre != nil {
		b.Genre = *p.Genre
	}
	if p.AuthorID != nil {
		b.AuthorID = *p.AuthorID
	}
	if p.Cover != nil {
		b.Cover = *p.Cover
	}
	if p.URL != nil {
		b.URL = *p.URL
	}
	if p.IsFavorite != nil {
		b.IsFavorite = *p.IsFavorite
	}
}
