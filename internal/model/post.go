package model

import (
	"errors"
	"strings"
)

type Post struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PostPatch carries a partial update. Nil fields are left untouched.
type PostPatch struct {
	Title   *string
	Content *string
}

type SortField string

const (
	SortByTitle   SortField = "title"
	SortByContent SortField = "content"
)

type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

var (
	ErrInvalidSortField = errors.New("Invalid sort field. Allowed values are 'title' or 'content'.")
	ErrInvalidDirection = errors.New("Invalid direction. Allowed values are 'asc' or 'desc'.")
)

// ParseSortField accepts "title" or "content" in any case.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(s)); f {
	case SortByTitle, SortByContent:
		return f, nil
	}
	return "", ErrInvalidSortField
}

// ParseSortDirection accepts "asc" or "desc" in any case; empty means Asc.
func ParseSortDirection(s string) (SortDirection, error) {
	if s == "" {
		return Asc, nil
	}
	switch d := SortDirection(strings.ToLower(s)); d {
	case Asc, Desc:
		return d, nil
	}
	return "", ErrInvalidDirection
}

// Value returns the field of p that f names.
func (f SortField) Value(p Post) string {
	if f == SortByContent {
		return p.Content
	}
	return p.Title
}
