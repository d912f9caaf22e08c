package domain

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryExists      = errors.New("category with this name already exists")
	ErrCategoryInUse       = errors.New("category is referenced by existing products")
	ErrSubcategoryNotFound = errors.New("subcategory not found")
	ErrSubcategoryExists   = errors.New("subcategory with this name already exists")
	ErrSubcategoryInUse    = errors.New("subcategory is referenced by existing products")
)

// Category groups products at the top level of the catalog tree.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CoverImage  string    `json:"cover_image,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Subcategory is a second-level grouping. Names are unique (case-insensitive).
type Subcategory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Slugify lowercases s and collapses every non-alphanumeric run into a
// single hyphen, e.g. "Gaming Laptops" -> "gaming-laptops".
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevHyphen = false
			continue
		}
		if !prevHyphen {
			b.WriteByte('-')
			prevHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
