package domain

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrImageNotFound   = errors.New("image not found on product")
	ErrImageUpload     = errors.New("error uploading some images")
)

// Product is the core catalog entity. Specs is a free-form attribute map
// (screen size, material, ...) whose keys vary per product line.
type Product struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Price         float64        `json:"price"`
	CategoryID    string         `json:"category"`
	SubcategoryID string         `json:"subcategory,omitempty"`
	Images        []string       `json:"images"`
	Specs         map[string]any `json:"specs"`
	InStock       bool           `json:"in_stock"`
	Featured      bool           `json:"featured"`
	Rating        float64        `json:"rating"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// HasImage reports whether url is attached to the product.
func (p *Product) HasImage(url string) bool {
	for _, img := range p.Images {
		if img == url {
			return true
		}
	}
	return false
}

// RemoveImage drops url from the product's image list. It reports whether
// the image was present.
func (p *Product) RemoveImage(url string) bool {
	for i, img := range p.Images {
		if img == url {
			p.Images = append(p.Images[:i], p.Images[i+1:]...)
			return true
		}
	}
	return false
}
