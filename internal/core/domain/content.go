package domain

import (
	"errors"
	"time"
)

var (
	ErrHeroNotFound     = errors.New("hero banner not found")
	ErrHeroExists       = errors.New("hero banner with this position already exists")
	ErrSettingsNotFound = errors.New("settings not found")
)

// HeroBanner is a landing-page slide. Position is a small unique integer
// controlling display order.
type HeroBanner struct {
	ID          string    `json:"id"`
	Position    int       `json:"position"`
	Title       string    `json:"title"`
	Highlight   string    `json:"highlight"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SocialLinks holds the store's public social media URLs.
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	YouTube   string `json:"youtube,omitempty" bson:"youtube,omitempty"`
	TikTok    string `json:"tiktok,omitempty" bson:"tiktok,omitempty"`
}

// SiteSettings is a singleton document: exactly one instance exists, seeded
// at startup and only ever updated in place.
type SiteSettings struct {
	SocialLinks SocialLinks `json:"social_links"`
	WhatsApp    string      `json:"whatsapp,omitempty"`
	Email       string      `json:"email,omitempty"`
	Address     string      `json:"address,omitempty"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
