package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/egreat/storefront-api/internal/core/domain"
)

const settingsCollection = "settings"

// settingsID is the fixed _id of the singleton document: the all-zeros
// ObjectID, so every instance of the service agrees on it.
var settingsID = primitive.NilObjectID

type SettingsRepository struct {
	coll *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{coll: db.Collection(settingsCollection)}
}

type mongoSettings struct {
	ID          primitive.ObjectID `bson:"_id"`
	SocialLinks domain.SocialLinks `bson:"social_links"`
	WhatsApp    string             `bson:"whatsapp,omitempty"`
	Email       string             `bson:"email,omitempty"`
	Address     string             `bson:"address,omitempty"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (ms *mongoSettings) toDomain() *domain.SiteSettings {
	return &domain.SiteSettings{
		SocialLinks: ms.SocialLinks,
		WhatsApp:    ms.WhatsApp,
		Email:       ms.Email,
		Address:     ms.Address,
		UpdatedAt:   ms.UpdatedAt,
	}
}

func (r *SettingsRepository) Get(ctx context.Context) (*domain.SiteSettings, error) {
	var ms mongoSettings
	if err := r.coll.FindOne(ctx, bson.M{"_id": settingsID}).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("find settings: %w", err)
	}
	return ms.toDomain(), nil
}

// Seed inserts the singleton with zero values unless it already exists.
func (r *SettingsRepository) Seed(ctx context.Context) error {
	update := bson.M{"$setOnInsert": mongoSettings{
		ID:        settingsID,
		UpdatedAt: time.Now().UTC(),
	}}

	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateByID(ctx, settingsID, update, opts); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}

func (r *SettingsRepository) Update(ctx context.Context, s *domain.SiteSettings) (*domain.SiteSettings, error) {
	update := bson.M{"$set": bson.M{
		"social_links": s.SocialLinks,
		"whatsapp":     s.WhatsApp,
		"email":        s.Email,
		"address":      s.Address,
		"updated_at":   s.UpdatedAt,
	}}

	res, err := r.coll.UpdateByID(ctx, settingsID, update)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrSettingsNotFound
	}
	return r.Get(ctx)
}
