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

const heroCollection = "heroes"

type HeroRepository struct {
	coll *mongo.Collection
}

func NewHeroRepository(db *mongo.Database) *HeroRepository {
	return &HeroRepository{coll: db.Collection(heroCollection)}
}

type mongoHero struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Position    int                `bson:"position"`
	Title       string             `bson:"title"`
	Highlight   string             `bson:"highlight,omitempty"`
	Description string             `bson:"description"`
	Image       string             `bson:"image"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (mh *mongoHero) toDomain() *domain.HeroBanner {
	return &domain.HeroBanner{
		ID:          mh.ID.Hex(),
		Position:    mh.Position,
		Title:       mh.Title,
		Highlight:   mh.Highlight,
		Description: mh.Description,
		Image:       mh.Image,
		CreatedAt:   mh.CreatedAt,
		UpdatedAt:   mh.UpdatedAt,
	}
}

func (r *HeroRepository) Create(ctx context.Context, h *domain.HeroBanner) (*domain.HeroBanner, error) {
	doc := mongoHero{
		Position:    h.Position,
		Title:       h.Title,
		Highlight:   h.Highlight,
		Description: h.Description,
		Image:       h.Image,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrHeroExists
		}
		return nil, fmt.Errorf("insert hero banner: %w", err)
	}

	created := *h
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *HeroRepository) FindByID(ctx context.Context, id string) (*domain.HeroBanner, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrHeroNotFound
	}

	var mh mongoHero
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mh); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrHeroNotFound
		}
		return nil, fmt.Errorf("find hero banner: %w", err)
	}
	return mh.toDomain(), nil
}

func (r *HeroRepository) List(ctx context.Context) ([]*domain.HeroBanner, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list hero banners: %w", err)
	}
	defer cursor.Close(ctx)

	banners := []*domain.HeroBanner{}
	for cursor.Next(ctx) {
		var mh mongoHero
		if err := cursor.Decode(&mh); err != nil {
			return nil, fmt.Errorf("decode hero banner: %w", err)
		}
		banners = append(banners, mh.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("hero cursor: %w", err)
	}
	return banners, nil
}

func (r *HeroRepository) Update(ctx context.Context, h *domain.HeroBanner) error {
	oid, err := primitive.ObjectIDFromHex(h.ID)
	if err != nil {
		return domain.ErrHeroNotFound
	}

	update := bson.M{"$set": bson.M{
		"position":    h.Position,
		"title":       h.Title,
		"highlight":   h.Highlight,
		"description": h.Description,
		"image":       h.Image,
		"updated_at":  h.UpdatedAt,
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrHeroExists
		}
		return fmt.Errorf("update hero banner: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrHeroNotFound
	}
	return nil
}

func (r *HeroRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrHeroNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete hero banner: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrHeroNotFound
	}
	return nil
}
