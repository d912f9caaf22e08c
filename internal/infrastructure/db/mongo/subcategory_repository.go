package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/egreat/storefront-api/internal/core/domain"
	"github.com/egreat/storefront-api/internal/core/ports"
)

const subcategoryCollection = "subcategories"

type SubcategoryRepository struct {
	coll *mongo.Collection
}

func NewSubcategoryRepository(db *mongo.Database) *SubcategoryRepository {
	return &SubcategoryRepository{coll: db.Collection(subcategoryCollection)}
}

type mongoSubcategory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Slug        string             `bson:"slug"`
	Description string             `bson:"description"`
	IsActive    bool               `bson:"is_active"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (ms *mongoSubcategory) toDomain() *domain.Subcategory {
	return &domain.Subcategory{
		ID:          ms.ID.Hex(),
		Name:        ms.Name,
		Slug:        ms.Slug,
		Description: ms.Description,
		IsActive:    ms.IsActive,
		CreatedAt:   ms.CreatedAt,
		UpdatedAt:   ms.UpdatedAt,
	}
}

func (r *SubcategoryRepository) Create(ctx context.Context, s *domain.Subcategory) (*domain.Subcategory, error) {
	doc := mongoSubcategory{
		Name:        s.Name,
		Slug:        s.Slug,
		Description: s.Description,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert subcategory: %w", err)
	}

	created := *s
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *SubcategoryRepository) FindByID(ctx context.Context, id string) (*domain.Subcategory, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSubcategoryNotFound
	}

	var ms mongoSubcategory
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSubcategoryNotFound
		}
		return nil, fmt.Errorf("find subcategory: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *SubcategoryRepository) FindByName(ctx context.Context, name string) (*domain.Subcategory, error) {
	var ms mongoSubcategory
	if err := r.coll.FindOne(ctx, exactNameQuery(name)).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSubcategoryNotFound
		}
		return nil, fmt.Errorf("find subcategory by name: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *SubcategoryRepository) FindAllByName(ctx context.Context, name string) ([]*domain.Subcategory, error) {
	cursor, err := r.coll.Find(ctx, exactNameQuery(name))
	if err != nil {
		return nil, fmt.Errorf("find subcategories by name: %w", err)
	}
	defer cursor.Close(ctx)

	var subs []*domain.Subcategory
	for cursor.Next(ctx) {
		var ms mongoSubcategory
		if err := cursor.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode subcategory: %w", err)
		}
		subs = append(subs, ms.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("subcategory cursor: %w", err)
	}
	return subs, nil
}

func (r *SubcategoryRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Subcategory, int64, error) {
	query := bson.M{}
	if filter.Query != "" {
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(filter.Query), "$options": "i"}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count subcategories: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list subcategories: %w", err)
	}
	defer cursor.Close(ctx)

	subs := make([]*domain.Subcategory, 0, filter.Limit)
	for cursor.Next(ctx) {
		var ms mongoSubcategory
		if err := cursor.Decode(&ms); err != nil {
			return nil, 0, fmt.Errorf("decode subcategory: %w", err)
		}
		subs = append(subs, ms.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("subcategory cursor: %w", err)
	}
	return subs, total, nil
}

func (r *SubcategoryRepository) Update(ctx context.Context, s *domain.Subcategory) error {
	oid, err := primitive.ObjectIDFromHex(s.ID)
	if err != nil {
		return domain.ErrSubcategoryNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":        s.Name,
		"slug":        s.Slug,
		"description": s.Description,
		"is_active":   s.IsActive,
		"updated_at":  s.UpdatedAt,
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update subcategory: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSubcategoryNotFound
	}
	return nil
}

func (r *SubcategoryRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSubcategoryNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSubcategoryNotFound
	}
	return nil
}
