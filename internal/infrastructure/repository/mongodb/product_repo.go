package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepository represents the MongoDB implementation of IProductRepository.
type ProductRepository struct {
	collection *mongo.Collection
}

var _ contract.IProductRepository = (*ProductRepository)(nil)

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{collection: db.Collection(CollectionProducts)}
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *entity.Product) error {
	if product.Features == nil {
		product.Features = []string{}
	}
	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", mapErr(err))
	}
	return nil
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, mapErr(err)
	}
	return &product, nil
}

func (r *ProductRepository) ListProducts(ctx context.Context, opts *contract.ProductFilterOptions) ([]*entity.Product, int64, error) {
	filter := bson.M{}
	page, size := 1, 10
	if opts != nil {
		if opts.Category != nil && *opts.Category != "" {
			filter["category"] = *opts.Category
		}
		page, size = opts.Page, opts.PageSize
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}
	skip, limit := skipLimit(page, size)
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}).SetSkip(skip).SetLimit(limit))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []*entity.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, total, nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, id string, updates map[string]interface{}) error {
	delete(updates, "_id")
	updates["updated_at"] = time.Now()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return contract.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return contract.ErrNotFound
	}
	return nil
}
