package contract

import (
	"context"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

type ProductFilterOptions struct {
	Category *string
	Page     int
	PageSize int
}

type IProductRepository interface {
	CreateProduct(ctx context.Context, product *entity.Product) error
	GetProductByID(ctx context.Context, id string) (*entity.Product, error)
	ListProducts(ctx context.Context, opts *ProductFilterOptions) ([]*entity.Product, int64, error)
	UpdateProduct(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteProduct(ctx context.Context, id string) error
}
