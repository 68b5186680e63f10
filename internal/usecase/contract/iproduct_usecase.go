package usecasecontract

import (
	"context"
	"io"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Stock       int
	Features    []string
}

type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Stock       *int
	Features    []string
}

type IProductUseCase interface {
	CreateProduct(ctx context.Context, actorID string, input ProductInput) (*entity.Product, error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	ListProducts(ctx context.Context, category *string, page, pageSize int) ([]*entity.Product, int64, error)
	UpdateProduct(ctx context.Context, id string, update ProductUpdate) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	SetProductImage(ctx context.Context, id, filename, contentType string, r io.Reader) (*entity.Product, error)
}
