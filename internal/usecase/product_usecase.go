package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
)

// ProductUsecase manages the storefront catalog.
type ProductUsecase struct {
	productRepo contract.IProductRepository
	storage     contract.IFileStorage
	activityUC  usecasecontract.IActivityUseCase
	uuidgen     contract.IUUIDGenerator
	logger      usecasecontract.IAppLogger
}

func NewProductUsecase(
	productRepo contract.IProductRepository,
	storage contract.IFileStorage,
	activityUC usecasecontract.IActivityUseCase,
	uuidgen contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		storage:     storage,
		activityUC:  activityUC,
		uuidgen:     uuidgen,
		logger:      logger,
	}
}

var _ usecasecontract.IProductUseCase = (*ProductUsecase)(nil)

func (uc *ProductUsecase) CreateProduct(ctx context.Context, actorID string, input usecasecontract.ProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if input.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}
	features := input.Features
	if features == nil {
		features = []string{}
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uc.uuidgen.NewUUID(),
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Stock:       input.Stock,
		Features:    features,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.CreateProduct(ctx, product); err != nil {
		uc.logger.Errorf("failed to create product: %v", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if uc.activityUC != nil {
		err := uc.activityUC.LogActivity(ctx, &entity.Activity{
			Type:        entity.ActivityProductCreated,
			Title:       "Product created",
			Description: product.Name,
			ActorID:     actorID,
			Metadata:    map[string]interface{}{"product_id": product.ID},
		})
		if err != nil {
			uc.logger.Warnf("failed to record product activity: %v", err)
		}
	}
	return product, nil
}

func (uc *ProductUsecase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (uc *ProductUsecase) ListProducts(ctx context.Context, category *string, page, pageSize int) ([]*entity.Product, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	products, total, err := uc.productRepo.ListProducts(ctx, &contract.ProductFilterOptions{
		Category: category,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		uc.logger.Errorf("failed to list products: %v", err)
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

func (uc *ProductUsecase) UpdateProduct(ctx context.Context, id string, update usecasecontract.ProductUpdate) (*entity.Product, error) {
	updates := map[string]interface{}{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		updates["name"] = name
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Price != nil {
		if *update.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
		}
		updates["price"] = *update.Price
	}
	if update.Category != nil {
		updates["category"] = *update.Category
	}
	if update.Stock != nil {
		if *update.Stock < 0 {
			return nil, fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
		}
		updates["stock"] = *update.Stock
	}
	if update.Features != nil {
		updates["features"] = update.Features
	}
	if len(updates) == 0 {
		return uc.GetProduct(ctx, id)
	}
	updates["updated_at"] = time.Now()

	if err := uc.productRepo.UpdateProduct(ctx, id, updates); err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return uc.GetProduct(ctx, id)
}

func (uc *ProductUsecase) DeleteProduct(ctx context.Context, id string) error {
	if err := uc.productRepo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (uc *ProductUsecase) SetProductImage(ctx context.Context, id, filename, contentType string, r io.Reader) (*entity.Product, error) {
	if _, err := uc.GetProduct(ctx, id); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: product image must be an image", ErrInvalidInput)
	}
	_, url, err := uc.storage.Upload(ctx, filename, contentType, r)
	if err != nil {
		uc.logger.Errorf("failed to upload image for product %s: %v", id, err)
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	if err := uc.productRepo.UpdateProduct(ctx, id, map[string]interface{}{"image_url": url, "updated_at": time.Now()}); err != nil {
		return nil, fmt.Errorf("failed to set product image: %w", err)
	}
	return uc.GetProduct(ctx, id)
}
