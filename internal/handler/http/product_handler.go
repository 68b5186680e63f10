package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Learnify/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
)

type ProductHandler struct {
	productUsecase usecasecontract.IProductUseCase
	maxUploadBytes int64
}

func NewProductHandler(productUsecase usecasecontract.IProductUseCase, maxUploadBytes int64) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, maxUploadBytes: maxUploadBytes}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	page, size := pageParams(c)
	var category *string
	if cat := c.Query("category"); cat != "" {
		category = &cat
	}
	products, total, err := h.productUsecase.ListProducts(c.Request.Context(), category, page, size)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, paginated(products, total, page, size))
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productUsecase.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	actorID, _ := currentUserID(c)
	var req dto.ProductRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	product, err := h.productUsecase.CreateProduct(c.Request.Context(), actorID, usecasecontract.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Features:    req.Features,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req dto.UpdateProductRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	product, err := h.productUsecase.UpdateProduct(c.Request.Context(), c.Param("id"), usecasecontract.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Features:    req.Features,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productUsecase.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Product deleted")
}

func (h *ProductHandler) SetProductImage(c *gin.Context) {
	file, header, ok := readUpload(c, h.maxUploadBytes)
	if !ok {
		return
	}
	defer file.Close()

	product, err := h.productUsecase.SetProductImage(c.Request.Context(), c.Param("id"), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, product)
}
