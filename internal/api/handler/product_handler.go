package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/apperr"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
)

type ProductHandler struct {
	productService service.IProductService
}

func NewProductHandler(productService service.IProductService) *ProductHandler {
	if productService == nil {
		panic("productService cannot be nil")
	}
	return &ProductHandler{
		productService: productService,
	}
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var createDTO dto.CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		dto.ErrorJSON(w, apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), &model.Product{
		Code:        createDTO.Code,
		Name:        createDTO.Name,
		Price:       createDTO.Price,
		Stock:       createDTO.Stock,
		Category:    createDTO.Category,
		Description: createDTO.Description,
		Owner:       createDTO.Owner,
	})
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}
	dto.SuccessJSON(w, http.StatusCreated, "Product created successfully", product)
}

func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	pid, err := parseProductID(r)
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}

	product, err := h.productService.GetProductByID(r.Context(), pid)
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}
	dto.SuccessJSON(w, http.StatusOK, "Product retrieved successfully", product)
}

func (h *ProductHandler) GetAllProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.GetAllProducts(r.Context())
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}
	dto.SuccessJSON(w, http.StatusOK, "Products retrieved successfully", products)
}
