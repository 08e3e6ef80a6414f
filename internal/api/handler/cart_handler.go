package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/api/middleware"
	"github.com/RoyceAzure/lab/shopcenter/internal/apperr"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CartHandler struct {
	cartService     service.ICartService
	purchaseService service.IPurchaseService
}

func NewCartHandler(cartService service.ICartService, purchaseService service.IPurchaseService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	if purchaseService == nil {
		panic("purchaseService cannot be nil")
	}
	return &CartHandler{
		cartService:     cartService,
		purchaseService: purchaseService,
	}
}

func parseCartID(r *http.Request) (uuid.UUID, error) {
	cid, err := uuid.Parse(chi.URLParam(r, "cid"))
	if err != nil {
		return uuid.Nil, apperr.New(apperr.BadRequestCode, "invalid cart id")
	}
	return cid, nil
}

func parseProductID(r *http.Request) (uint, error) {
	pid, err := strconv.ParseUint(chi.URLParam(r, "pid"), 10, 64)
	if err != nil {
		return 0, apperr.New(apperr.BadRequestCode, "invalid product id")
	}
	return uint(pid), nil
}

func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartService.CreateCart(r.Context())
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}
	dto.SuccessJSON(w, http.StatusCreated, "Cart created successfully", cart)
}

func (h *CartHandler) GetCartById(w http.ResponseWriter, r *http.Request) {
	cid, err := parseCartID(r)
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}

	cart, err := h.cartService.GetCartById(r.Context(), cid)
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}
	dto.SuccessJSON(w, http.StatusOK, "Cart retrieved successfully", cart)
}

func (h *CartHandler) AddProductToCart(w http.ResponseWriter, r *http.Request) {
	cid, err := parseCartID(r)
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}
	pid, err := parseProductID(r)
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}

	// body 可省略, 預設數量 1
	addDTO := dto.AddProductDTO{Quantity: 1}
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&addDTO); err != nil {
			dto.ErrorJSON(w, apperr.New(apperr.BadRequestCode, "invalid request body"))
			return
		}
		if addDTO.Quantity == 0 {
			addDTO.Quantity = 1
		}
	}

	actor := middleware.GetActor(r.Context())
	cart, err := h.cartService.AddProductToCart(r.Context(), cid, pid, addDTO.Quantity, actor)
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}
	dto.SuccessJSON(w, http.StatusCreated, "Product added to cart", cart)
}

func (h *CartHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	cid, err := parseCartID(r)
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}
	pid, err := parseProductID(r)
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}

	if err := h.cartService.DeleteProduct(r.Context(), cid, pid); err != nil {
		dto.ErrorJSON(w, err)
		return
	}
	dto.SuccessJSON(w, http.StatusOK, "Product deleted from the cart", nil)
}

func (h *CartHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	cid, err := parseCartID(r)
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}

	var updateDTO dto.UpdateCartDTO
	if err := json.NewDecoder(r.Body).Decode(&updateDTO); err != nil {
		dto.ErrorJSON(w, apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	if err := h.cartService.UpdateCart(r.Context(), cid, updateDTO.ToCartItems()); err != nil {
		dto.ErrorJSON(w, err)
		return
	}
	dto.SuccessJSON(w, http.StatusOK, "Cart updated", nil)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	cid, err := parseCartID(r)
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}
	pid, err := parseProductID(r)
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}

	var quantityDTO dto.UpdateQuantityDTO
	if err := json.NewDecoder(r.Body).Decode(&quantityDTO); err != nil {
		dto.ErrorJSON(w, apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	if err := h.cartService.UpdateQuantity(r.Context(), cid, pid, quantityDTO.Quantity); err != nil {
		dto.ErrorJSON(w, err)
		return
	}
	dto.SuccessJSON(w, http.StatusOK, "Product quantity updated", nil)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cid, err := parseCartID(r)
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}

	if err := h.cartService.ClearCart(r.Context(), cid); err != nil {
		dto.ErrorJSON(w, err)
		return
	}
	dto.SuccessJSON(w, http.StatusOK, "All products removed from the cart", nil)
}

// CompletePurchase 全部成交回 200, 部分成交回 207 並附上沒買到的清單
func (h *CartHandler) CompletePurchase(w http.ResponseWriter, r *http.Request) {
	cid, err := parseCartID(r)
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}

	actor := middleware.GetActor(r.Context())
	result, err := h.purchaseService.CompletePurchase(r.Context(), cid, actor)
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}

	if result.Partial {
		dto.SuccessJSON(w, http.StatusMultiStatus, "Some products could not be processed", dto.PurchaseResponseDTO{
			UnfulfilledItems: result.Unfulfilled,
			Ticket:           result.Ticket,
		})
		return
	}

	dto.SuccessJSON(w, http.StatusOK, "Purchase completed successfully", dto.PurchaseResponseDTO{
		Ticket: result.Ticket,
	})
}
