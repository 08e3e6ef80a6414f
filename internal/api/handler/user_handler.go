package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/apperr"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService service.IUserService
}

func NewUserHandler(userService service.IUserService) *UserHandler {
	if userService == nil {
		panic("userService cannot be nil")
	}
	return &UserHandler{
		userService: userService,
	}
}

func parseUserID(r *http.Request) (uint, error) {
	uid, err := strconv.ParseUint(chi.URLParam(r, "uid"), 10, 64)
	if err != nil {
		return 0, apperr.New(apperr.BadRequestCode, "invalid user id")
	}
	return uint(uid), nil
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var createDTO dto.CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		dto.ErrorJSON(w, apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	user, err := h.userService.CreateUser(r.Context(), &model.User{
		UserName:  createDTO.UserName,
		UserEmail: createDTO.UserEmail,
	})
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}
	dto.SuccessJSON(w, http.StatusCreated, "User created successfully", user)
}

func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetAllUsers(r.Context())
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}
	dto.SuccessJSON(w, http.StatusOK, "Users retrieved successfully", users)
}

func (h *UserHandler) UploadDocuments(w http.ResponseWriter, r *http.Request) {
	uid, err := parseUserID(r)
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}

	var uploadDTO dto.UploadDocumentsDTO
	if err := json.NewDecoder(r.Body).Decode(&uploadDTO); err != nil {
		dto.ErrorJSON(w, apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	if err := h.userService.UploadDocuments(r.Context(), uid, uploadDTO.ToDocuments()); err != nil {
		dto.ErrorJSON(w, err)
		return
	}
	dto.SuccessJSON(w, http.StatusOK, "Documents uploaded successfully", nil)
}

func (h *UserHandler) TogglePremium(w http.ResponseWriter, r *http.Request) {
	uid, err := parseUserID(r)
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}

	newRole, err := h.userService.TogglePremium(r.Context(), uid)
	if err != nil {
		dto.ErrorJSON(w, err)
		return
	}
	dto.SuccessJSON(w, http.StatusOK, "Role updated to "+newRole, dto.RoleResponseDTO{Role: newRole})
}
