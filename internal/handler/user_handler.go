package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/brunowerneck/payflow/internal/models"
	service "github.com/brunowerneck/payflow/internal/services"
	pkgerrors "github.com/brunowerneck/payflow/pkg/errors"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

type updateUserRequest struct {
	Name           *string                `json:"name" validate:"omitempty,min=1"`
	Email          *string                `json:"email" validate:"omitempty,email"`
	Address        *string                `json:"address"`
	BankingDetails *models.BankingDetails `json:"bankingDetails"`
}

type updateProfilePictureRequest struct {
	ProfilePicture string `json:"profilePicture"`
}

type userErrorResponse struct {
	Message string `json:"message"`
}

func (h *UserHandler) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(userErrorResponse{Message: err.Error()})
}

func (h *UserHandler) serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrUserNotFound):
		h.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, pkgerrors.ErrEmailInUse):
		// Kept as 400, not 409, for compatibility with existing clients.
		h.writeError(w, http.StatusBadRequest, err)
	default:
		h.writeError(w, http.StatusInternalServerError, err)
	}
}

func (h *UserHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/users", h.FindAll).Methods("GET")
	r.HandleFunc("/users/{userId}", h.GetByID).Methods("GET")
	r.HandleFunc("/users/{userId}", h.Update).Methods("PATCH")
	r.HandleFunc("/users/{userId}/profile-picture", h.UpdateProfilePicture).Methods("PATCH")
}

func (h *UserHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	users, total, err := h.service.FindAll(r.Context(), page, limit)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.PaginatedUsers{
		Users: users,
		Pagination: models.UserPagination{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: models.TotalPages(total, limit),
		},
	})
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New(validationMessage(err)))
		return
	}

	user, err := h.service.Update(r.Context(), userID, models.UserUpdate{
		Name:           req.Name,
		Email:          req.Email,
		Address:        req.Address,
		BankingDetails: req.BankingDetails,
	})
	if err != nil {
		h.serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func (h *UserHandler) UpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var req updateProfilePictureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ProfilePicture == "" {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrProfilePictureRequired)
		return
	}

	user, err := h.service.UpdateProfilePicture(r.Context(), userID, req.ProfilePicture)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}
