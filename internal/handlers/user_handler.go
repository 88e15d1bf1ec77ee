package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Temirlan472/Office_Board/internal/services"
	"github.com/Temirlan472/Office_Board/pkg/apperror"
	"github.com/Temirlan472/Office_Board/pkg/middleware"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// UserHandler handles HTTP requests related to user accounts.
type UserHandler struct {
	Service *services.UserService
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

type addAdminRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	Role            string `json:"role" validate:"required,oneof=admin sub_admin"`
}

type updateProfileRequest struct {
	Name         string `json:"name" validate:"omitempty,max=100"`
	Phone        string `json:"phone" validate:"omitempty,max=30"`
	Address      string `json:"address" validate:"omitempty,max=200"`
	ProfileImage string `json:"profile_image" validate:"omitempty,max=500"`
}

// GetUsersHandler handles GET /user (admin, sub_admin).
func (h *UserHandler) GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	input := services.ListUsersInput{
		Role:    query.Get("role"),
		Keyword: query.Get("keyword"),
	}

	users, pagination, err := h.Service.ListUsers(r.Context(), input, parsePageParams(r))
	if err != nil {
		log.WithError(err).Error("Failed to list users")
		respondError(w, err)
		return
	}

	respondPage(w, "Users retrieved successfully", users, pagination)
}

// GetAdminsHandler handles GET /user/admin (admin only).
func (h *UserHandler) GetAdminsHandler(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")

	admins, pagination, err := h.Service.ListAdmins(r.Context(), keyword, parsePageParams(r))
	if err != nil {
		log.WithError(err).Error("Failed to list admins")
		respondError(w, err)
		return
	}

	respondPage(w, "Users retrieved successfully", admins, pagination)
}

// AddAdminHandler handles POST /user/admin (admin only).
func (h *UserHandler) AddAdminHandler(w http.ResponseWriter, r *http.Request) {
	var req addAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		respondError(w, apperror.BadRequest(err.Error()))
		return
	}

	admin, err := h.Service.AddAdmin(r.Context(), services.AddAdminInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.Role,
	})
	if err != nil {
		log.WithError(err).Warn("Failed to add admin")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Admin added successfully", admin)
}

// UpdateAdminHandler handles PUT /user/admin/{id} (admin only).
func (h *UserHandler) UpdateAdminHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Role   string `json:"role"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	admin, err := h.Service.UpdateAdmin(r.Context(), claims.UserID, mux.Vars(r)["id"], req.Role, req.Status)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Admin updated successfully", admin)
}

// DeleteAdminHandler handles DELETE /user/admin/{id} (admin only).
func (h *UserHandler) DeleteAdminHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	admin, err := h.Service.DeleteAdmin(r.Context(), claims.UserID, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Admin deleted successfully", admin)
}

// GetUserHandler handles GET /user/{id}.
func (h *UserHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.GetUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "User fetched successfully", user)
}

// UpdateUserStatusHandler handles PUT /user/{id} (admin, sub_admin).
func (h *UserHandler) UpdateUserStatusHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
		Role   string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.Service.UpdateUserStatus(r.Context(), mux.Vars(r)["id"], req.Status, req.Role)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "User status updated successfully", user)
}

// UpdateProfileHandler handles PATCH /user/{id}. Users may only edit their
// own profile; role and status never pass through.
func (h *UserHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID := mux.Vars(r)["id"]
	if userID != claims.UserID {
		http.Error(w, "Forbidden: You can only update your own profile", http.StatusForbidden)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		respondError(w, apperror.BadRequest(err.Error()))
		return
	}

	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}
	if req.Address != "" {
		fields["address"] = req.Address
	}
	if req.ProfileImage != "" {
		fields["profile_image"] = req.ProfileImage
	}

	user, err := h.Service.UpdateProfile(r.Context(), userID, fields)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "User updated successfully", user)
}

// DeleteProfileHandler handles DELETE /user/{id}.
func (h *UserHandler) DeleteProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID := mux.Vars(r)["id"]
	if err := h.Service.DeleteProfile(r.Context(), userID); err != nil {
		respondError(w, err)
		return
	}

	log.WithField("userID", userID).Info("User deleted successfully")
	respondJSON(w, http.StatusOK, "User deleted successfully", nil)
}

// ConnectPartnerHandler handles POST /user/connect-partner.
func (h *UserHandler) ConnectPartnerHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Service.ConnectPartner(r.Context(), claims.UserID, req.Code); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Connected successfully", nil)
}
