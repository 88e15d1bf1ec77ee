package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Temirlan472/Office_Board/internal/services"
	"github.com/Temirlan472/Office_Board/pkg/apperror"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// ContactHandler handles HTTP requests for guest contact messages.
type ContactHandler struct {
	Service *services.ContactService
}

// NewContactHandler creates a new instance of ContactHandler.
func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{Service: service}
}

type createContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

// CreateContactHandler handles POST /contact. No authentication: guests use
// this endpoint.
func (h *ContactHandler) CreateContactHandler(w http.ResponseWriter, r *http.Request) {
	var req createContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		respondError(w, apperror.BadRequest(err.Error()))
		return
	}

	contact, err := h.Service.CreateContact(r.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		logrus.WithError(err).Error("Failed to create contact message")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, "Message sent successfully", contact)
}

// GetContactsHandler handles GET /contact (admin only).
func (h *ContactHandler) GetContactsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	input := services.ListContactsInput{Keyword: query.Get("keyword")}
	if v := query.Get("isRead"); v != "" {
		isRead := v == "true"
		input.IsRead = &isRead
	}

	contacts, pagination, err := h.Service.ListContacts(r.Context(), input, parsePageParams(r))
	if err != nil {
		logrus.WithError(err).Error("Failed to list contact messages")
		respondError(w, err)
		return
	}

	respondPage(w, "Contact messages fetched successfully", contacts, pagination)
}

// GetContactHandler handles GET /contact/{id} (admin only).
func (h *ContactHandler) GetContactHandler(w http.ResponseWriter, r *http.Request) {
	contact, err := h.Service.GetContact(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Contact message fetched successfully", contact)
}

// UpdateContactHandler handles PATCH /contact/{id} (admin only). Used to
// flip the read flag.
func (h *ContactHandler) UpdateContactHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsRead *bool `json:"is_read"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	fields := bson.M{}
	if req.IsRead != nil {
		fields["is_read"] = *req.IsRead
	}

	contact, err := h.Service.UpdateContact(r.Context(), mux.Vars(r)["id"], fields)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Contact message updated successfully", contact)
}

// DeleteContactHandler handles DELETE /contact/{id} (admin only).
func (h *ContactHandler) DeleteContactHandler(w http.ResponseWriter, r *http.Request) {
	contact, err := h.Service.DeleteContact(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Contact message deleted successfully", contact)
}

// MarkAsReadHandler handles POST /contact/mark-read (admin only).
func (h *ContactHandler) MarkAsReadHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	modified, err := h.Service.MarkManyAsRead(r.Context(), req.IDs)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK,
		fmt.Sprintf("%d messages marked as read successfully", modified),
		map[string]int64{"modifiedCount": modified})
}

// GetStatsHandler handles GET /contact/stats (admin only).
func (h *ContactHandler) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GetStats(r.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch contact stats")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Contact statistics fetched successfully", stats)
}
