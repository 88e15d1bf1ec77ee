package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Temirlan472/Office_Board/internal/services"
	"github.com/Temirlan472/Office_Board/pkg/apperror"
	"github.com/Temirlan472/Office_Board/pkg/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

var validate = validator.New()

// NoticeHandler handles HTTP requests related to notices.
type NoticeHandler struct {
	Service *services.NoticeService
}

// NewNoticeHandler creates a new instance of NoticeHandler.
func NewNoticeHandler(service *services.NoticeService) *NoticeHandler {
	return &NoticeHandler{Service: service}
}

type createNoticeRequest struct {
	Title            string     `json:"title" validate:"required,max=200"`
	Body             string     `json:"body" validate:"required,max=5000"`
	Target           string     `json:"target" validate:"required,oneof=all finance sales web database admin individual hr"`
	Type             string     `json:"type" validate:"required,oneof=warning disciplinary performance_improvement appreciation recognition attendance leave_issue payroll compensation contract_update role_update advisory personal_reminder"`
	PublishDate      *time.Time `json:"publish_date"`
	Attachments      []string   `json:"attachments" validate:"omitempty,max=5"`
	Status           string     `json:"status" validate:"omitempty,oneof=draft published unpublished"`
	EmployeeID       string     `json:"employee_id"`
	EmployeeName     string     `json:"employee_name" validate:"omitempty,max=100"`
	EmployeePosition string     `json:"employee_position" validate:"omitempty,max=100"`
}

type updateNoticeRequest struct {
	Title            *string    `json:"title" validate:"omitempty,max=200"`
	Body             *string    `json:"body" validate:"omitempty,max=5000"`
	Target           *string    `json:"target" validate:"omitempty,oneof=all finance sales web database admin individual hr"`
	Type             *string    `json:"type" validate:"omitempty,oneof=warning disciplinary performance_improvement appreciation recognition attendance leave_issue payroll compensation contract_update role_update advisory personal_reminder"`
	PublishDate      *time.Time `json:"publish_date"`
	Attachments      *[]string  `json:"attachments" validate:"omitempty,max=5"`
	Status           *string    `json:"status"`
	EmployeeID       *string    `json:"employee_id"`
	EmployeeName     *string    `json:"employee_name" validate:"omitempty,max=100"`
	EmployeePosition *string    `json:"employee_position" validate:"omitempty,max=100"`
}

// CreateNoticeHandler handles POST /notice (admin only).
func (h *NoticeHandler) CreateNoticeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during notice creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		respondError(w, apperror.BadRequest(err.Error()))
		return
	}

	notice, err := h.Service.CreateNotice(r.Context(), claims.UserID, services.CreateNoticeInput{
		Title:            req.Title,
		Body:             req.Body,
		Target:           req.Target,
		Type:             req.Type,
		PublishDate:      req.PublishDate,
		Attachments:      req.Attachments,
		Status:           req.Status,
		EmployeeID:       req.EmployeeID,
		EmployeeName:     req.EmployeeName,
		EmployeePosition: req.EmployeePosition,
	})
	if err != nil {
		logrus.WithError(err).Warn("Failed to create notice")
		respondError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID":   claims.UserID,
		"noticeID": notice.ID.Hex(),
	}).Info("Notice successfully created")
	respondJSON(w, http.StatusCreated, "Notice created successfully", notice)
}

// GetNoticesHandler handles GET /notice. Full admins get the unrestricted
// list; everyone else gets their visibility-filtered feed.
func (h *NoticeHandler) GetNoticesHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if !services.VisibilityExempt(claims.Role) {
		h.GetMyNoticesHandler(w, r)
		return
	}

	query := r.URL.Query()
	input := services.ListNoticesInput{
		Target:  query.Get("target"),
		Type:    query.Get("type"),
		Status:  query.Get("status"),
		Keyword: query.Get("keyword"),
	}

	notices, pagination, err := h.Service.ListNotices(r.Context(), input, parsePageParams(r))
	if err != nil {
		logrus.WithError(err).Error("Failed to list notices")
		respondError(w, err)
		return
	}

	respondPage(w, "Notices retrieved successfully", notices, pagination)
}

// GetMyNoticesHandler handles GET /notice/my-notices.
func (h *NoticeHandler) GetMyNoticesHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	params := parsePageParams(r)
	noticeType := r.URL.Query().Get("type")

	notices, pagination, err := h.Service.ListMyNotices(r.Context(), claims.UserID, noticeType, params.Page, params.Limit)
	if err != nil {
		logrus.WithError(err).WithField("userID", claims.UserID).Error("Failed to list my notices")
		respondError(w, err)
		return
	}

	respondPage(w, "Notices retrieved successfully", notices, pagination)
}

// GetNoticeHandler handles GET /notice/{id} with per-viewer authorization.
func (h *NoticeHandler) GetNoticeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	noticeID := mux.Vars(r)["id"]
	notice, err := h.Service.GetNotice(r.Context(), noticeID, claims.UserID, claims.Role)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Notice retrieved successfully", notice)
}

// UpdateNoticeHandler handles PUT /notice/{id} (admin only).
func (h *NoticeHandler) UpdateNoticeHandler(w http.ResponseWriter, r *http.Request) {
	noticeID := mux.Vars(r)["id"]

	var req updateNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid notice update payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		respondError(w, apperror.BadRequest(err.Error()))
		return
	}

	notice, err := h.Service.UpdateNotice(r.Context(), noticeID, services.UpdateNoticeInput{
		Title:            req.Title,
		Body:             req.Body,
		Target:           req.Target,
		Type:             req.Type,
		PublishDate:      req.PublishDate,
		Attachments:      req.Attachments,
		Status:           req.Status,
		EmployeeID:       req.EmployeeID,
		EmployeeName:     req.EmployeeName,
		EmployeePosition: req.EmployeePosition,
	})
	if err != nil {
		logrus.WithError(err).WithField("noticeID", noticeID).Warn("Failed to update notice")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Notice updated successfully", notice)
}

// UpdateNoticeStatusHandler handles PATCH /notice/{id}/status (admin only).
func (h *NoticeHandler) UpdateNoticeStatusHandler(w http.ResponseWriter, r *http.Request) {
	noticeID := mux.Vars(r)["id"]

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	notice, err := h.Service.UpdateStatus(r.Context(), noticeID, req.Status)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Notice status updated to "+notice.Status, notice)
}

// DeleteNoticeHandler handles DELETE /notice/{id} (admin only). Responds
// with the deleted document's final state.
func (h *NoticeHandler) DeleteNoticeHandler(w http.ResponseWriter, r *http.Request) {
	noticeID := mux.Vars(r)["id"]

	notice, err := h.Service.DeleteNotice(r.Context(), noticeID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Notice deleted successfully", notice)
}
