package handlers

import (
	"net/http"
	"strconv"

	"github.com/Temirlan472/Office_Board/internal/services"
	"github.com/sirupsen/logrus"
)

// DashboardHandler handles the admin dashboard endpoint.
type DashboardHandler struct {
	Service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: service}
}

// GetDashboardHandler handles GET /dashboard (admin only).
func (h *DashboardHandler) GetDashboardHandler(w http.ResponseWriter, r *http.Request) {
	recentLimit, _ := strconv.ParseInt(r.URL.Query().Get("recentLimit"), 10, 64)
	if recentLimit == 0 {
		recentLimit = 20
	}

	dashboard, err := h.Service.GetDashboard(r.Context(), recentLimit)
	if err != nil {
		logrus.WithError(err).Error("Failed to build dashboard")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Dashboard fetched successfully", dashboard)
}
