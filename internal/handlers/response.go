package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Temirlan472/Office_Board/pkg/apperror"
	"github.com/Temirlan472/Office_Board/pkg/paginate"
)

// envelope is the response shape shared by every endpoint. List endpoints
// additionally carry pagination metadata.
type envelope struct {
	Code       int                  `json:"code"`
	Message    string               `json:"message,omitempty"`
	Data       interface{}          `json:"data,omitempty"`
	Pagination *paginate.Pagination `json:"pagination,omitempty"`
}

func respondJSON(w http.ResponseWriter, code int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(envelope{Code: code, Message: message, Data: data})
}

func respondPage(w http.ResponseWriter, message string, data interface{}, pagination paginate.Pagination) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(envelope{
		Code:       http.StatusOK,
		Message:    message,
		Data:       data,
		Pagination: &pagination,
	})
}

func respondError(w http.ResponseWriter, err error) {
	status := apperror.HTTPStatus(err)
	message := "Something went wrong!"

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Code: status, Message: message})
}

// parsePageParams reads the common list query parameters. Limit defaults to
// 10; the query engine clamps out-of-range values.
func parsePageParams(r *http.Request) paginate.Params {
	query := r.URL.Query()

	page, _ := strconv.ParseInt(query.Get("page"), 10, 64)
	if page == 0 {
		page = 1
	}
	limit, _ := strconv.ParseInt(query.Get("limit"), 10, 64)
	if limit == 0 {
		limit = 10
	}

	return paginate.Params{
		Page:      page,
		Limit:     limit,
		SortField: query.Get("sortField"),
		SortOrder: query.Get("sortOrder"),
	}
}
