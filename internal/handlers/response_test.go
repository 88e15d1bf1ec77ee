package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Temirlan472/Office_Board/pkg/apperror"
	"github.com/Temirlan472/Office_Board/pkg/paginate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageParams(t *testing.T) {
	req := httptest.NewRequest("GET", "/notice?page=3&limit=5&sortField=title&sortOrder=asc", nil)
	params := parsePageParams(req)
	assert.Equal(t, paginate.Params{Page: 3, Limit: 5, SortField: "title", SortOrder: "asc"}, params)

	req = httptest.NewRequest("GET", "/notice", nil)
	params = parsePageParams(req)
	assert.Equal(t, int64(1), params.Page)
	assert.Equal(t, int64(10), params.Limit)
	assert.Empty(t, params.SortField)
}

func TestRespondErrorUsesAppErrorMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, apperror.Forbidden("Notice not yet published"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, http.StatusForbidden, body.Code)
	assert.Equal(t, "Notice not yet published", body.Message)
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, errors.New("dial tcp: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Something went wrong!", body.Message)
}

func TestRespondPageIncludesPagination(t *testing.T) {
	rec := httptest.NewRecorder()
	respondPage(rec, "Notices fetched successfully", []string{"a"}, paginate.NewPagination(21, 2, 10))

	var body struct {
		Code       int                  `json:"code"`
		Message    string               `json:"message"`
		Pagination *paginate.Pagination `json:"pagination"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, body.Code)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, int64(3), body.Pagination.TotalPages)
	assert.True(t, body.Pagination.HasNextPage)
	assert.True(t, body.Pagination.HasPrevPage)
}
