package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(MissingField("Employee ID")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidStatus("bad status")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidQuery("bad sort")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("Notice not found")))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(Forbidden("Access denied")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Internal("boom")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain error")))
}

func TestHTTPStatusUnwrapsErrors(t *testing.T) {
	wrapped := fmt.Errorf("while updating: %w", NotFound("Notice not found"))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(wrapped))
}

func TestMissingFieldMessageNamesField(t *testing.T) {
	err := MissingField("Employee name")
	assert.Equal(t, "Employee name is required for individual target", err.Error())
	assert.Equal(t, CodeMissingField, err.Code)
}

func TestIs(t *testing.T) {
	assert.True(t, Is(Forbidden("no"), CodeForbidden))
	assert.False(t, Is(Forbidden("no"), CodeNotFound))
	assert.False(t, Is(errors.New("plain"), CodeForbidden))
}

func TestBadRequestHasOwnCode(t *testing.T) {
	err := BadRequest("Invalid notice ID")
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
	assert.True(t, Is(err, CodeBadRequest))
	assert.False(t, Is(err, CodeMissingField))
}
