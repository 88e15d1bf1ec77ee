package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidNoticeStatus(t *testing.T) {
	for _, status := range NoticeStatuses {
		assert.True(t, IsValidNoticeStatus(status))
	}
	assert.False(t, IsValidNoticeStatus("archived"))
	assert.False(t, IsValidNoticeStatus(""))
	assert.False(t, IsValidNoticeStatus("Published"))
}

func TestIsValidNoticeTarget(t *testing.T) {
	for _, target := range NoticeTargets {
		assert.True(t, IsValidNoticeTarget(target))
	}
	assert.False(t, IsValidNoticeTarget("everyone"))
	assert.False(t, IsValidNoticeTarget(""))
}

func TestIsAdminRole(t *testing.T) {
	assert.True(t, IsAdminRole(RoleAdmin))
	assert.True(t, IsAdminRole(RoleSubAdmin))
	assert.False(t, IsAdminRole(RoleUser))
	assert.False(t, IsAdminRole(""))
}
