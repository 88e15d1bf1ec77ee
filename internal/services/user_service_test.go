package services

import (
	"testing"

	"github.com/Temirlan472/Office_Board/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildUserFilterExcludesDeleted(t *testing.T) {
	filter := BuildUserFilter(ListUsersInput{})
	assert.Equal(t, bson.M{"is_deleted": false}, filter)

	filter = BuildUserFilter(ListUsersInput{Role: models.RoleUser})
	assert.Equal(t, models.RoleUser, filter["role"])
	assert.Equal(t, false, filter["is_deleted"])
}

func TestBuildUserFilterKeyword(t *testing.T) {
	filter := BuildUserFilter(ListUsersInput{Keyword: "aruzhan"})

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 3)
	assert.Equal(t, primitive.Regex{Pattern: "aruzhan", Options: "i"}, or[0]["name"])
	assert.Equal(t, "aruzhan", or[1]["email"])
	assert.Equal(t, "aruzhan", or[2]["phone"])
}

func TestBuildUserFilterKeywordMatchesRawID(t *testing.T) {
	id := primitive.NewObjectID()
	filter := BuildUserFilter(ListUsersInput{Keyword: id.Hex()})

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 4)
	assert.Equal(t, id, or[3]["_id"])
}

func TestBuildAdminFilterRestrictsRoles(t *testing.T) {
	filter := BuildAdminFilter("")
	assert.Equal(t, false, filter["is_deleted"])
	assert.Equal(t, bson.M{"$in": models.AdminRoles}, filter["role"])
	assert.NotContains(t, filter, "$or")
}

func TestBuildContactFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, BuildContactFilter(ListContactsInput{}))

	unread := false
	filter := BuildContactFilter(ListContactsInput{IsRead: &unread})
	assert.Equal(t, false, filter["is_read"])

	filter = BuildContactFilter(ListContactsInput{Keyword: "refund"})
	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 3)
	assert.Equal(t, primitive.Regex{Pattern: "refund", Options: "i"}, or[0]["name"])
	assert.Equal(t, primitive.Regex{Pattern: "refund", Options: "i"}, or[1]["email"])
	assert.Equal(t, primitive.Regex{Pattern: "refund", Options: "i"}, or[2]["message"])
}
