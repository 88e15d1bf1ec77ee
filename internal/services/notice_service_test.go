package services

import (
	"testing"
	"time"

	"github.com/Temirlan472/Office_Board/internal/models"
	"github.com/Temirlan472/Office_Board/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanViewNoticeChecksStatusBeforeDateBeforeTarget(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	// A draft addressed to someone else in the future: status wins.
	notice := &models.Notice{
		Status:      models.NoticeStatusDraft,
		PublishDate: future,
		Target:      models.NoticeTargetIndividual,
		EmployeeID:  "someone-else",
	}
	err := CanViewNotice(notice, "viewer", now)
	require.Error(t, err)
	assert.Equal(t, "Notice not accessible", err.Error())

	// Published but not yet due: date wins over targeting.
	notice.Status = models.NoticeStatusPublished
	err = CanViewNotice(notice, "viewer", now)
	require.Error(t, err)
	assert.Equal(t, "Notice not yet published", err.Error())

	// Published and due, but addressed to another employee.
	notice.PublishDate = past
	err = CanViewNotice(notice, "viewer", now)
	require.Error(t, err)
	assert.Equal(t, "Access denied to this notice", err.Error())
	assert.True(t, apperror.Is(err, apperror.CodeForbidden))

	// Same notice seen by its addressee.
	assert.NoError(t, CanViewNotice(notice, "someone-else", now))
}

func TestCanViewNoticeUnpublishedIsHidden(t *testing.T) {
	notice := &models.Notice{
		Status:      models.NoticeStatusUnpublished,
		PublishDate: time.Now().Add(-time.Hour),
		Target:      models.NoticeTargetAll,
	}
	err := CanViewNotice(notice, "viewer", time.Now())
	require.Error(t, err)
	assert.Equal(t, "Notice not accessible", err.Error())
}

func TestCanViewNoticeBroadcast(t *testing.T) {
	notice := &models.Notice{
		Status:      models.NoticeStatusPublished,
		PublishDate: time.Now().Add(-time.Minute),
		Target:      models.NoticeTargetAll,
	}
	assert.NoError(t, CanViewNotice(notice, "anyone", time.Now()))
}

func TestValidateIndividualFields(t *testing.T) {
	assert.NoError(t, ValidateIndividualFields("EMP-1", "Aizhan", "Accountant"))

	err := ValidateIndividualFields("", "Aizhan", "Accountant")
	require.Error(t, err)
	assert.Equal(t, "Employee ID is required for individual target", err.Error())
	assert.True(t, apperror.Is(err, apperror.CodeMissingField))

	// Whitespace-only values count as missing.
	err = ValidateIndividualFields("EMP-1", "   ", "Accountant")
	require.Error(t, err)
	assert.Equal(t, "Employee name is required for individual target", err.Error())

	err = ValidateIndividualFields("EMP-1", "Aizhan", "\t")
	require.Error(t, err)
	assert.Equal(t, "Employee position is required for individual target", err.Error())
}

func TestBuildAdminNoticeFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, BuildAdminNoticeFilter(ListNoticesInput{}))

	filter := BuildAdminNoticeFilter(ListNoticesInput{
		Target: "finance",
		Type:   "appreciation",
		Status: models.NoticeStatusPublished,
	})
	assert.Equal(t, "finance", filter["target"])
	assert.Equal(t, "appreciation", filter["type"])
	assert.Equal(t, models.NoticeStatusPublished, filter["status"])
	assert.NotContains(t, filter, "$or")
}

func TestBuildAdminNoticeFilterKeyword(t *testing.T) {
	filter := BuildAdminNoticeFilter(ListNoticesInput{Keyword: "payroll"})

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 2)
	assert.Equal(t, primitive.Regex{Pattern: "payroll", Options: "i"}, or[0]["title"])
	assert.Equal(t, primitive.Regex{Pattern: "payroll", Options: "i"}, or[1]["body"])
}

func TestBuildMyNoticesFilter(t *testing.T) {
	now := time.Now()
	filter := BuildMyNoticesFilter("EMP-7", "", now)

	assert.Equal(t, models.NoticeStatusPublished, filter["status"])
	assert.Equal(t, bson.M{"$lte": now}, filter["publish_date"])
	assert.NotContains(t, filter, "type")

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 2)
	assert.Equal(t, bson.M{"target": models.NoticeTargetAll}, or[0])
	assert.Equal(t, bson.M{"target": models.NoticeTargetIndividual, "employee_id": "EMP-7"}, or[1])
}

func TestBuildMyNoticesFilterWithType(t *testing.T) {
	filter := BuildMyNoticesFilter("EMP-7", "warning", time.Now())
	assert.Equal(t, "warning", filter["type"])
}

func strPtr(s string) *string { return &s }

func TestBuildNoticeUpdateRetargetClearsEmployeeFields(t *testing.T) {
	existing := &models.Notice{
		Target:           models.NoticeTargetIndividual,
		EmployeeID:       "EMP-1",
		EmployeeName:     "Aizhan",
		EmployeePosition: "Accountant",
	}

	// The payload moves the target away from individual while still
	// supplying employee fields; all three must be cleared regardless.
	set, unset, err := buildNoticeUpdate(existing, UpdateNoticeInput{
		Target:           strPtr(models.NoticeTargetAll),
		EmployeeID:       strPtr("EMP-2"),
		EmployeeName:     strPtr("Dias"),
		EmployeePosition: strPtr("Manager"),
	})
	require.NoError(t, err)

	assert.Equal(t, models.NoticeTargetAll, set["target"])
	assert.NotContains(t, set, "employee_id")
	assert.NotContains(t, set, "employee_name")
	assert.NotContains(t, set, "employee_position")
	assert.Equal(t, bson.M{"employee_id": "", "employee_name": "", "employee_position": ""}, unset)
}

func TestBuildNoticeUpdateRetargetToIndividualMergesStored(t *testing.T) {
	existing := &models.Notice{
		Target:           "finance",
		EmployeeName:     "Aizhan",
		EmployeePosition: "Accountant",
	}

	// Only the id arrives in the payload; name and position come from the
	// stored document.
	set, unset, err := buildNoticeUpdate(existing, UpdateNoticeInput{
		Target:     strPtr(models.NoticeTargetIndividual),
		EmployeeID: strPtr(" EMP-9 "),
	})
	require.NoError(t, err)
	assert.Empty(t, unset)
	assert.Equal(t, "EMP-9", set["employee_id"])
	assert.Equal(t, "Aizhan", set["employee_name"])
	assert.Equal(t, "Accountant", set["employee_position"])

	// Merged result still missing a field: rejected.
	existing.EmployeePosition = ""
	_, _, err = buildNoticeUpdate(existing, UpdateNoticeInput{
		Target:     strPtr(models.NoticeTargetIndividual),
		EmployeeID: strPtr("EMP-9"),
	})
	require.Error(t, err)
	assert.Equal(t, "Employee position is required for individual target", err.Error())
}

func TestBuildNoticeUpdateTargetAbsentPassesEmployeeFields(t *testing.T) {
	existing := &models.Notice{Target: models.NoticeTargetIndividual, EmployeeID: "EMP-1"}

	set, unset, err := buildNoticeUpdate(existing, UpdateNoticeInput{
		EmployeeName: strPtr(" Dias "),
	})
	require.NoError(t, err)
	assert.Empty(t, unset)
	assert.Equal(t, "Dias", set["employee_name"])
	assert.NotContains(t, set, "target")
}

func TestBuildNoticeUpdateStatusTransitionsUnrestricted(t *testing.T) {
	for _, from := range models.NoticeStatuses {
		for _, to := range models.NoticeStatuses {
			existing := &models.Notice{Status: from, Target: models.NoticeTargetAll}
			set, _, err := buildNoticeUpdate(existing, UpdateNoticeInput{Status: strPtr(to)})
			require.NoError(t, err, "%s -> %s should be accepted", from, to)
			assert.Equal(t, to, set["status"])
		}
	}

	_, _, err := buildNoticeUpdate(&models.Notice{}, UpdateNoticeInput{Status: strPtr("archived")})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeInvalidStatus))
}

func TestVisibilityExempt(t *testing.T) {
	assert.True(t, VisibilityExempt(models.RoleAdmin))
	assert.False(t, VisibilityExempt(models.RoleSubAdmin))
	assert.False(t, VisibilityExempt(models.RoleUser))
}

func TestMergeFieldPrefersPayload(t *testing.T) {
	payload := "new"
	assert.Equal(t, "new", mergeField(&payload, "stored"))
	assert.Equal(t, "stored", mergeField(nil, "stored"))

	empty := ""
	assert.Equal(t, "", mergeField(&empty, "stored"))
}
