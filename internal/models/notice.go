package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notice statuses. Transitions between them are unrestricted; only
// visibility is gated on status.
const (
	NoticeStatusDraft       = "draft"
	NoticeStatusPublished   = "published"
	NoticeStatusUnpublished = "unpublished"
)

// NoticeTargetIndividual addresses a single employee and requires the
// employee fields to be filled in.
const (
	NoticeTargetAll        = "all"
	NoticeTargetIndividual = "individual"
)

var NoticeStatuses = []string{NoticeStatusPublished, NoticeStatusUnpublished, NoticeStatusDraft}

var NoticeTargets = []string{
	NoticeTargetAll, "finance", "sales", "web", "database", "admin", NoticeTargetIndividual, "hr",
}

// NoticeTypes is purely descriptive; no behavior depends on the value.
var NoticeTypes = []string{
	"warning", "disciplinary", "performance_improvement", "appreciation",
	"recognition", "attendance", "leave_issue", "payroll", "compensation",
	"contract_update", "role_update", "advisory", "personal_reminder",
}

// Notice is an announcement record with targeting, status and a scheduled
// publish time.
type Notice struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedBy        primitive.ObjectID `bson:"created_by" json:"created_by"`
	Title            string             `bson:"title" json:"title"`
	Body             string             `bson:"body" json:"body"`
	Target           string             `bson:"target" json:"target"`
	EmployeeID       string             `bson:"employee_id,omitempty" json:"employee_id,omitempty"`
	EmployeeName     string             `bson:"employee_name,omitempty" json:"employee_name,omitempty"`
	EmployeePosition string             `bson:"employee_position,omitempty" json:"employee_position,omitempty"`
	Type             string             `bson:"type" json:"type"`
	PublishDate      time.Time          `bson:"publish_date" json:"publish_date"`
	Attachments      []string           `bson:"attachments,omitempty" json:"attachments,omitempty"`
	Status           string             `bson:"status" json:"status"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

// IsValidNoticeStatus reports whether s is one of the three recognized
// notice statuses.
func IsValidNoticeStatus(s string) bool {
	for _, v := range NoticeStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func IsValidNoticeTarget(t string) bool {
	for _, v := range NoticeTargets {
		if v == t {
			return true
		}
	}
	return false
}

func IsValidNoticeType(t string) bool {
	for _, v := range NoticeTypes {
		if v == t {
			return true
		}
	}
	return false
}
