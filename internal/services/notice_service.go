package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Temirlan472/Office_Board/internal/models"
	"github.com/Temirlan472/Office_Board/internal/repository"
	"github.com/Temirlan472/Office_Board/pkg/apperror"
	"github.com/Temirlan472/Office_Board/pkg/logger"
	"github.com/Temirlan472/Office_Board/pkg/paginate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// NoticeService owns the notice state machine, its targeting rules and the
// visibility decision for non-admin viewers.
type NoticeService struct {
	repo     *repository.NoticeRepository
	userRepo *repository.UserRepository
}

// NewNoticeService creates a new instance of NoticeService.
func NewNoticeService(repo *repository.NoticeRepository, userRepo *repository.UserRepository) *NoticeService {
	return &NoticeService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// CreateNoticeInput carries the fields accepted when creating a notice.
type CreateNoticeInput struct {
	Title            string
	Body             string
	Target           string
	Type             string
	PublishDate      *time.Time
	Attachments      []string
	Status           string
	EmployeeID       string
	EmployeeName     string
	EmployeePosition string
}

// UpdateNoticeInput carries a partial update; nil fields are left untouched.
type UpdateNoticeInput struct {
	Title            *string
	Body             *string
	Target           *string
	Type             *string
	PublishDate      *time.Time
	Attachments      *[]string
	Status           *string
	EmployeeID       *string
	EmployeeName     *string
	EmployeePosition *string
}

// ListNoticesInput are the optional admin list filters.
type ListNoticesInput struct {
	Target  string
	Type    string
	Status  string
	Keyword string
}

// ValidateIndividualFields checks the three employee fields required when a
// notice addresses a single employee. Values are trimmed before checking.
func ValidateIndividualFields(employeeID, employeeName, employeePosition string) error {
	if strings.TrimSpace(employeeID) == "" {
		return apperror.MissingField("Employee ID")
	}
	if strings.TrimSpace(employeeName) == "" {
		return apperror.MissingField("Employee name")
	}
	if strings.TrimSpace(employeePosition) == "" {
		return apperror.MissingField("Employee position")
	}
	return nil
}

// CanViewNotice decides whether a non-admin viewer may observe a notice.
// Checks run in a fixed order so the caller can tell rejection reasons
// apart: status first, then publish date, then individual targeting.
func CanViewNotice(notice *models.Notice, viewerID string, now time.Time) error {
	if notice.Status != models.NoticeStatusPublished {
		return apperror.Forbidden("Notice not accessible")
	}
	if notice.PublishDate.After(now) {
		return apperror.Forbidden("Notice not yet published")
	}
	if notice.Target == models.NoticeTargetIndividual && notice.EmployeeID != viewerID {
		return apperror.Forbidden("Access denied to this notice")
	}
	return nil
}

// BuildAdminNoticeFilter assembles the unrestricted admin list filter.
// Keyword performs a case-insensitive substring match over title or body.
func BuildAdminNoticeFilter(input ListNoticesInput) bson.M {
	filter := bson.M{}
	if input.Keyword != "" {
		filter["$or"] = []bson.M{
			{"title": primitive.Regex{Pattern: input.Keyword, Options: "i"}},
			{"body": primitive.Regex{Pattern: input.Keyword, Options: "i"}},
		}
	}
	if input.Target != "" {
		filter["target"] = input.Target
	}
	if input.Type != "" {
		filter["type"] = input.Type
	}
	if input.Status != "" {
		filter["status"] = input.Status
	}
	return filter
}

// BuildMyNoticesFilter assembles the fixed visibility filter for an
// employee's own feed: published, already past its publish date, and either
// broadcast to everyone or addressed to this employee.
func BuildMyNoticesFilter(viewerID, noticeType string, now time.Time) bson.M {
	filter := bson.M{
		"status":       models.NoticeStatusPublished,
		"publish_date": bson.M{"$lte": now},
		"$or": []bson.M{
			{"target": models.NoticeTargetAll},
			{"target": models.NoticeTargetIndividual, "employee_id": viewerID},
		},
	}
	if noticeType != "" {
		filter["type"] = noticeType
	}
	return filter
}

// CreateNotice validates targeting rules and persists a new notice created
// by the given administrator.
func (s *NoticeService) CreateNotice(ctx context.Context, creatorID string, input CreateNoticeInput) (*models.Notice, error) {
	creatorObjID, err := primitive.ObjectIDFromHex(creatorID)
	if err != nil {
		return nil, apperror.BadRequest("Invalid creator ID")
	}

	// Foreign-key-style existence check: the creator must be a live admin
	// account at write time.
	creator, err := s.userRepo.GetUserByID(ctx, creatorObjID)
	if err != nil || creator.IsDeleted || !models.IsAdminRole(creator.Role) {
		logger.Log.WithField("creator_id", creatorID).Warn("Notice creation with unknown creator")
		return nil, apperror.BadRequest("Creator not found with given ID")
	}

	status := input.Status
	if status == "" {
		status = models.NoticeStatusDraft
	}
	if !models.IsValidNoticeStatus(status) {
		return nil, apperror.InvalidStatus(invalidStatusMessage())
	}

	publishDate := time.Now()
	if input.PublishDate != nil {
		publishDate = *input.PublishDate
	}

	notice := &models.Notice{
		CreatedBy:   creatorObjID,
		Title:       strings.TrimSpace(input.Title),
		Body:        strings.TrimSpace(input.Body),
		Target:      input.Target,
		Type:        input.Type,
		PublishDate: publishDate,
		Attachments: input.Attachments,
		Status:      status,
	}

	if input.Target == models.NoticeTargetIndividual {
		if err := ValidateIndividualFields(input.EmployeeID, input.EmployeeName, input.EmployeePosition); err != nil {
			return nil, err
		}
		notice.EmployeeID = strings.TrimSpace(input.EmployeeID)
		notice.EmployeeName = strings.TrimSpace(input.EmployeeName)
		notice.EmployeePosition = strings.TrimSpace(input.EmployeePosition)
	}
	// Individual-only fields supplied for any other target are dropped here:
	// the model starts empty and they are never copied over.

	created, err := s.repo.CreateNotice(ctx, notice)
	if err != nil {
		return nil, apperror.Internal("Failed to create notice")
	}

	logger.Log.WithFields(map[string]interface{}{
		"notice_id": created.ID.Hex(),
		"target":    created.Target,
		"status":    created.Status,
	}).Info("Notice created in service layer")
	return created, nil
}

// UpdateNotice applies a partial update. When the payload includes a target,
// the individual-target field rules are re-evaluated against the merged
// result; moving the target away from individual force-clears the employee
// fields regardless of what the caller supplied.
func (s *NoticeService) UpdateNotice(ctx context.Context, id string, input UpdateNoticeInput) (*models.Notice, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.BadRequest("Invalid notice ID")
	}

	existing, err := s.repo.GetNoticeByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Notice not found")
		}
		return nil, fmt.Errorf("failed to fetch notice: %v", err)
	}

	set, unset, err := buildNoticeUpdate(existing, input)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateNotice(ctx, objID, set, unset)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Notice not found")
		}
		return nil, fmt.Errorf("failed to update notice: %v", err)
	}

	logger.Log.WithField("notice_id", id).Info("Notice updated in service layer")
	return updated, nil
}

// buildNoticeUpdate computes the set/unset documents for a partial update
// against the stored notice. Moving the target away from individual clears
// the employee fields even when the payload supplies them.
func buildNoticeUpdate(existing *models.Notice, input UpdateNoticeInput) (bson.M, bson.M, error) {
	set := bson.M{}
	unset := bson.M{}

	if input.Title != nil {
		set["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Body != nil {
		set["body"] = strings.TrimSpace(*input.Body)
	}
	if input.Type != nil {
		set["type"] = *input.Type
	}
	if input.PublishDate != nil {
		set["publish_date"] = *input.PublishDate
	}
	if input.Attachments != nil {
		set["attachments"] = *input.Attachments
	}
	if input.Status != nil {
		if !models.IsValidNoticeStatus(*input.Status) {
			return nil, nil, apperror.InvalidStatus(invalidStatusMessage())
		}
		set["status"] = *input.Status
	}

	if input.Target != nil {
		set["target"] = *input.Target
		if *input.Target == models.NoticeTargetIndividual {
			// Merge the payload over the stored document, then require all
			// three employee fields on the result.
			employeeID := mergeField(input.EmployeeID, existing.EmployeeID)
			employeeName := mergeField(input.EmployeeName, existing.EmployeeName)
			employeePosition := mergeField(input.EmployeePosition, existing.EmployeePosition)
			if err := ValidateIndividualFields(employeeID, employeeName, employeePosition); err != nil {
				return nil, nil, err
			}
			set["employee_id"] = strings.TrimSpace(employeeID)
			set["employee_name"] = strings.TrimSpace(employeeName)
			set["employee_position"] = strings.TrimSpace(employeePosition)
		} else {
			unset["employee_id"] = ""
			unset["employee_name"] = ""
			unset["employee_position"] = ""
		}
	} else {
		// Target untouched: employee fields pass through without
		// re-validating the stored target.
		if input.EmployeeID != nil {
			set["employee_id"] = strings.TrimSpace(*input.EmployeeID)
		}
		if input.EmployeeName != nil {
			set["employee_name"] = strings.TrimSpace(*input.EmployeeName)
		}
		if input.EmployeePosition != nil {
			set["employee_position"] = strings.TrimSpace(*input.EmployeePosition)
		}
	}

	return set, unset, nil
}

// UpdateStatus sets the notice status. Any recognized status may replace any
// other: the system gates visibility, not transition order.
func (s *NoticeService) UpdateStatus(ctx context.Context, id string, status string) (*models.Notice, error) {
	if !models.IsValidNoticeStatus(status) {
		return nil, apperror.InvalidStatus(invalidStatusMessage())
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.BadRequest("Invalid notice ID")
	}

	updated, err := s.repo.UpdateNotice(ctx, objID, bson.M{"status": status}, nil)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Notice not found")
		}
		return nil, fmt.Errorf("failed to update notice status: %v", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"notice_id": id,
		"status":    status,
	}).Info("Notice status updated")
	return updated, nil
}

// VisibilityExempt reports whether the viewer role skips the visibility
// predicate entirely. Only full admins do; sub-admins read like employees.
func VisibilityExempt(role string) bool {
	return role == models.RoleAdmin
}

// GetNotice fetches a single notice and authorizes the viewer. Full admins
// see every notice unconditionally; everyone else goes through the
// visibility predicate.
func (s *NoticeService) GetNotice(ctx context.Context, id, viewerID, viewerRole string) (*models.Notice, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("Notice not found")
	}

	notice, err := s.repo.GetNoticeByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Notice not found")
		}
		return nil, fmt.Errorf("failed to fetch notice: %v", err)
	}

	if !VisibilityExempt(viewerRole) {
		if err := CanViewNotice(notice, viewerID, time.Now()); err != nil {
			logger.Log.WithFields(map[string]interface{}{
				"notice_id": id,
				"viewer_id": viewerID,
			}).Warn("Notice access denied")
			return nil, err
		}
	}

	return notice, nil
}

// ListNotices is the admin view: every notice regardless of status, date or
// target, narrowed only by the optional filters.
func (s *NoticeService) ListNotices(ctx context.Context, input ListNoticesInput, params paginate.Params) ([]models.Notice, paginate.Pagination, error) {
	if params.SortField == "" {
		params.SortField = "publish_date"
	}
	return s.repo.FindPage(ctx, BuildAdminNoticeFilter(input), params)
}

// ListMyNotices is the employee view: only published, past-dated notices
// broadcast to everyone or addressed to this viewer, newest publish date
// first.
func (s *NoticeService) ListMyNotices(ctx context.Context, viewerID, noticeType string, page, limit int64) ([]models.Notice, paginate.Pagination, error) {
	params := paginate.Params{
		Page:      page,
		Limit:     limit,
		SortField: "publish_date",
		SortOrder: paginate.OrderDesc,
	}
	return s.repo.FindPage(ctx, BuildMyNoticesFilter(viewerID, noticeType, time.Now()), params)
}

// DeleteNotice removes a notice and returns its final state.
func (s *NoticeService) DeleteNotice(ctx context.Context, id string) (*models.Notice, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("Notice not found")
	}

	deleted, err := s.repo.DeleteNotice(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Notice not found")
		}
		return nil, fmt.Errorf("failed to delete notice: %v", err)
	}

	logger.Log.WithField("notice_id", id).Info("Notice deleted in service layer")
	return deleted, nil
}

func mergeField(updated *string, current string) string {
	if updated != nil {
		return *updated
	}
	return current
}

func invalidStatusMessage() string {
	return fmt.Sprintf("Invalid status. Valid statuses: %s", strings.Join(models.NoticeStatuses, ", "))
}
