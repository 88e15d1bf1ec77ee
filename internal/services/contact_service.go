package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Temirlan472/Office_Board/internal/models"
	"github.com/Temirlan472/Office_Board/internal/repository"
	"github.com/Temirlan472/Office_Board/pkg/apperror"
	"github.com/Temirlan472/Office_Board/pkg/logger"
	"github.com/Temirlan472/Office_Board/pkg/paginate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ContactService encapsulates the guest contact message workflow.
type ContactService struct {
	repo *repository.ContactRepository
}

// NewContactService creates a new instance of ContactService.
func NewContactService(repo *repository.ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

// ContactStats are the dashboard counters for contact messages.
type ContactStats struct {
	Total  int64 `json:"total"`
	Unread int64 `json:"unread"`
	Read   int64 `json:"read"`
}

// ListContactsInput are the optional contact list filters.
type ListContactsInput struct {
	IsRead  *bool
	Keyword string
}

// BuildContactFilter assembles the contact list filter. Keyword matches
// name, email or message case-insensitively.
func BuildContactFilter(input ListContactsInput) bson.M {
	filter := bson.M{}
	if input.IsRead != nil {
		filter["is_read"] = *input.IsRead
	}
	if input.Keyword != "" {
		filter["$or"] = []bson.M{
			{"name": primitive.Regex{Pattern: input.Keyword, Options: "i"}},
			{"email": primitive.Regex{Pattern: input.Keyword, Options: "i"}},
			{"message": primitive.Regex{Pattern: input.Keyword, Options: "i"}},
		}
	}
	return filter
}

// CreateContact stores a new guest message.
func (s *ContactService) CreateContact(ctx context.Context, name, email, message string) (*models.Contact, error) {
	contact := &models.Contact{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Message: strings.TrimSpace(message),
	}

	created, err := s.repo.CreateContact(ctx, contact)
	if err != nil {
		return nil, apperror.Internal("Failed to send message")
	}
	return created, nil
}

// ListContacts returns a page of contact messages.
func (s *ContactService) ListContacts(ctx context.Context, input ListContactsInput, params paginate.Params) ([]models.Contact, paginate.Pagination, error) {
	if params.SortField == "" {
		params.SortField = "created_at"
	}
	return s.repo.FindPage(ctx, BuildContactFilter(input), params)
}

// GetContact fetches a single contact message.
func (s *ContactService) GetContact(ctx context.Context, id string) (*models.Contact, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.BadRequest("Invalid contact message ID")
	}

	contact, err := s.repo.GetContactByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Contact message not found")
		}
		return nil, fmt.Errorf("failed to fetch contact message: %v", err)
	}
	return contact, nil
}

// UpdateContact applies the given fields (typically the read flag).
func (s *ContactService) UpdateContact(ctx context.Context, id string, fields bson.M) (*models.Contact, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.BadRequest("Invalid contact message ID")
	}

	updated, err := s.repo.UpdateContact(ctx, objID, fields)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Contact message not found")
		}
		return nil, fmt.Errorf("failed to update contact message: %v", err)
	}
	return updated, nil
}

// DeleteContact removes a contact message and returns its final state.
func (s *ContactService) DeleteContact(ctx context.Context, id string) (*models.Contact, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.BadRequest("Invalid contact message ID")
	}

	deleted, err := s.repo.DeleteContact(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Contact message not found")
		}
		return nil, fmt.Errorf("failed to delete contact message: %v", err)
	}
	return deleted, nil
}

// MarkManyAsRead flags the given messages as read and returns the number of
// documents modified.
func (s *ContactService) MarkManyAsRead(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, apperror.BadRequest("Invalid message IDs")
	}

	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return 0, apperror.BadRequest(fmt.Sprintf("Invalid contact message ID: %s", id))
		}
		objIDs = append(objIDs, objID)
	}

	modified, err := s.repo.MarkManyAsRead(ctx, objIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages as read: %v", err)
	}

	logger.Log.WithField("modified", modified).Info("Contact messages marked as read in service layer")
	return modified, nil
}

// GetStats returns total/read/unread counters.
func (s *ContactService) GetStats(ctx context.Context) (*ContactStats, error) {
	total, err := s.repo.CountContacts(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count contact messages: %v", err)
	}
	unread, err := s.repo.CountContacts(ctx, bson.M{"is_read": false})
	if err != nil {
		return nil, fmt.Errorf("failed to count unread messages: %v", err)
	}
	read, err := s.repo.CountContacts(ctx, bson.M{"is_read": true})
	if err != nil {
		return nil, fmt.Errorf("failed to count read messages: %v", err)
	}

	return &ContactStats{Total: total, Unread: unread, Read: read}, nil
}
