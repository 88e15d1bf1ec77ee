package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Temirlan472/Office_Board/internal/models"
	"github.com/Temirlan472/Office_Board/pkg/logger"
	"github.com/Temirlan472/Office_Board/pkg/paginate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var contactSortableFields = map[string]bool{
	"name":       true,
	"email":      true,
	"is_read":    true,
	"created_at": true,
	"updated_at": true,
}

// ContactRepository handles database operations related to guest contact
// messages.
type ContactRepository struct {
	collection *mongo.Collection
}

// NewContactRepository creates a new instance of ContactRepository.
func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{
		collection: db.Collection("contacts"),
	}
}

// CreateContact inserts a new contact message.
func (r *ContactRepository) CreateContact(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	contact.CreatedAt = time.Now()
	contact.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, contact)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert contact message")
		return nil, fmt.Errorf("failed to insert contact message: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted contact ID")
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	contact.ID = insertedID

	logger.Log.WithField("contact_id", contact.ID.Hex()).Info("Contact message created")
	return contact, nil
}

// GetContactByID fetches a contact message by its ID. Returns
// mongo.ErrNoDocuments when no message matches.
func (r *ContactRepository) GetContactByID(ctx context.Context, id primitive.ObjectID) (*models.Contact, error) {
	var contact models.Contact
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

// UpdateContact applies the given fields and returns the updated document.
func (r *ContactRepository) UpdateContact(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Contact, error) {
	fields["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var contact models.Contact
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&contact)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			logger.Log.WithError(err).WithField("contact_id", id.Hex()).Error("Failed to update contact message")
		}
		return nil, err
	}
	return &contact, nil
}

// DeleteContact removes a contact message and returns its final state.
func (r *ContactRepository) DeleteContact(ctx context.Context, id primitive.ObjectID) (*models.Contact, error) {
	var contact models.Contact
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&contact)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			logger.Log.WithError(err).WithField("contact_id", id.Hex()).Error("Failed to delete contact message")
		}
		return nil, err
	}
	return &contact, nil
}

// FindPage fetches one page of contact messages matching filter.
func (r *ContactRepository) FindPage(ctx context.Context, filter bson.M, params paginate.Params) ([]models.Contact, paginate.Pagination, error) {
	return paginate.Find[models.Contact](ctx, r.collection, filter, params, contactSortableFields)
}

// MarkManyAsRead flags all messages in ids as read and returns how many
// documents were modified. A single update-many call, atomic per document
// but not across the set.
func (r *ContactRepository) MarkManyAsRead(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	result, err := r.collection.UpdateMany(
		ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"is_read": true, "updated_at": time.Now()}},
	)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to mark contact messages as read")
		return 0, fmt.Errorf("failed to mark messages as read: %v", err)
	}

	logger.Log.WithField("modified", result.ModifiedCount).Info("Contact messages marked as read")
	return result.ModifiedCount, nil
}

// CountContacts counts contact messages matching filter.
func (r *ContactRepository) CountContacts(ctx context.Context, filter bson.M) (int64, error) {
	return r.collection.CountDocuments(ctx, filter)
}
