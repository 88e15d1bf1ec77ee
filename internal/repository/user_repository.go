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

var userSortableFields = map[string]bool{
	"name":       true,
	"email":      true,
	"role":       true,
	"status":     true,
	"created_at": true,
	"updated_at": true,
}

// UserRepository handles database operations related to users.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// CreateUser inserts a new user into the database.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert user into database")
		return nil, fmt.Errorf("failed to insert user: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted ID to ObjectID")
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	user.ID = insertedID

	logger.Log.WithField("userID", user.ID.Hex()).Info("User inserted successfully")
	return user, nil
}

// GetUserByID retrieves a user by their ID. Returns mongo.ErrNoDocuments
// when no user matches.
func (r *UserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email. Returns mongo.ErrNoDocuments
// when no user matches.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserFields applies the given fields to a user and returns the
// document as stored after the update.
func (r *UserRepository) UpdateUserFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	fields["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&user)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			logger.Log.WithError(err).WithField("userID", id.Hex()).Error("Failed to update user")
		}
		return nil, err
	}

	logger.Log.WithField("userID", id.Hex()).Info("User updated successfully")
	return &user, nil
}

// SoftDeleteUser marks a user as deleted without removing the document.
func (r *UserRepository) SoftDeleteUser(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now()}},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("userID", id.Hex()).Error("Failed to soft delete user")
		return fmt.Errorf("failed to delete user: %v", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	logger.Log.WithField("userID", id.Hex()).Info("User soft deleted")
	return nil
}

// HardDeleteUser removes a user document and returns its final state.
func (r *UserRepository) HardDeleteUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			logger.Log.WithError(err).WithField("userID", id.Hex()).Error("Failed to delete user")
		}
		return nil, err
	}

	logger.Log.WithField("userID", id.Hex()).Info("User deleted successfully")
	return &user, nil
}

// FindPage fetches one page of users matching filter.
func (r *UserRepository) FindPage(ctx context.Context, filter bson.M, params paginate.Params) ([]models.User, paginate.Pagination, error) {
	return paginate.Find[models.User](ctx, r.collection, filter, params, userSortableFields)
}

// CountByRole counts non-deleted users with the given role.
func (r *UserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"role": role, "is_deleted": false})
}

// CountByRoles counts non-deleted users whose role is in roles.
func (r *UserRepository) CountByRoles(ctx context.Context, roles []string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"role": bson.M{"$in": roles}, "is_deleted": false})
}

// GetRecentUsers returns the most recently created non-deleted users.
func (r *UserRepository) GetRecentUsers(ctx context.Context, limit int64) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"is_deleted": false}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent users: %v", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode recent users: %v", err)
	}
	return users, nil
}

// GetUserByCode retrieves a user by their partner code. Returns
// mongo.ErrNoDocuments when no user matches.
func (r *UserRepository) GetUserByCode(ctx context.Context, code string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// LinkPartners writes the partner reference on both sides. The two updates
// are independent single-document writes: a crash between them leaves one
// side linked and the other not. Callers retry the whole call to converge.
func (r *UserRepository) LinkPartners(ctx context.Context, userID, partnerID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"partner_id": partnerID, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to link partner for user %s: %v", userID.Hex(), err)
	}

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": partnerID},
		bson.M{"$set": bson.M{"partner_id": userID, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to link partner for user %s: %v", partnerID.Hex(), err)
	}

	return nil
}
