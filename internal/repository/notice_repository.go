package repository

import (
	"context"
	"time"

	"github.com/Temirlan472/Office_Board/internal/models"
	"github.com/Temirlan472/Office_Board/pkg/logger"
	"github.com/Temirlan472/Office_Board/pkg/paginate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// noticeSortableFields lists the attributes a caller may sort notices by.
var noticeSortableFields = map[string]bool{
	"title":        true,
	"target":       true,
	"type":         true,
	"status":       true,
	"publish_date": true,
	"created_at":   true,
	"updated_at":   true,
}

// NoticeRepository handles database operations related to notices.
type NoticeRepository struct {
	collection *mongo.Collection
}

// NewNoticeRepository creates a new instance of NoticeRepository.
func NewNoticeRepository(db *mongo.Database) *NoticeRepository {
	return &NoticeRepository{
		collection: db.Collection("notices"),
	}
}

// CreateNotice inserts a new notice into the database.
func (r *NoticeRepository) CreateNotice(ctx context.Context, notice *models.Notice) (*models.Notice, error) {
	notice.CreatedAt = time.Now()
	notice.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, notice)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert notice")
		return nil, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted notice ID")
		return nil, mongo.ErrNilDocument
	}
	notice.ID = insertedID

	logger.Log.WithField("notice_id", notice.ID.Hex()).Info("Notice created successfully")
	return notice, nil
}

// GetNoticeByID fetches a notice by its ID. Returns mongo.ErrNoDocuments
// when no notice matches.
func (r *NoticeRepository) GetNoticeByID(ctx context.Context, id primitive.ObjectID) (*models.Notice, error) {
	var notice models.Notice
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&notice); err != nil {
		return nil, err
	}
	return &notice, nil
}

// UpdateNotice applies set (and optionally unset) fields to a notice and
// returns the document as stored after the update.
func (r *NoticeRepository) UpdateNotice(ctx context.Context, id primitive.ObjectID, set bson.M, unset bson.M) (*models.Notice, error) {
	set["updated_at"] = time.Now()
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var notice models.Notice
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&notice)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			logger.Log.WithError(err).WithField("notice_id", id.Hex()).Error("Failed to update notice")
		}
		return nil, err
	}

	logger.Log.WithField("notice_id", id.Hex()).Info("Notice updated successfully")
	return &notice, nil
}

// DeleteNotice removes a notice and returns its final state.
func (r *NoticeRepository) DeleteNotice(ctx context.Context, id primitive.ObjectID) (*models.Notice, error) {
	var notice models.Notice
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&notice)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			logger.Log.WithError(err).WithField("notice_id", id.Hex()).Error("Failed to delete notice")
		}
		return nil, err
	}

	logger.Log.WithField("notice_id", id.Hex()).Info("Notice deleted successfully")
	return &notice, nil
}

// FindPage fetches one page of notices matching filter.
func (r *NoticeRepository) FindPage(ctx context.Context, filter bson.M, params paginate.Params) ([]models.Notice, paginate.Pagination, error) {
	return paginate.Find[models.Notice](ctx, r.collection, filter, params, noticeSortableFields)
}

// FindPublishedBetween returns published notices whose publish date falls in
// (from, to]. Used by the publish announcer.
func (r *NoticeRepository) FindPublishedBetween(ctx context.Context, from, to time.Time) ([]models.Notice, error) {
	filter := bson.M{
		"status":       models.NoticeStatusPublished,
		"publish_date": bson.M{"$gt": from, "$lte": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "publish_date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch recently published notices")
		return nil, err
	}
	defer cursor.Close(ctx)

	var notices []models.Notice
	if err := cursor.All(ctx, &notices); err != nil {
		return nil, err
	}
	return notices, nil
}

// CountNotices counts notices matching filter.
func (r *NoticeRepository) CountNotices(ctx context.Context, filter bson.M) (int64, error) {
	return r.collection.CountDocuments(ctx, filter)
}
