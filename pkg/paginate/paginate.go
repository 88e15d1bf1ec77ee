package paginate

import (
	"context"
	"fmt"

	"github.com/Temirlan472/Office_Board/pkg/apperror"
	"github.com/Temirlan472/Office_Board/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Params describes one requested page of a filtered, sorted query.
type Params struct {
	Page      int64
	Limit     int64
	SortField string
	SortOrder string
}

// Pagination is the navigation metadata returned alongside every page.
type Pagination struct {
	CurrentPage int64 `json:"currentPage"`
	TotalPages  int64 `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// Normalize clamps page and limit to a minimum of 1 and falls back to
// descending order on any unrecognized sort order.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 1
	}
	if p.SortOrder != OrderAsc {
		p.SortOrder = OrderDesc
	}
	return p
}

// SortValue converts the order into the value Mongo expects in a sort document.
func (p Params) SortValue() int {
	if p.SortOrder == OrderAsc {
		return 1
	}
	return -1
}

// NewPagination computes the navigation metadata for a page. page and limit
// must already be normalized.
func NewPagination(totalItems, page, limit int64) Pagination {
	totalPages := (totalItems + limit - 1) / limit
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// Find runs the count+fetch pair for one page of documents matching filter.
//
// The count and the fetch use the same logical filter but are two separate
// store calls with no snapshot isolation between them: under concurrent
// writes TotalItems may disagree with the returned page. This is an accepted
// trade-off, do not wrap the pair in a transaction.
func Find[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, params Params, sortable map[string]bool) ([]T, Pagination, error) {
	params = params.Normalize()

	if !sortable[params.SortField] {
		return nil, Pagination{}, apperror.InvalidQuery(fmt.Sprintf("cannot sort by field %q", params.SortField))
	}

	totalItems, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to count documents for pagination")
		return nil, Pagination{}, fmt.Errorf("failed to count documents: %v", err)
	}

	skip := (params.Page - 1) * params.Limit
	findOptions := options.Find().
		SetSkip(skip).
		SetLimit(params.Limit).
		SetSort(bson.D{{Key: params.SortField, Value: params.SortValue()}})

	cursor, err := coll.Find(ctx, filter, findOptions)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch page of documents")
		return nil, Pagination{}, fmt.Errorf("failed to fetch documents: %v", err)
	}
	defer cursor.Close(ctx)

	results := make([]T, 0, params.Limit)
	if err := cursor.All(ctx, &results); err != nil {
		logger.Log.WithError(err).Error("Failed to decode page of documents")
		return nil, Pagination{}, fmt.Errorf("failed to decode documents: %v", err)
	}

	return results, NewPagination(totalItems, params.Page, params.Limit), nil
}
