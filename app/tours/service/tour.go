package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-consult/app/tours/model"
	"go-consult/common/log"
)

func (svc *ToursService) CreateTour(ctx context.Context, req model.Tour) (model.Tour, error) {
	InitObjectID(&req.ID)
	req.EmbedToken = uuid.NewString()
	req.Published = false
	req.CreateTime = time.Now()
	req.UpdateTime = req.CreateTime
	if req.Stops == nil {
		req.Stops = []model.TourStop{}
	}
	if _, err := svc.CollectionTour.InsertOne(ctx, req); err != nil {
		log.Logger().WithContext(ctx).Error("create tour: ", err.Error())
		return model.Tour{}, ErrDatabase
	}
	return req, nil
}

// UpdateTour replaces title, intro and stops. The embed token and the
// published flag are managed by their own operations.
func (svc *ToursService) UpdateTour(ctx context.Context, req model.Tour) (model.Tour, error) {
	data := bson.M{"$set": bson.M{
		"title":      req.Title,
		"intro":      req.Intro,
		"stops":      req.Stops,
		"updateTime": time.Now(),
	}}
	result, err := svc.CollectionTour.UpdateByID(ctx, req.ID, data)
	if err != nil {
		log.Logger().WithContext(ctx).Error("update tour: ", err.Error())
		return model.Tour{}, ErrDatabase
	}
	if result.MatchedCount == 0 {
		return model.Tour{}, ErrNoDoc
	}
	return svc.GetTour(ctx, req.ID)
}

func (svc *ToursService) DeleteTour(ctx context.Context, id primitive.ObjectID) error {
	if _, err := svc.CollectionTour.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		log.Logger().WithContext(ctx).Error("delete tour: ", err.Error())
		return ErrDatabase
	}
	log.Logger().WithContext(ctx).Warnf("delete tour:%s", id.Hex())
	return nil
}

func (svc *ToursService) GetTour(ctx context.Context, id primitive.ObjectID) (model.Tour, error) {
	var tour model.Tour
	if err := svc.CollectionTour.FindOne(ctx, bson.M{"_id": id}).Decode(&tour); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Tour{}, ErrNoDoc
		}
		log.Logger().WithContext(ctx).Error("get tour: ", err.Error())
		return model.Tour{}, ErrDatabase
	}
	return tour, nil
}

func (svc *ToursService) GetProjectTours(ctx context.Context, projectID int) ([]model.Tour, error) {
	cursor, err := svc.CollectionTour.Find(ctx, bson.M{"projectId": projectID},
		options.Find().SetSort(bson.D{{Key: "createTime", Value: -1}}))
	if err != nil {
		log.Logger().WithContext(ctx).Error("get project tours: ", err.Error())
		return nil, ErrDatabase
	}
	tours := make([]model.Tour, 0)
	if err = cursor.All(ctx, &tours); err != nil {
		log.Logger().WithContext(ctx).Error("get project tours: ", err.Error())
		return nil, ErrDatabase
	}
	return tours, nil
}

// ReorderStops rearranges a tour's stops. order must be a permutation of the
// current stop indexes.
func (svc *ToursService) ReorderStops(ctx context.Context, id primitive.ObjectID, order []int) (model.Tour, error) {
	tour, err := svc.GetTour(ctx, id)
	if err != nil {
		return model.Tour{}, err
	}
	stops, err := reorder(tour.Stops, order)
	if err != nil {
		return model.Tour{}, err
	}
	tour.Stops = stops
	return svc.UpdateTour(ctx, tour)
}

func reorder(stops []model.TourStop, order []int) ([]model.TourStop, error) {
	if len(order) != len(stops) {
		return nil, errors.New("order must list every stop exactly once")
	}
	seen := make(map[int]struct{}, len(order))
	out := make([]model.TourStop, 0, len(stops))
	for _, idx := range order {
		if idx < 0 || idx >= len(stops) {
			return nil, errors.New("stop index out of range")
		}
		if _, dup := seen[idx]; dup {
			return nil, errors.New("order must list every stop exactly once")
		}
		seen[idx] = struct{}{}
		out = append(out, stops[idx])
	}
	return out, nil
}

func (svc *ToursService) SetTourPublished(ctx context.Context, id primitive.ObjectID, published bool) error {
	result, err := svc.CollectionTour.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"published":  published,
		"updateTime": time.Now(),
	}})
	if err != nil {
		log.Logger().WithContext(ctx).Error("set tour published: ", err.Error())
		return ErrDatabase
	}
	if result.MatchedCount == 0 {
		return ErrNoDoc
	}
	return nil
}

// GetTourByEmbedToken backs the public embed. Unpublished tours are
// indistinguishable from missing ones.
func (svc *ToursService) GetTourByEmbedToken(ctx context.Context, token string) (model.Tour, error) {
	var tour model.Tour
	err := svc.CollectionTour.FindOne(ctx, bson.M{"embedToken": token, "published": true}).Decode(&tour)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Tour{}, ErrNoDoc
		}
		log.Logger().WithContext(ctx).Error("get tour by token: ", err.Error())
		return model.Tour{}, ErrDatabase
	}
	return tour, nil
}
