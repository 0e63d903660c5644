package service

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	ext "go-consult/config"
)

var (
	ErrDatabase = errors.New("database error")
	ErrNoDoc    = errors.New("document not found")
)

type ToursService struct {
	MongodbClient  *mongo.Client
	MongodbDB      *mongo.Database
	CollectionTour *mongo.Collection
}

func NewToursService(mongodbClient *mongo.Client) *ToursService {
	cfg := ext.ExtConfig.Mongodb
	db := mongodbClient.Database(cfg.ToursDB)
	return &ToursService{
		MongodbClient:  mongodbClient,
		MongodbDB:      db,
		CollectionTour: db.Collection("tour"),
	}
}

func InitObjectID(id *primitive.ObjectID) {
	if id.IsZero() {
		*id = primitive.NewObjectID()
	}
}
