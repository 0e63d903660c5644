package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tour is a guided walkthrough of a project's map, embeddable on external
// sites via its token. Stops are stored inline, in presentation order.
type Tour struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	ProjectID  int                `bson:"projectId" json:"projectId"`
	Title      string             `bson:"title" json:"title"`
	Intro      string             `bson:"intro,omitempty" json:"intro,omitempty"`
	EmbedToken string             `bson:"embedToken" json:"embedToken"`
	Published  bool               `bson:"published" json:"published"`
	Stops      []TourStop         `bson:"stops" json:"stops"`
	CreateTime time.Time          `bson:"createTime,omitempty" json:"createTime,omitempty"`
	UpdateTime time.Time          `bson:"updateTime,omitempty" json:"updateTime,omitempty"`
}

type TourStop struct {
	Title    string `bson:"title" json:"title"`
	Body     string `bson:"body,omitempty" json:"body,omitempty"`
	ImageKey string `bson:"imageKey,omitempty" json:"imageKey,omitempty"`
	Camera   Camera `bson:"camera" json:"camera"`
}

// Camera is the map viewpoint a stop flies to.
type Camera struct {
	Longitude float64 `bson:"lng" json:"lng"`
	Latitude  float64 `bson:"lat" json:"lat"`
	Zoom      float64 `bson:"zoom" json:"zoom"`
	Bearing   float64 `bson:"bearing,omitempty" json:"bearing,omitempty"`
	Pitch     float64 `bson:"pitch,omitempty" json:"pitch,omitempty"`
}
