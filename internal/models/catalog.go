package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups listings by phone brand.
type Category struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name  string             `bson:"name" json:"name"`
	Image string             `bson:"image,omitempty" json:"image,omitempty"`
}

// BlogPost is an article shown on the public blog page.
type BlogPost struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title  string             `bson:"title" json:"title"`
	Body   string             `bson:"body" json:"body"`
	Author string             `bson:"author,omitempty" json:"author,omitempty"`
	Posted time.Time          `bson:"posted" json:"posted"`
}

// FAQ is one question and answer pair.
type FAQ struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Question string             `bson:"question" json:"question"`
	Answer   string             `bson:"answer" json:"answer"`
}

// Stats holds approximate collection sizes.
type Stats struct {
	Users    int64 `json:"users"`
	Products int64 `json:"products"`
	Bookings int64 `json:"bookings"`
}
