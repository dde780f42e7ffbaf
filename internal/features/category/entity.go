package category

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feature is one attribute the admin product form renders as a select, e.g.
// {Name: "colour", Values: ["White", "Pink", "Lace"]}. Features declared on
// an ancestor category apply to every descendant.
type Feature struct {
	Name   string   `json:"name" bson:"name"`
	Values []string `json:"values" bson:"values"`
}

type Category struct {
	CategoryID primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Name       string              `json:"name" bson:"name"`
	Slug       string              `json:"slug" bson:"slug"`
	Parent     *primitive.ObjectID `json:"parent,omitempty" bson:"parent,omitempty"`
	Features   []Feature           `json:"features" bson:"features"`
	Image      string              `json:"image,omitempty" bson:"image,omitempty"`
}
