package mongostore

import (
	"github.com/linemk/shop-catalog/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ordersByUserPipeline: $match -> $sort -> $skip -> $limit -> productIds -> $lookup -> $project.
// productId хранится строкой, поэтому перед $lookup он приводится к ObjectId;
// некорректные значения превращаются в null и ни с чем не совпадают.
func ordersByUserPipeline(userID string, page models.Page, productsCollection string) mongo.Pipeline {
	toObjectID := bson.D{{Key: "$convert", Value: bson.D{
		{Key: "input", Value: "$$item.productId"},
		{Key: "to", Value: "objectId"},
		{Key: "onError", Value: nil},
		{Key: "onNull", Value: nil},
	}}}

	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "userId", Value: userID}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$skip", Value: page.Offset}},
		{{Key: "$limit", Value: page.Limit}},
		{{Key: "$addFields", Value: bson.D{{Key: "productIds", Value: bson.D{{Key: "$map", Value: bson.D{
			{Key: "input", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$items", bson.A{}}}}},
			{Key: "as", Value: "item"},
			{Key: "in", Value: toObjectID},
		}}}}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: productsCollection},
			{Key: "localField", Value: "productIds"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "products"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "userId", Value: 1},
			{Key: "items", Value: 1},
			{Key: "products._id", Value: 1},
			{Key: "products.name", Value: 1},
			{Key: "products.price", Value: 1},
		}}},
	}
}
