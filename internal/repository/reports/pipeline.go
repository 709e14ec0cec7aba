package reports

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	dbmongo "github.com/kailas-cloud/mflix/internal/db/mongo"
)

// Result caps for the comments report. A single-movie query may return
// more rows than a catalog-wide one since it is already narrow.
const (
	commentsCapSingle  = 50
	commentsCapCatalog = 20
)

// numericYear keeps only documents whose year field is an actual number.
// The dataset contains years stored as strings like "2005è".
var numericYear = bson.M{"$type": "number"}

// validRating treats imdb.rating as usable only when it is a non-null,
// non-empty double. Missing and malformed ratings drop out of the
// accumulator via $$REMOVE.
func validRating() bson.M {
	return bson.M{
		"$cond": []any{
			bson.M{"$and": []bson.M{
				{"$ne": []any{"$imdb.rating", nil}},
				{"$ne": []any{"$imdb.rating", ""}},
				{"$eq": []any{bson.M{"$type": "$imdb.rating"}, "double"}},
			}},
			"$imdb.rating",
			"$$REMOVE",
		},
	}
}

// BuildCommentsPipeline joins movies with their comments, keeps the most
// recent limit comments per movie, and orders movies by latest comment.
// A non-nil movieID narrows the report to that one movie.
func BuildCommentsPipeline(movieID *primitive.ObjectID, limit int) mongo.Pipeline {
	match := bson.M{"year": numericYear}
	rowCap := commentsCapCatalog
	if movieID != nil {
		match["_id"] = *movieID
		rowCap = commentsCapSingle
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from":         dbmongo.CommentsCollection,
			"localField":   "_id",
			"foreignField": "movie_id",
			"as":           "comments",
		}}},
		{{Key: "$match", Value: bson.M{"comments": bson.M{"$ne": []any{}}}}},
		{{Key: "$addFields", Value: bson.M{
			"recentComments": bson.M{
				"$slice": []any{
					bson.M{"$sortArray": bson.M{
						"input":  "$comments",
						"sortBy": bson.M{"date": -1},
					}},
					limit,
				},
			},
			"mostRecentCommentDate": bson.M{"$max": "$comments.date"},
		}}},
		{{Key: "$sort", Value: bson.M{"mostRecentCommentDate": -1}}},
		{{Key: "$limit", Value: rowCap}},
		{{Key: "$project", Value: bson.M{
			"_id":        1,
			"title":      1,
			"year":       1,
			"genres":     1,
			"imdbRating": "$imdb.rating",
			"recentComments": bson.M{
				"$map": bson.M{
					"input": "$recentComments",
					"as":    "comment",
					"in": bson.M{
						"userName":  "$$comment.name",
						"userEmail": "$$comment.email",
						"text":      "$$comment.text",
						"date":      "$$comment.date",
					},
				},
			},
			"totalComments": bson.M{"$size": "$comments"},
		}}},
	}
}

// BuildYearlyPipeline groups movies by release year and computes rating
// statistics per year, newest years first.
func BuildYearlyPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"year": numericYear}}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$year",
			"movieCount":    bson.M{"$sum": 1},
			"averageRating": bson.M{"$avg": validRating()},
			"highestRating": bson.M{"$max": validRating()},
			"lowestRating":  bson.M{"$min": validRating()},
			"totalVotes":    bson.M{"$sum": "$imdb.votes"},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":           0,
			"year":          "$_id",
			"movieCount":    1,
			"averageRating": bson.M{"$round": []any{"$averageRating", 2}},
			"highestRating": 1,
			"lowestRating":  1,
			"totalVotes":    1,
		}}},
		{{Key: "$sort", Value: bson.M{"year": -1}}},
	}
}

// BuildDirectorsPipeline unwinds the directors array and ranks directors
// by the number of movies they directed.
func BuildDirectorsPipeline(limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"directors": bson.M{"$exists": true, "$ne": []any{}},
			"year":      numericYear,
		}}},
		{{Key: "$unwind", Value: "$directors"}},
		{{Key: "$match", Value: bson.M{"directors": bson.M{"$nin": []any{nil, ""}}}}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$directors",
			"movieCount":    bson.M{"$sum": 1},
			"averageRating": bson.M{"$avg": "$imdb.rating"},
		}}},
		{{Key: "$sort", Value: bson.M{"movieCount": -1}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.M{
			"_id":           0,
			"director":      "$_id",
			"movieCount":    1,
			"averageRating": bson.M{"$round": []any{"$averageRating", 2}},
		}}},
	}
}
