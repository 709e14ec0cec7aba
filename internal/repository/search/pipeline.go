package search

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kailas-cloud/mflix/internal/domain/search"
)

// Index names created on the Atlas cluster.
const (
	TextIndex   = "movieSearchIndex"
	VectorIndex = "vector_index"
)

// VectorPath is the embedding field on the embedded_movies collection.
const VectorPath = "plot_embedding_voyage_3_large"

// candidateMultiplier oversizes the ANN candidate pool relative to the
// requested limit to improve result relevance.
const candidateMultiplier = 20

// phraseClause matches an exact phrase on one field.
func phraseClause(query, path string) bson.M {
	return bson.M{"phrase": bson.M{"query": query, "path": path}}
}

// personClause matches a name field with a scoring hierarchy: exact phrase
// first, then exact text, then a typo-tolerant fuzzy fallback.
func personClause(query, path string) bson.M {
	return bson.M{
		"compound": bson.M{
			"should": []bson.M{
				phraseClause(query, path),
				{"text": bson.M{"query": query, "path": path, "matchCriteria": "all"}},
				{"text": bson.M{
					"query": query, "path": path, "matchCriteria": "all",
					"fuzzy": bson.M{"maxEdits": 1, "prefixLength": 2},
				}},
			},
			"minimumShouldMatch": 1,
		},
	}
}

// resultProjection lists the movie fields returned by text search.
var resultProjection = bson.M{
	"_id": 1, "title": 1, "year": 1, "plot": 1, "fullplot": 1,
	"released": 1, "runtime": 1, "poster": 1, "genres": 1,
	"directors": 1, "writers": 1, "cast": 1, "countries": 1,
	"languages": 1, "rated": 1, "awards": 1, "imdb": 1,
}

// BuildTextPipeline assembles the $search pipeline: one clause per present
// field under the request's compound operator, then a $facet that returns
// the page alongside an exact total count for pagination.
func BuildTextPipeline(req *search.Request) mongo.Pipeline {
	var clauses []bson.M
	if req.Plot() != "" {
		clauses = append(clauses, phraseClause(req.Plot(), "plot"))
	}
	if req.Fullplot() != "" {
		clauses = append(clauses, phraseClause(req.Fullplot(), "fullplot"))
	}
	if req.Directors() != "" {
		clauses = append(clauses, personClause(req.Directors(), "directors"))
	}
	if req.Writers() != "" {
		clauses = append(clauses, personClause(req.Writers(), "writers"))
	}
	if req.Cast() != "" {
		clauses = append(clauses, personClause(req.Cast(), "cast"))
	}

	cursor := req.Cursor()
	return mongo.Pipeline{
		{{Key: "$search", Value: bson.M{
			"index": TextIndex,
			"compound": bson.M{
				string(req.Operator()): clauses,
			},
		}}},
		{{Key: "$facet", Value: bson.M{
			"totalCount": []bson.M{{"$count": "count"}},
			"results": []bson.M{
				{"$skip": cursor.Skip()},
				{"$limit": cursor.Limit()},
				{"$project": resultProjection},
			},
		}}},
	}
}

// BuildVectorPipeline assembles the $vectorSearch pipeline over the plot
// embedding field, projecting a movie summary plus the similarity score.
func BuildVectorPipeline(queryVector []float32, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$vectorSearch", Value: bson.M{
			"index":         VectorIndex,
			"path":          VectorPath,
			"queryVector":   queryVector,
			"numCandidates": limit * candidateMultiplier,
			"limit":         limit,
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":       1,
			"title":     1,
			"plot":      1,
			"poster":    1,
			"year":      1,
			"genres":    1,
			"directors": 1,
			"cast":      1,
			"score":     bson.M{"$meta": "vectorSearchScore"},
		}}},
	}
}
