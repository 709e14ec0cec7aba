package movies

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/mflix/internal/domain/filter"
)

// ratingField is the nested field that rating bounds and sorting apply to.
const ratingField = "imdb.rating"

// sortFields maps the enumerated sort fields to document paths.
var sortFields = map[filter.SortField]string{
	filter.SortByTitle:  "title",
	filter.SortByYear:   "year",
	filter.SortByRating: ratingField,
}

// BuildFilter translates a filter spec into a find predicate. Each present
// dimension contributes one clause to the conjunction; absent dimensions
// contribute nothing.
func BuildFilter(spec *filter.Spec) bson.M {
	q := bson.M{}

	if spec.Query() != "" {
		q["$text"] = bson.M{"$search": spec.Query()}
	}
	if spec.Title() != "" {
		q["title"] = primitive.Regex{Pattern: spec.Title(), Options: "i"}
	}
	if spec.Genre() != "" {
		// Equality on an array field matches list membership.
		q["genres"] = spec.Genre()
	}
	if spec.Year() != nil {
		q["year"] = *spec.Year()
	}
	if spec.MinRating() != nil || spec.MaxRating() != nil {
		bounds := bson.M{}
		if spec.MinRating() != nil {
			bounds["$gte"] = *spec.MinRating()
		}
		if spec.MaxRating() != nil {
			bounds["$lte"] = *spec.MaxRating()
		}
		q[ratingField] = bounds
	}

	return q
}

// BuildSort translates the sort dimension into a sort document. An empty
// result means natural order.
func BuildSort(spec *filter.Spec) bson.D {
	path, ok := sortFields[spec.SortBy()]
	if !ok {
		return nil
	}
	dir := 1
	if spec.SortOrder() == filter.Desc {
		dir = -1
	}
	return bson.D{{Key: path, Value: dir}}
}
