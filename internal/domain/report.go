package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentSummary is one comment inside a movie comment report, with the
// commenter fields flattened.
type CommentSummary struct {
	UserName  string    `bson:"userName" json:"userName"`
	UserEmail string    `bson:"userEmail" json:"userEmail"`
	Text      string    `bson:"text" json:"text"`
	Date      time.Time `bson:"date" json:"date"`
}

// MovieComments is one row of the movies-with-comments report: a movie
// joined with its most recent comments, ordered by comment recency.
type MovieComments struct {
	ID             primitive.ObjectID `bson:"_id" json:"_id"`
	Title          string             `bson:"title" json:"title"`
	Year           *int               `bson:"year,omitempty" json:"year,omitempty"`
	Genres         []string           `bson:"genres,omitempty" json:"genres,omitempty"`
	IMDBRating     *float64           `bson:"imdbRating,omitempty" json:"imdbRating,omitempty"`
	TotalComments  int                `bson:"totalComments" json:"totalComments"`
	RecentComments []CommentSummary   `bson:"recentComments" json:"recentComments"`
}

// YearStats is one row of the per-year rating report.
type YearStats struct {
	Year          int     `bson:"year" json:"year"`
	MovieCount    int     `bson:"movieCount" json:"movieCount"`
	AverageRating float64 `bson:"averageRating" json:"averageRating"`
	HighestRating float64 `bson:"highestRating" json:"highestRating"`
	LowestRating  float64 `bson:"lowestRating" json:"lowestRating"`
	TotalVotes    int64   `bson:"totalVotes" json:"totalVotes"`
}

// DirectorStats is one row of the per-director report.
type DirectorStats struct {
	Director      string  `bson:"director" json:"director"`
	MovieCount    int     `bson:"movieCount" json:"movieCount"`
	AverageRating float64 `bson:"averageRating" json:"averageRating"`
}
