package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Movie is a document in the movies collection. Optional fields are pointers
// or omitempty slices: absence means "not present", never a zero sentinel.
type Movie struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title      string             `bson:"title" json:"title"`
	Year       *int               `bson:"year,omitempty" json:"year,omitempty"`
	Plot       *string            `bson:"plot,omitempty" json:"plot,omitempty"`
	Fullplot   *string            `bson:"fullplot,omitempty" json:"fullplot,omitempty"`
	Released   *time.Time         `bson:"released,omitempty" json:"released,omitempty"`
	Runtime    *int               `bson:"runtime,omitempty" json:"runtime,omitempty"`
	Rated      *string            `bson:"rated,omitempty" json:"rated,omitempty"`
	Poster     *string            `bson:"poster,omitempty" json:"poster,omitempty"`
	Genres     []string           `bson:"genres,omitempty" json:"genres,omitempty"`
	Directors  []string           `bson:"directors,omitempty" json:"directors,omitempty"`
	Writers    []string           `bson:"writers,omitempty" json:"writers,omitempty"`
	Cast       []string           `bson:"cast,omitempty" json:"cast,omitempty"`
	Countries  []string           `bson:"countries,omitempty" json:"countries,omitempty"`
	Languages  []string           `bson:"languages,omitempty" json:"languages,omitempty"`
	Awards     *Awards            `bson:"awards,omitempty" json:"awards,omitempty"`
	IMDB       *IMDB              `bson:"imdb,omitempty" json:"imdb,omitempty"`
	Tomatoes   *Tomatoes          `bson:"tomatoes,omitempty" json:"tomatoes,omitempty"`
	Metacritic *int               `bson:"metacritic,omitempty" json:"metacritic,omitempty"`
}

// Awards summarizes festival wins and nominations.
type Awards struct {
	Wins        *int    `bson:"wins,omitempty" json:"wins,omitempty"`
	Nominations *int    `bson:"nominations,omitempty" json:"nominations,omitempty"`
	Text        *string `bson:"text,omitempty" json:"text,omitempty"`
}

// IMDB holds the nested IMDB rating block.
type IMDB struct {
	Rating *float64 `bson:"rating,omitempty" json:"rating,omitempty"`
	Votes  *int     `bson:"votes,omitempty" json:"votes,omitempty"`
	ID     *int     `bson:"id,omitempty" json:"id,omitempty"`
}

// TomatoesSide is one side (viewer or critic) of a Rotten Tomatoes block.
type TomatoesSide struct {
	Rating     *float64 `bson:"rating,omitempty" json:"rating,omitempty"`
	NumReviews *int     `bson:"numReviews,omitempty" json:"numReviews,omitempty"`
	Meter      *int     `bson:"meter,omitempty" json:"meter,omitempty"`
}

// Tomatoes holds the nested Rotten Tomatoes rating block.
type Tomatoes struct {
	Viewer      *TomatoesSide `bson:"viewer,omitempty" json:"viewer,omitempty"`
	Critic      *TomatoesSide `bson:"critic,omitempty" json:"critic,omitempty"`
	Fresh       *int          `bson:"fresh,omitempty" json:"fresh,omitempty"`
	Rotten      *int          `bson:"rotten,omitempty" json:"rotten,omitempty"`
	Production  *string       `bson:"production,omitempty" json:"production,omitempty"`
	LastUpdated *time.Time    `bson:"lastUpdated,omitempty" json:"lastUpdated,omitempty"`
}

// Validate checks invariants for a movie submitted by a client.
func (m *Movie) Validate() error {
	if m.Title == "" {
		return ErrTitleRequired
	}
	if m.Runtime != nil && *m.Runtime <= 0 {
		return ErrRuntimeInvalid
	}
	return nil
}

// ScoredMovie is a vector search hit: a movie projection plus its
// similarity score (higher is more similar).
type ScoredMovie struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Title     string             `bson:"title" json:"title"`
	Plot      *string            `bson:"plot,omitempty" json:"plot,omitempty"`
	Poster    *string            `bson:"poster,omitempty" json:"poster,omitempty"`
	Year      *int               `bson:"year,omitempty" json:"year,omitempty"`
	Genres    []string           `bson:"genres,omitempty" json:"genres,omitempty"`
	Directors []string           `bson:"directors,omitempty" json:"directors,omitempty"`
	Cast      []string           `bson:"cast,omitempty" json:"cast,omitempty"`
	Score     float64            `bson:"score" json:"score"`
}
