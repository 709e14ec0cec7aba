package movies

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/kailas-cloud/mflix/internal/domain"
)

// updateDoc converts a partial movie into a $set document. Only fields
// the client actually sent appear, so untouched fields survive the write.
func updateDoc(u *domain.MovieUpdate) bson.M {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Year != nil {
		set["year"] = *u.Year
	}
	if u.Plot != nil {
		set["plot"] = *u.Plot
	}
	if u.Fullplot != nil {
		set["fullplot"] = *u.Fullplot
	}
	if u.Released != nil {
		set["released"] = *u.Released
	}
	if u.Runtime != nil {
		set["runtime"] = *u.Runtime
	}
	if u.Rated != nil {
		set["rated"] = *u.Rated
	}
	if u.Poster != nil {
		set["poster"] = *u.Poster
	}
	if u.Genres != nil {
		set["genres"] = u.Genres
	}
	if u.Directors != nil {
		set["directors"] = u.Directors
	}
	if u.Writers != nil {
		set["writers"] = u.Writers
	}
	if u.Cast != nil {
		set["cast"] = u.Cast
	}
	if u.Countries != nil {
		set["countries"] = u.Countries
	}
	if u.Languages != nil {
		set["languages"] = u.Languages
	}
	return set
}
