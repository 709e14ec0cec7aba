package movies

import (
	"testing"

	"github.com/kailas-cloud/mflix/internal/domain"
)

func TestUpdateDoc_OnlyPresentFields(t *testing.T) {
	title := "Dune"
	year := 2021
	u := &domain.MovieUpdate{
		Title:  &title,
		Year:   &year,
		Genres: []string{"Sci-Fi"},
	}

	set := updateDoc(u)
	if len(set) != 3 {
		t.Fatalf("expected 3 fields, got %d: %v", len(set), set)
	}
	if set["title"] != "Dune" || set["year"] != 2021 {
		t.Errorf("unexpected values: %v", set)
	}
	if _, ok := set["plot"]; ok {
		t.Error("absent fields must not be written")
	}
}

func TestUpdateDoc_EmptyUpdate(t *testing.T) {
	if set := updateDoc(&domain.MovieUpdate{}); len(set) != 0 {
		t.Fatalf("expected empty document, got %v", set)
	}
}
