package service

import (
	"testing"

	"go-consult/app/tours/model"
)

func TestReorder(t *testing.T) {
	stops := []model.TourStop{
		{Title: "a"},
		{Title: "b"},
		{Title: "c"},
	}

	got, err := reorder(stops, []int{2, 0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Title != "c" || got[1].Title != "a" || got[2].Title != "b" {
		t.Errorf("want c, a, b got %s, %s, %s", got[0].Title, got[1].Title, got[2].Title)
	}

	for name, order := range map[string][]int{
		"too short":    {0, 1},
		"too long":     {0, 1, 2, 2},
		"duplicate":    {0, 0, 1},
		"out of range": {0, 1, 3},
		"negative":     {0, 1, -1},
	} {
		if _, err := reorder(stops, order); err == nil {
			t.Errorf("%s: want error", name)
		}
	}

	if got, err := reorder(nil, nil); err != nil || len(got) != 0 {
		t.Errorf("empty tour must reorder to empty, got %v, %v", got, err)
	}
}
