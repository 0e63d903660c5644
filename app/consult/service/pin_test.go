package service

import (
	"encoding/json"
	"testing"

	"go-consult/app/consult/model"
)

func TestValidateGeometry(t *testing.T) {
	cases := []struct {
		name     string
		kind     string
		geometry string
		wantErr  bool
	}{
		{"point", model.PinKindPoint, `[-1.15, 52.95]`, false},
		{"point missing lat", model.PinKindPoint, `[-1.15]`, true},
		{"point as object", model.PinKindPoint, `{"lng":-1.15,"lat":52.95}`, true},
		{"line", model.PinKindLine, `[[-1.15,52.95],[-1.16,52.96]]`, false},
		{"line single position", model.PinKindLine, `[[-1.15,52.95]]`, true},
		{"polygon", model.PinKindPolygon, `[[[-1,52],[-1,53],[-2,53],[-1,52]]]`, false},
		{"polygon open ring", model.PinKindPolygon, `[[[-1,52],[-1,53],[-2,53]]]`, true},
		{"polygon no rings", model.PinKindPolygon, `[]`, true},
		{"unknown kind", "circle", `[-1.15, 52.95]`, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := validateGeometry(c.kind, json.RawMessage(c.geometry))
			if (err != nil) != c.wantErr {
				t.Errorf("want error %v got %v", c.wantErr, err)
			}
		})
	}
}
