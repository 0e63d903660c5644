package service

import (
	"encoding/json"
	"testing"
)

func TestValidateQuestions(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"empty set", `[]`, false},
		{"text question", `[{"id":"q1","label":"Your thoughts","kind":"text"}]`, false},
		{"choice with options", `[{"id":"q1","label":"Mode","kind":"choice","options":["walk","cycle"]}]`, false},
		{"rating", `[{"id":"q1","label":"Score","kind":"rating","required":true}]`, false},
		{"not an array", `{"id":"q1"}`, true},
		{"missing id", `[{"label":"Your thoughts","kind":"text"}]`, true},
		{"missing label", `[{"id":"q1","kind":"text"}]`, true},
		{"unknown kind", `[{"id":"q1","label":"X","kind":"slider"}]`, true},
		{"choice without options", `[{"id":"q1","label":"Mode","kind":"choice"}]`, true},
		{"multiple without options", `[{"id":"q1","label":"Mode","kind":"multiple"}]`, true},
		{"duplicate id", `[{"id":"q1","label":"A","kind":"text"},{"id":"q1","label":"B","kind":"text"}]`, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := validateQuestions(json.RawMessage(c.raw))
			if (err != nil) != c.wantErr {
				t.Errorf("want error %v got %v", c.wantErr, err)
			}
		})
	}
}
