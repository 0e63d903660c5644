package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-consult/app/consult/model"
	"go-consult/config"
)

func TestNormalizeWardName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Abbey Ward", "abbey"},
		{"abbey", "abbey"},
		{"  St. Mary's   Ward ", "st. mary's"},
		{"WARD", ""},
		{"", ""},
		{"Castle Ward North", "castle north"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got := normalizeWardName(c.in)
			if got != c.want {
				t.Errorf("want %q got %q", c.want, got)
			}
		})
	}
}

func TestWardNamesMatch(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"Abbey Ward", "abbey", true},
		{"abbey", "Abbey Ward", true},
		{"Castle Ward North", "castle", true},
		{"castle", "Castle Ward North", true},
		{"Castle North", "Castle Ward North", true},
		{"Abbey", "Bridge", false},
		{"", "abbey", false},
		{"ward", "ward", false},
	}
	for _, c := range cases {
		got := wardNamesMatch(c.a, c.b)
		if got != c.want {
			t.Errorf("wardNamesMatch(%q, %q): want %v got %v", c.a, c.b, c.want, got)
		}
	}
}

func TestMatchCouncillors(t *testing.T) {
	councillors := []model.Councillor{
		{Name: "A", Ward: "Abbey Ward"},
		{Name: "B", Ward: "Abbey Ward"},
		{Name: "C", Ward: "Bridge Ward"},
		{Name: "D", Ward: ""},
	}
	got := MatchCouncillors(councillors, "abbey")
	if len(got) != 2 {
		t.Fatalf("want 2 got %d", len(got))
	}
	if got[0].Name != "A" || got[1].Name != "B" {
		t.Errorf("want A, B got %s, %s", got[0].Name, got[1].Name)
	}
	if len(MatchCouncillors(councillors, "")) != 0 {
		t.Errorf("empty ward must match nothing")
	}
}

func TestLookupPostcode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/postcodes", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"result":[{
			"postcode":"SW1A 1AA",
			"admin_district":"Westminster",
			"admin_ward":"St James's",
			"parish":"Westminster, unparished area",
			"parliamentary_constituency":"Cities of London and Westminster",
			"codes":{"admin_district":"E09000033"}
		}]}`))
	}))
	defer srv.Close()
	config.ExtConfig.Civic.PostcodesBaseURL = srv.URL
	defer func() { config.ExtConfig.Civic.PostcodesBaseURL = "" }()

	info, ok, err := LookupPostcode(context.Background(), 51.501, -0.1416)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "SW1A 1AA", info.Postcode)
	assert.Equal(t, "St James's", info.AdminWard)
	assert.Equal(t, "Cities of London and Westminster", info.Constituency)
	assert.Equal(t, "E09000033", info.CouncilCode)
}

func TestLookupPostcodeOffshore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"result":null}`))
	}))
	defer srv.Close()
	config.ExtConfig.Civic.PostcodesBaseURL = srv.URL
	defer func() { config.ExtConfig.Civic.PostcodesBaseURL = "" }()

	_, ok, err := LookupPostcode(context.Background(), 49.0, -10.0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLookupMP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Location/Constituency/Search", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"value":{
			"name":"Cities of London and Westminster",
			"currentRepresentation":{"member":{"value":{
				"id":4837,
				"nameDisplayAs":"Some Member",
				"latestParty":{"name":"Independent"}
			}}}
		}}]}`))
	}))
	defer srv.Close()
	config.ExtConfig.Civic.ParliamentBaseURL = srv.URL
	defer func() { config.ExtConfig.Civic.ParliamentBaseURL = "" }()

	mp, ok, err := LookupMP(context.Background(), "Cities of London and Westminster")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Some Member", mp.Name)
	assert.Equal(t, "Independent", mp.Party)
	assert.Equal(t, 4837, mp.MemberID)
}

func TestLookupMPVacantSeat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"value":{"name":"Somewhere","currentRepresentation":{"member":{"value":{}}}}}]}`))
	}))
	defer srv.Close()
	config.ExtConfig.Civic.ParliamentBaseURL = srv.URL
	defer func() { config.ExtConfig.Civic.ParliamentBaseURL = "" }()

	_, ok, err := LookupMP(context.Background(), "Somewhere")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLookupAreas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"2514":{"id":2514,"name":"Rushcliffe Borough Council","type":"DIS","codes":{"gss":"E07000176"}},
			"8412":{"id":8412,"name":"Abbey","type":"DIW","codes":{"gss":"E05009701"}}
		}`))
	}))
	defer srv.Close()
	config.ExtConfig.Civic.MapItBaseURL = srv.URL
	defer func() { config.ExtConfig.Civic.MapItBaseURL = "" }()

	areas, err := LookupAreas(context.Background(), 52.93, -1.12)
	require.NoError(t, err)
	require.Len(t, areas, 2)

	council, ok := pickArea(areas, councilTypes)
	require.True(t, ok)
	assert.Equal(t, "E07000176", council.GSS)

	ward, ok := pickArea(areas, wardTypes)
	require.True(t, ok)
	assert.Equal(t, "Abbey", ward.Name)

	_, ok = pickArea(areas, parishTypes)
	assert.False(t, ok)
}
