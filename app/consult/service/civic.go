package service

import (
	"fmt"
	"strings"

	"context"

	"github.com/go-resty/resty/v2"

	"go-consult/app/consult"
	"go-consult/app/consult/model"
	"go-consult/config"
)

var civicClient = resty.New()

const (
	defaultPostcodesBaseURL  = "https://api.postcodes.io"
	defaultParliamentBaseURL = "https://members-api.parliament.uk"
	defaultMapItBaseURL      = "https://mapit.mysociety.org"
)

func postcodesBaseURL() string {
	if u := config.ExtConfig.Civic.PostcodesBaseURL; u != "" {
		return u
	}
	return defaultPostcodesBaseURL
}

func parliamentBaseURL() string {
	if u := config.ExtConfig.Civic.ParliamentBaseURL; u != "" {
		return u
	}
	return defaultParliamentBaseURL
}

func mapItBaseURL() string {
	if u := config.ExtConfig.Civic.MapItBaseURL; u != "" {
		return u
	}
	return defaultMapItBaseURL
}

// PostcodeInfo is the slice of a postcodes.io reverse-geocode result the
// detection pipeline cares about.
type PostcodeInfo struct {
	Postcode      string
	AdminDistrict string
	AdminWard     string
	Parish        string
	Constituency  string
	CouncilCode   string
}

// LookupPostcode reverse-geocodes a coordinate. ok is false when the point
// has no covering postcode (offshore, for instance); that is not an error.
func LookupPostcode(ctx context.Context, lat, lng float64) (PostcodeInfo, bool, error) {
	var got struct {
		Status int `json:"status"`
		Result []struct {
			Postcode                  string `json:"postcode"`
			AdminDistrict             string `json:"admin_district"`
			AdminWard                 string `json:"admin_ward"`
			Parish                    string `json:"parish"`
			ParliamentaryConstituency string `json:"parliamentary_constituency"`
			Codes                     struct {
				AdminDistrict string `json:"admin_district"`
			} `json:"codes"`
		} `json:"result"`
	}
	resp, err := civicClient.R().SetContext(ctx).
		SetQueryParams(map[string]string{
			"lon":   fmt.Sprintf("%f", lng),
			"lat":   fmt.Sprintf("%f", lat),
			"limit": "1",
		}).
		SetResult(&got).
		Get(postcodesBaseURL() + "/postcodes")
	if err != nil {
		consult.Logger().WithContext(ctx).Error("postcodes.io: ", err.Error())
		return PostcodeInfo{}, false, err
	}
	if resp.StatusCode() != 200 || len(got.Result) == 0 {
		return PostcodeInfo{}, false, nil
	}
	r := got.Result[0]
	return PostcodeInfo{
		Postcode:      r.Postcode,
		AdminDistrict: r.AdminDistrict,
		AdminWard:     r.AdminWard,
		Parish:        r.Parish,
		Constituency:  r.ParliamentaryConstituency,
		CouncilCode:   r.Codes.AdminDistrict,
	}, true, nil
}

type MPInfo struct {
	Name         string
	Party        string
	Constituency string
	MemberID     int
}

// LookupMP resolves the sitting MP for a constituency name through the UK
// Parliament Members API.
func LookupMP(ctx context.Context, constituency string) (MPInfo, bool, error) {
	var got struct {
		Items []struct {
			Value struct {
				Name                  string `json:"name"`
				CurrentRepresentation struct {
					Member struct {
						Value struct {
							ID            int    `json:"id"`
							NameDisplayAs string `json:"nameDisplayAs"`
							LatestParty   struct {
								Name string `json:"name"`
							} `json:"latestParty"`
						} `json:"value"`
					} `json:"member"`
				} `json:"currentRepresentation"`
			} `json:"value"`
		} `json:"items"`
	}
	resp, err := civicClient.R().SetContext(ctx).
		SetQueryParams(map[string]string{
			"searchText": constituency,
			"skip":       "0",
			"take":       "1",
		}).
		SetResult(&got).
		Get(parliamentBaseURL() + "/api/Location/Constituency/Search")
	if err != nil {
		consult.Logger().WithContext(ctx).Error("parliament api: ", err.Error())
		return MPInfo{}, false, err
	}
	if resp.StatusCode() != 200 || len(got.Items) == 0 {
		return MPInfo{}, false, nil
	}
	m := got.Items[0].Value.CurrentRepresentation.Member.Value
	if m.NameDisplayAs == "" {
		// vacant seat
		return MPInfo{}, false, nil
	}
	return MPInfo{
		Name:         m.NameDisplayAs,
		Party:        m.LatestParty.Name,
		Constituency: got.Items[0].Value.Name,
		MemberID:     m.ID,
	}, true, nil
}

type MapItArea struct {
	ID   int
	Name string
	Type string
	GSS  string
}

// council/ward/parish area type codes per MapIt.
var (
	councilTypes = map[string]bool{"UTA": true, "DIS": true, "MTD": true, "LBO": true, "CTY": true, "LGD": true}
	wardTypes    = map[string]bool{"DIW": true, "UTW": true, "MTW": true, "LBW": true, "CED": true, "UTE": true, "LGW": true}
	parishTypes  = map[string]bool{"CPC": true, "COP": true}
)

// LookupAreas fetches every administrative area covering a point.
func LookupAreas(ctx context.Context, lat, lng float64) ([]MapItArea, error) {
	got := map[string]struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Type  string `json:"type"`
		Codes struct {
			GSS string `json:"gss"`
		} `json:"codes"`
	}{}
	req := civicClient.R().SetContext(ctx).SetResult(&got)
	if key := config.ExtConfig.Civic.MapItKey; key != "" {
		req.SetQueryParam("api_key", key)
	}
	resp, err := req.Get(fmt.Sprintf("%s/point/4326/%f,%f", mapItBaseURL(), lng, lat))
	if err != nil {
		consult.Logger().WithContext(ctx).Error("mapit: ", err.Error())
		return nil, err
	}
	if resp.StatusCode() != 200 {
		consult.Logger().WithContext(ctx).Errorf("mapit status %d", resp.StatusCode())
		return nil, fmt.Errorf("mapit status %d", resp.StatusCode())
	}
	areas := make([]MapItArea, 0, len(got))
	for _, v := range got {
		areas = append(areas, MapItArea{ID: v.ID, Name: v.Name, Type: v.Type, GSS: v.Codes.GSS})
	}
	return areas, nil
}

func pickArea(areas []MapItArea, types map[string]bool) (MapItArea, bool) {
	for _, a := range areas {
		if types[a.Type] {
			return a, true
		}
	}
	return MapItArea{}, false
}

// normalizeWardName lower-cases, drops the word "ward" and collapses
// whitespace, so "Abbey Ward" and "abbey" compare equal.
func normalizeWardName(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	kept := fields[:0]
	for _, f := range fields {
		if f == "ward" {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// wardNamesMatch reports whether two ward names refer to the same ward:
// after normalization either contains the other.
func wardNamesMatch(a, b string) bool {
	na, nb := normalizeWardName(a), normalizeWardName(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// MatchCouncillors filters a council's councillor directory down to the
// rows whose ward fuzzily matches the detected ward name.
func MatchCouncillors(councillors []model.Councillor, ward string) []model.Councillor {
	matched := make([]model.Councillor, 0, 3)
	for _, c := range councillors {
		if wardNamesMatch(c.Ward, ward) {
			matched = append(matched, c)
		}
	}
	return matched
}
