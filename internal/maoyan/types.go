// Response shapes of the Maoyan API. The upstream schema is not documented and drifts,
// so every field is optional and loosely typed where values have been seen as both
// strings and numbers.
package maoyan

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// City is the raw city lookup response.
type City map[string]any

// ID resolves the city identifier from "id", falling back to "cityId".
// Zero and unparsable values count as absent.
func (c City) ID() (int64, bool) {
	for _, key := range []string{"id", "cityId"} {
		if id, ok := toInt64(c[key]); ok && id != 0 {
			return id, true
		}
	}
	return 0, false
}

// Name returns the city name if the response carries one.
func (c City) Name() string {
	for _, key := range []string{"nm", "name", "city"} {
		if s, ok := c[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// CinemaQuery selects the cinemas showing a movie.
type CinemaQuery struct {
	MovieID  int64
	ShowDate string // YYYY-MM-DD
	CityID   int64
	Lat      float64
	Lng      float64
	Limit    int // defaults to 20
	Offset   int
}

func (q CinemaQuery) values() url.Values {
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	v := url.Values{}
	v.Set("limit", strconv.Itoa(limit))
	v.Set("offset", strconv.Itoa(offset))
	v.Set("client", "iphone")
	v.Set("channelId", "4")
	v.Set("showDate", q.ShowDate)
	v.Set("movieId", strconv.FormatInt(q.MovieID, 10))
	v.Set("sort", "distance")
	v.Set("cityId", strconv.FormatInt(q.CityID, 10))
	v.Set("lat", formatCoord(q.Lat))
	v.Set("lng", formatCoord(q.Lng))
	v.Set("districtId", "-1")
	v.Set("lineId", "-1")
	v.Set("areaId", "-1")
	v.Set("stationId", "-1")
	v.Set("brandIds", "[-1]")
	v.Set("serviceIds", "[-1]")
	v.Set("hallTypeIds", `["all"]`)
	v.Set("languageIds", `["all"]`)
	v.Set("dimIds", `["all"]`)
	return v
}

// CinemaList is the cinema listing response.
type CinemaList struct {
	Cinemas []Cinema `json:"cinemas"`
}

// Cinema is one entry of a cinema listing.
type Cinema struct {
	ID        Text `json:"id"`
	Name      Text `json:"nm"`
	Address   Text `json:"addr"`
	SellPrice Text `json:"sellPrice"`
	Distance  Text `json:"distance"`
}

// RankedMovie is one entry of the top rated list.
type RankedMovie struct {
	ID    Text `json:"id"`
	Name  Text `json:"name"`
	Score Text `json:"score"`
}

// Text decodes a JSON string or number into its textual form. null decodes to "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

func (t Text) String() string { return string(t) }

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}
