package maoyan

import "strings"

// DetailRecord reshapes a movie detail response into the raw movie record layout
// understood by the attribute extractor. Fields the response lacks stay absent and
// values are copied without validation.
func DetailRecord(detail map[string]any) map[string]any {
	m := detail
	if inner, ok := detail["detailMovie"].(map[string]any); ok {
		m = inner
	}
	if _, ok := m["title"]; ok {
		// already in record layout
		return m
	}

	record := map[string]any{}
	copyField(record, "title", m, "nm")
	copyField(record, "director", m, "dir")
	copyField(record, "summary", m, "dra")
	if v, ok := m["cat"].(string); ok {
		record["genres"] = splitList(v)
	}
	if v, ok := m["star"].(string); ok {
		record["actors"] = splitList(v)
	}

	rating := map[string]any{}
	copyField(rating, "score", m, "sc")
	copyField(rating, "count", m, "snum")
	if len(rating) > 0 {
		record["rating"] = rating
	}

	popularity := map[string]any{}
	copyField(popularity, "wish_count", m, "wish")
	copyField(popularity, "watched_count", m, "watched")
	if len(popularity) > 0 {
		record["popularity"] = popularity
	}
	return record
}

func copyField(dst map[string]any, dstKey string, src map[string]any, srcKey string) {
	if v, ok := src[srcKey]; ok && v != nil {
		dst[dstKey] = v
	}
}

// splitList splits the comma separated lists the API uses for genres and cast.
func splitList(s string) []any {
	out := []any{}
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '，' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
