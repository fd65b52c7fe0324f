package handlers

import (
	"encoding/json"
	"strconv"
	"strings"

	"bookreview/internal/repository"

	"github.com/gin-gonic/gin"
)

// Reserved query keys that control the listing itself and are never treated
// as data filters.
var reservedQueryKeys = map[string]bool{
	"page":   true,
	"sort":   true,
	"limit":  true,
	"fields": true,
}

// intQuery parses a positive integer query parameter, returning def when the
// parameter is absent or unparseable.
func intQuery(c *gin.Context, key string, def int) int {
	if qs := c.Query(key); qs != "" {
		if n, err := strconv.Atoi(qs); err == nil {
			return n
		}
	}
	return def
}

// pageQuery reads page and limit; limit 0 means "use the operation default".
func pageQuery(c *gin.Context) (page, limit int) {
	return intQuery(c, "page", 1), intQuery(c, "limit", 0)
}

// filterQuery collects the remaining query parameters as a field-equality
// filter map.
func filterQuery(c *gin.Context) map[string]string {
	filters := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if reservedQueryKeys[key] || len(values) == 0 {
			continue
		}
		filters[key] = values[0]
	}
	return filters
}

// sortQuery parses the comma-separated sort list; a leading '-' marks a field
// descending.
func sortQuery(c *gin.Context) []repository.SortField {
	qs := c.Query("sort")
	if qs == "" {
		return nil
	}
	var out []repository.SortField
	for _, term := range strings.Split(qs, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if strings.HasPrefix(term, "-") {
			out = append(out, repository.SortField{Field: term[1:], Desc: true})
		} else {
			out = append(out, repository.SortField{Field: term})
		}
	}
	return out
}

// fieldsQuery parses the comma-separated field-selection list.
func fieldsQuery(c *gin.Context) []string {
	qs := c.Query("fields")
	if qs == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(qs, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// projectFields restricts v's serialized form to the selected fields. The id
// is always kept. Selection is presentation-only; filtering and sorting are
// unaffected.
func projectFields(v any, fields []string) gin.H {
	raw, err := json.Marshal(v)
	if err != nil {
		return gin.H{}
	}
	var full map[string]any
	if err := json.Unmarshal(raw, &full); err != nil {
		return gin.H{}
	}

	out := gin.H{"id": full["id"]}
	for _, f := range fields {
		if val, ok := full[f]; ok {
			out[f] = val
		}
	}
	return out
}

// projectList applies projectFields across a listing, or returns it as-is
// when no selection was requested.
func projectList[T any](items []T, fields []string) any {
	if len(fields) == 0 {
		return items
	}
	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, projectFields(item, fields))
	}
	return out
}
