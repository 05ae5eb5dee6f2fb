package warehouse

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"
)

// Query is a parameterised standard-SQL statement.
type Query struct {
	SQL        string
	Parameters map[string]any
	Location   string
}

// Row maps schema field names to row values.
type Row map[string]any

// Warehouse runs queries against the data warehouse of a project.
type Warehouse interface {
	Query(ctx context.Context, project string, q Query) ([]Row, error)
}

// QueryOrEmpty runs q and logs failures instead of returning them.
// Portal views treat a failing query the same as a query without rows.
func QueryOrEmpty(ctx context.Context, wh Warehouse, log *zap.Logger, project string, q Query) []Row {
	rows, err := wh.Query(ctx, project, q)
	if err != nil {
		if log != nil {
			log.Error("warehouse_query_failed",
				zap.String("project", project),
				zap.String("query", q.SQL),
				zap.Error(err),
			)
		}
		return []Row{}
	}
	return rows
}

// String returns the row value for key rendered as text.
func (r Row) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Float returns the row value for key as a float64.
func (r Row) Float(key string) (float64, bool) {
	return ToFloat(r[key])
}

// Time returns the row value for key as a UTC time.
func (r Row) Time(key string) (time.Time, bool) {
	return ToTime(r[key])
}

// ToFloat converts numeric warehouse values, including numeric strings.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case nil:
		return 0, false
	default:
		f, err := strconv.ParseFloat(fmt.Sprint(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ToTime converts TIMESTAMP, DATETIME and textual time values.
// Values without a zone are read as UTC.
func ToTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), true
	case civil.DateTime:
		return t.In(time.UTC), true
	case nil:
		return time.Time{}, false
	}
	s := fmt.Sprint(v)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
