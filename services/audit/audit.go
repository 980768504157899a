package audit

import (
	"context"
	"fmt"
	"ramadan-meal-recommender/enums"
	"ramadan-meal-recommender/structs"
	"strconv"
	"strings"
	"time"
)

// Header is the expected first row of the audit sheet.
var Header = []string{
	"timestamp",
	"username",
	"meal",
	"calories_max",
	"protein_min",
	"sodium_max",
	"top_n",
	"results_titles",
}

const headerRange = "A1:H1"

// Row is one appended audit record. Rows are never updated or removed.
type Row struct {
	Timestamp     time.Time
	Username      string
	Meal          string
	CaloriesMax   int
	ProteinMin    int
	SodiumMax     int
	TopN          int
	ResultsTitles string
}

// Values returns the cells in header order.
func (r Row) Values() []interface{} {
	return []interface{}{
		r.Timestamp.Format(enums.TimestampLayout),
		r.Username,
		r.Meal,
		r.CaloriesMax,
		r.ProteinMin,
		r.SodiumMax,
		r.TopN,
		r.ResultsTitles,
	}
}

// Strings returns the cells in header order as text.
func (r Row) Strings() []string {
	values := r.Values()
	out := make([]string, len(values))
	for i, v := range values {
		switch t := v.(type) {
		case string:
			out[i] = t
		case int:
			out[i] = strconv.Itoa(t)
		default:
			out[i] = fmt.Sprint(t)
		}
	}
	return out
}

// Store is a remote append-only audit table.
type Store interface {
	// EnsureHeader rewrites the first row when it does not match Header.
	EnsureHeader(ctx context.Context) error
	Append(ctx context.Context, row Row) error
}

// RemoteStoreError wraps every failure talking to an audit store.
type RemoteStoreError struct {
	Op  string
	Err error
}

func (e *RemoteStoreError) Error() string {
	return fmt.Sprintf("audit store %s: %v", e.Op, e.Err)
}

func (e *RemoteStoreError) Unwrap() error {
	return e.Err
}

func remoteErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*RemoteStoreError); ok {
		return err
	}
	return &RemoteStoreError{Op: op, Err: err}
}

// HeaderMatches compares an existing first row against Header after trimming
// and lowercasing every cell.
func HeaderMatches(firstRow []string) bool {
	if len(firstRow) != len(Header) {
		return false
	}
	for i, cell := range firstRow {
		if strings.ToLower(strings.TrimSpace(cell)) != Header[i] {
			return false
		}
	}
	return true
}

func headerValues() []interface{} {
	out := make([]interface{}, len(Header))
	for i, h := range Header {
		out[i] = h
	}
	return out
}

// Logger builds audit rows for recommendation requests and hands them to a
// Store.
type Logger struct {
	store    Store
	location *time.Location
	now      func() time.Time
}

func NewLogger(store Store, location *time.Location) *Logger {
	if location == nil {
		location = time.Local
	}
	return &Logger{store: store, location: location, now: time.Now}
}

func (l *Logger) EnsureHeader(ctx context.Context) error {
	return remoteErr("ensure header", l.store.EnsureHeader(ctx))
}

// Record appends one row for a successful request.
func (l *Logger) Record(ctx context.Context, username string, c structs.Constraints, titles string) (Row, error) {
	row := Row{
		Timestamp:     l.now().In(l.location),
		Username:      username,
		Meal:          c.Meal,
		CaloriesMax:   c.CaloriesMax,
		ProteinMin:    c.ProteinMin,
		SodiumMax:     c.SodiumMax,
		TopN:          c.TopN,
		ResultsTitles: titles,
	}
	return row, remoteErr("append", l.store.Append(ctx, row))
}
