// Package records loads the tabular data that cards are made from.
//
// A [Provider] returns a [Set]: the ordered records plus the column names
// they were read with. The layout engine consumes only the number of
// records and their order; names, images and extra fields are carried for
// display.
//
// Three providers are available:
//   - [Placeholder]: a generated set, used when no source is configured
//   - [Sheet]: a spreadsheet published as CSV at an HTTP(S) URL
//   - [Mongo]: a MongoDB collection
package records

import "context"

// Source names accepted by configuration and the CLI.
const (
	SourcePlaceholder = "placeholder"
	SourceSheet       = "sheet"
	SourceMongo       = "mongo"
)

// Record is one row of input data. Index is its zero-based position in the
// set and decides which target transform the record's card receives.
type Record struct {
	Index  int               `json:"index" bson:"-"`
	Name   string            `json:"name" bson:"name"`
	Image  string            `json:"image,omitempty" bson:"image,omitempty"`
	Fields map[string]string `json:"fields,omitempty" bson:"fields,omitempty"`
}

// Set is an ordered collection of records.
type Set struct {
	Source  string   `json:"source"`
	Columns []string `json:"columns,omitempty"`
	Records []Record `json:"records"`
}

// Len returns the number of records; a nil set has none.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}

// Provider fetches a record set.
type Provider interface {
	Records(ctx context.Context) (*Set, error)
}

// reindex assigns Index from slice position.
func reindex(recs []Record) {
	for i := range recs {
		recs[i].Index = i
	}
}

// Static serves a fixed set. It lets a caller fetch records on one
// goroutine and hand them to a scene owned by another.
type Static struct {
	Set *Set
}

// Records implements [Provider].
func (s Static) Records(context.Context) (*Set, error) {
	if s.Set == nil {
		return &Set{}, nil
	}
	return s.Set, nil
}
