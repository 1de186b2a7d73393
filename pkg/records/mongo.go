package records

import (
	"context"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/cardspace/pkg/errors"
)

// Mongo reads records from a MongoDB collection, ordered by _id.
type Mongo struct {
	Collection *mongo.Collection
	// Limit caps the number of records read; zero reads all.
	Limit int64
}

// mongoDoc is the stored shape of a record.
type mongoDoc struct {
	Name   string            `bson:"name"`
	Image  string            `bson:"image,omitempty"`
	Fields map[string]string `bson:"fields,omitempty"`
}

// ConnectMongo opens a client for uri and returns the named collection.
// The caller disconnects the returned client.
func ConnectMongo(ctx context.Context, uri, database, collection string) (*mongo.Client, *mongo.Collection, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongo")
	}
	return client, client.Database(database).Collection(collection), nil
}

// Records implements [Provider].
func (m *Mongo) Records(ctx context.Context) (*Set, error) {
	if m.Collection == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo: no collection")
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if m.Limit > 0 {
		opts.SetLimit(m.Limit)
	}

	cur, err := m.Collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "mongo find")
	}
	var docs []mongoDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "mongo decode")
	}

	return fromDocs(docs), nil
}

func fromDocs(docs []mongoDoc) *Set {
	recs := make([]Record, len(docs))
	seen := make(map[string]bool)
	columns := []string{"name", "image"}
	for i, d := range docs {
		recs[i] = Record{Name: d.Name, Image: d.Image, Fields: d.Fields}
		for k := range d.Fields {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	reindex(recs)
	slices.Sort(columns[2:])
	return &Set{Source: SourceMongo, Columns: columns, Records: recs}
}
