// Package store loads and saves family trees in MongoDB.
//
// Each family is one document in a collection:
//
//	{ "_id": "branislav", "root": { "id": ..., "name": ..., "children": [...] } }
//
// [Source] adapts a document to [family.Source] so the pipeline can load it
// like any other tree.
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/branislavfamily/familysite/pkg/errors"
	"github.com/branislavfamily/familysite/pkg/family"
)

const (
	// DefaultDatabase is used when the connection URI names no database.
	DefaultDatabase = "familysite"

	// DefaultCollection holds one document per family.
	DefaultCollection = "families"

	connectTimeout = 10 * time.Second
)

type document struct {
	ID        string         `bson:"_id"`
	Root      *family.Person `bson:"root"`
	UpdatedAt time.Time      `bson:"updated_at"`
}

// Mongo is a handle on the families collection.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect dials uri and pings the server. An empty database selects
// DefaultDatabase.
func Connect(ctx context.Context, uri, database string) (*Mongo, error) {
	if uri == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo URI is empty")
	}
	if database == "" {
		database = DefaultDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongo")
	}
	return &Mongo{
		client: client,
		coll:   client.Database(database).Collection(DefaultCollection),
	}, nil
}

// Load fetches and validates the tree of one family.
func (m *Mongo) Load(ctx context.Context, familyID string) (*family.Person, error) {
	if err := errors.ValidateID(familyID); err != nil {
		return nil, err
	}
	var doc document
	err := m.coll.FindOne(ctx, bson.M{"_id": familyID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeNotFound, "family %q not found", familyID)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "find family %q", familyID)
	}
	return family.Prepare(doc.Root)
}

// Save validates root and upserts it as the tree of familyID.
func (m *Mongo) Save(ctx context.Context, familyID string, root *family.Person) error {
	if err := errors.ValidateID(familyID); err != nil {
		return err
	}
	root, err := family.Prepare(root.Clone())
	if err != nil {
		return err
	}
	doc := document{ID: familyID, Root: root, UpdatedAt: time.Now().UTC()}
	_, err = m.coll.ReplaceOne(ctx, bson.M{"_id": familyID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "save family %q", familyID)
	}
	return nil
}

// Delete removes a family. Deleting a missing family is not an error.
func (m *Mongo) Delete(ctx context.Context, familyID string) error {
	if _, err := m.coll.DeleteOne(ctx, bson.M{"_id": familyID}); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "delete family %q", familyID)
	}
	return nil
}

// Source returns a family.Source for familyID.
func (m *Mongo) Source(familyID string) *Source {
	return &Source{m: m, id: familyID}
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Source loads one family's tree from MongoDB on every Load.
type Source struct {
	m  *Mongo
	id string
}

// Load implements family.Source.
func (s *Source) Load(ctx context.Context) (*family.Person, error) {
	return s.m.Load(ctx, s.id)
}

// Ref returns the cache reference of the source, "families/<id>".
func (s *Source) Ref() string { return fmt.Sprintf("%s/%s", DefaultCollection, s.id) }

var _ family.Source = (*Source)(nil)
