package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
	"github.com/schoolhub/admin-dashboard/internal/core/ports"
)

// ResourceRepository stores mock API resources, one collection per resource.
// Documents are keyed by an ObjectID hex string so _id order is insertion order.
type ResourceRepository struct {
	db *mongo.Database
}

var _ ports.ResourceStore = (*ResourceRepository)(nil)

func NewResourceRepository(db *mongo.Database) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// List returns the documents of resource that pass filter, oldest first.
// Field filters run in the query; the free-text search runs on the decoded rows.
func (r *ResourceRepository) List(ctx context.Context, resource string, filter ports.ResourceFilter) ([]ports.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	for k, v := range filter.Fields {
		query[k] = v
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.db.Collection(resource).Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", resource, err)
	}

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", resource, err)
	}

	search := ports.ResourceFilter{Search: filter.Search}
	out := make([]ports.Record, 0, len(docs))
	for _, doc := range docs {
		rec := toRecord(doc)
		if search.Match(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Get retrieves one document by id.
func (r *ResourceRepository) Get(ctx context.Context, resource, id string) (ports.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc bson.M
	err := r.db.Collection(resource).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toRecord(doc), nil
}

// Create inserts rec under a fresh id and returns the stored record.
func (r *ResourceRepository) Create(ctx context.Context, resource string, rec ports.Record) (ports.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id := primitive.NewObjectID().Hex()
	if _, err := r.db.Collection(resource).InsertOne(ctx, toDocument(id, rec)); err != nil {
		return nil, err
	}

	out := cloneRecord(rec)
	out["id"] = id
	return out, nil
}

// Replace overwrites the document with the given id.
func (r *ResourceRepository) Replace(ctx context.Context, resource, id string, rec ports.Record) (ports.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.Collection(resource).ReplaceOne(ctx, bson.M{"_id": id}, toDocument(id, rec))
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}

	out := cloneRecord(rec)
	out["id"] = id
	return out, nil
}

// Delete removes the document with the given id.
func (r *ResourceRepository) Delete(ctx context.Context, resource, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.Collection(resource).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toDocument(id string, rec ports.Record) bson.M {
	doc := bson.M{"_id": id}
	for k, v := range rec {
		if k == "id" || k == "_id" {
			continue
		}
		doc[k] = v
	}
	return doc
}

func toRecord(doc bson.M) ports.Record {
	rec := make(ports.Record, len(doc))
	for k, v := range doc {
		if k == "_id" {
			rec["id"] = fmt.Sprint(v)
			continue
		}
		rec[k] = v
	}
	return rec
}

func cloneRecord(rec ports.Record) ports.Record {
	out := make(ports.Record, len(rec)+1)
	for k, v := range rec {
		if k == "_id" {
			continue
		}
		out[k] = v
	}
	return out
}
