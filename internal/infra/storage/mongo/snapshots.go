package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roomfinder/internal/app/snapshots"
)

const snapshotCollection = "snapshots"

// SnapshotStore persists snapshot blobs as one document per key.
type SnapshotStore struct {
	collection *mongo.Collection
}

func NewSnapshotStore(client *Client) *SnapshotStore {
	return &SnapshotStore{collection: client.DB.Collection(snapshotCollection)}
}

type snapshotDocument struct {
	Key       string    `bson:"_id"`
	Blob      []byte    `bson:"blob"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (s *SnapshotStore) Save(ctx context.Context, key string, blob []byte) error {
	doc := snapshotDocument{
		Key:       key,
		Blob:      blob,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := s.collection.ReplaceOne(ctx,
		bson.M{"_id": key},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *SnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	var doc snapshotDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, snapshots.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.Blob, nil
}

var _ snapshots.Store = (*SnapshotStore)(nil)
