// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package storage

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoCollection = "tournament_snapshots"

type mongoDocument struct {
	Key      string `bson:"_id"`
	Snapshot `bson:",inline"`
}

// MongoStore keeps the snapshot as one document keyed by the snapshot key.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	key        string
}

// NewMongoStore uses an existing collection. Close is a no-op for stores built this way.
func NewMongoStore(collection *mongo.Collection, key string) *MongoStore {
	return &MongoStore{collection: collection, key: key}
}

// ConnectMongoStore connects to uri and stores snapshots in the given database.
func ConnectMongoStore(ctx context.Context, uri, database, key string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, eris.Wrap(err, "connect mongo")
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(mongoCollection),
		key:        key,
	}, nil
}

func (m *MongoStore) Save(ctx context.Context, snapshot *Snapshot) error {
	doc := mongoDocument{Key: m.key, Snapshot: *snapshot}
	opts := options.Replace().SetUpsert(true)
	if _, err := m.collection.ReplaceOne(ctx, bson.M{"_id": m.key}, doc, opts); err != nil {
		return eris.Wrapf(err, "mongo replace %s", m.key)
	}
	return nil
}

func (m *MongoStore) Load(ctx context.Context) (*Snapshot, error) {
	var doc mongoDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": m.key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "mongo find %s", m.key)
	}
	return &doc.Snapshot, nil
}

func (m *MongoStore) Clear(ctx context.Context) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": m.key}); err != nil {
		return eris.Wrapf(err, "mongo delete %s", m.key)
	}
	return nil
}

func (m *MongoStore) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}
