/*
 *    Copyright 2025 blockarchitech
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package storage

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go.uber.org/zap"
)

type FirestoreStore struct {
	client *firestore.Client
	logger *zap.Logger
}

// NewFirestoreStore connects to the given project. An empty databaseID selects the default database.
func NewFirestoreStore(ctx context.Context, projectID, databaseID string, logger *zap.Logger, opts ...option.ClientOption) (*FirestoreStore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID, opts...)
	if err != nil {
		logger.Error("Failed to create Firestore client", zap.String("projectID", projectID), zap.Error(err))
		return nil, fmt.Errorf("firestore.NewClient: %w", err)
	}
	logger.Info("Successfully connected to Firestore", zap.String("projectID", projectID), zap.String("databaseID", databaseID))
	return &FirestoreStore{
		client: client,
		logger: logger.Named("firestore_store"),
	}, nil
}

func (s *FirestoreStore) collectionRef(path Path) (*firestore.CollectionRef, error) {
	if !path.Valid() {
		return nil, fmt.Errorf("invalid collection path %q", path)
	}
	col := s.client.Collection(path[0])
	for i := 1; i+1 < len(path); i += 2 {
		col = col.Doc(path[i]).Collection(path[i+1])
	}
	return col, nil
}

func toFirestoreValue(v interface{}) interface{} {
	switch t := v.(type) {
	case serverTimestamp:
		return firestore.ServerTimestamp
	case ArrayUnionValue:
		return firestore.ArrayUnion(normalizeSlice(t.Elems)...)
	case ArrayRemoveValue:
		return firestore.ArrayRemove(normalizeSlice(t.Elems)...)
	default:
		return normalizeValue(v)
	}
}

func toFirestoreData(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = toFirestoreValue(v)
	}
	return out
}

func fromSnapshot(doc *firestore.DocumentSnapshot) Document {
	return Document{ID: doc.Ref.ID, Data: copyData(doc.Data())}
}

func (s *FirestoreStore) Insert(ctx context.Context, path Path, data map[string]interface{}) (string, error) {
	col, err := s.collectionRef(path)
	if err != nil {
		return "", err
	}
	ref, _, err := col.Add(ctx, toFirestoreData(data))
	if err != nil {
		s.logger.Error("Failed to add document to Firestore", zap.String("path", path.String()), zap.Error(err))
		return "", fmt.Errorf("failed to add document: %w", err)
	}
	s.logger.Debug("Added document", zap.String("path", path.String()), zap.String("id", ref.ID))
	return ref.ID, nil
}

func (s *FirestoreStore) Set(ctx context.Context, path Path, id string, data map[string]interface{}, merge bool) error {
	col, err := s.collectionRef(path)
	if err != nil {
		return err
	}
	var opts []firestore.SetOption
	if merge {
		opts = append(opts, firestore.MergeAll)
	}
	if _, err := col.Doc(id).Set(ctx, toFirestoreData(data), opts...); err != nil {
		s.logger.Error("Failed to set document in Firestore", zap.String("path", path.String()), zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to set document: %w", err)
	}
	return nil
}

func (s *FirestoreStore) Update(ctx context.Context, path Path, id string, data map[string]interface{}) error {
	col, err := s.collectionRef(path)
	if err != nil {
		return err
	}
	updates := make([]firestore.Update, 0, len(data))
	for k, v := range data {
		updates = append(updates, firestore.Update{Path: k, Value: toFirestoreValue(v)})
	}
	if _, err := col.Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%s/%s: %w", path, id, ErrNotFound)
		}
		s.logger.Error("Failed to update document in Firestore", zap.String("path", path.String()), zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to update document: %w", err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, path Path, id string) error {
	col, err := s.collectionRef(path)
	if err != nil {
		return err
	}
	if _, err := col.Doc(id).Delete(ctx); err != nil && status.Code(err) != codes.NotFound {
		s.logger.Error("Failed to delete document from Firestore", zap.String("path", path.String()), zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete document: %w", err)
	}
	s.logger.Info("Deleted document", zap.String("path", path.String()), zap.String("id", id))
	return nil
}

func (s *FirestoreStore) Get(ctx context.Context, path Path, id string) (*Document, error) {
	col, err := s.collectionRef(path)
	if err != nil {
		return nil, err
	}
	dsnap, err := col.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		s.logger.Error("Failed to get document from Firestore", zap.String("path", path.String()), zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	doc := fromSnapshot(dsnap)
	return &doc, nil
}

func (s *FirestoreStore) buildQuery(q Query) (firestore.Query, error) {
	col, err := s.collectionRef(q.Path)
	if err != nil {
		return firestore.Query{}, err
	}
	fq := col.Query
	for _, f := range q.Filters {
		fq = fq.Where(f.Field, string(f.Op), normalizeValue(f.Value))
	}
	for _, o := range q.Orders {
		dir := firestore.Asc
		if o.Direction == Desc {
			dir = firestore.Desc
		}
		fq = fq.OrderBy(o.Field, dir)
	}
	return fq, nil
}

func (s *FirestoreStore) Query(ctx context.Context, q Query) ([]Document, error) {
	fq, err := s.buildQuery(q)
	if err != nil {
		return nil, err
	}
	iter := fq.Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		dsnap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			s.logger.Error("Failed to iterate query results", zap.String("path", q.Path.String()), zap.Error(err))
			return nil, fmt.Errorf("failed to iterate documents: %w", err)
		}
		docs = append(docs, fromSnapshot(dsnap))
	}
	return docs, nil
}

// Watch streams query snapshots until the subscription is closed or the listener fails.
func (s *FirestoreStore) Watch(ctx context.Context, q Query) (*Subscription, error) {
	fq, err := s.buildQuery(q)
	if err != nil {
		return nil, err
	}
	subCtx, cancel := context.WithCancel(ctx)
	sub := newSubscription(cancel)
	iter := fq.Snapshots(subCtx)

	go func() {
		defer close(sub.done)
		defer close(sub.snapshots)
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err != nil {
				if subCtx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				s.logger.Error("Snapshot listener failed", zap.String("path", q.Path.String()), zap.Error(err))
				sub.fail(fmt.Errorf("snapshot listener: %w", err))
				return
			}
			dsnaps, err := snap.Documents.GetAll()
			if err != nil {
				s.logger.Error("Failed to read snapshot documents", zap.String("path", q.Path.String()), zap.Error(err))
				sub.fail(fmt.Errorf("failed to read snapshot: %w", err))
				return
			}
			docs := make([]Document, 0, len(dsnaps))
			for _, d := range dsnaps {
				docs = append(docs, fromSnapshot(d))
			}
			sub.publish(docs)
		}
	}()
	return sub, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
