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

package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"blockarchitech.com/lifeboard/internal/models"
	"blockarchitech.com/lifeboard/internal/storage"
)

// Collection is a typed view of one store collection. Every read goes through
// decode, so callers only ever see canonical records.
type Collection[T any] struct {
	store  storage.DocumentStore
	path   storage.Path
	orders []storage.Order
	decode func(storage.Document) T
	logger *zap.Logger
}

func newCollection[T any](store storage.DocumentStore, logger *zap.Logger, path storage.Path, decode func(reader) T, orders ...storage.Order) *Collection[T] {
	named := logger.Named(path[len(path)-1])
	return &Collection[T]{
		store:  store,
		path:   path,
		orders: orders,
		decode: func(doc storage.Document) T {
			return decode(reader{id: doc.ID, data: doc.Data, logger: named})
		},
		logger: named,
	}
}

// Path returns the collection's store path.
func (c *Collection[T]) Path() storage.Path {
	return c.path
}

// Query returns the collection's list query with its default ordering.
func (c *Collection[T]) Query() storage.Query {
	return storage.Query{Path: c.path, Orders: c.orders}
}

// Decode maps raw documents to canonical records, preserving order.
func (c *Collection[T]) Decode(docs []storage.Document) []T {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		out = append(out, c.decode(d))
	}
	return out
}

func (c *Collection[T]) Add(ctx context.Context, data map[string]interface{}) (string, error) {
	id, err := c.store.Insert(ctx, c.path, data)
	if err != nil {
		c.logger.Error("Failed to insert document", zap.String("path", c.path.String()), zap.Error(err))
		return "", fmt.Errorf("insert into %s: %w", c.path, err)
	}
	return id, nil
}

func (c *Collection[T]) Set(ctx context.Context, id string, data map[string]interface{}, merge bool) error {
	if err := c.store.Set(ctx, c.path, id, data, merge); err != nil {
		c.logger.Error("Failed to set document", zap.String("path", c.path.String()), zap.String("id", id), zap.Error(err))
		return fmt.Errorf("set %s/%s: %w", c.path, id, err)
	}
	return nil
}

func (c *Collection[T]) Update(ctx context.Context, id string, data map[string]interface{}) error {
	if err := c.store.Update(ctx, c.path, id, data); err != nil {
		c.logger.Error("Failed to update document", zap.String("path", c.path.String()), zap.String("id", id), zap.Error(err))
		return fmt.Errorf("update %s/%s: %w", c.path, id, err)
	}
	return nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, c.path, id); err != nil {
		c.logger.Error("Failed to delete document", zap.String("path", c.path.String()), zap.String("id", id), zap.Error(err))
		return fmt.Errorf("delete %s/%s: %w", c.path, id, err)
	}
	return nil
}

// Get returns nil, nil when the document does not exist.
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	doc, err := c.store.Get(ctx, c.path, id)
	if err != nil {
		c.logger.Error("Failed to get document", zap.String("path", c.path.String()), zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("get %s/%s: %w", c.path, id, err)
	}
	if doc == nil {
		return nil, nil
	}
	rec := c.decode(*doc)
	return &rec, nil
}

// List runs the default query.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	return c.Find(ctx, c.Query())
}

func (c *Collection[T]) Find(ctx context.Context, q storage.Query) ([]T, error) {
	docs, err := c.store.Query(ctx, q)
	if err != nil {
		c.logger.Error("Failed to query documents", zap.String("path", q.Path.String()), zap.Error(err))
		return nil, fmt.Errorf("query %s: %w", q.Path, err)
	}
	return c.Decode(docs), nil
}

// Watch opens a standing subscription on q. The caller owns the returned subscription.
func (c *Collection[T]) Watch(ctx context.Context, q storage.Query) (*storage.Subscription, error) {
	sub, err := c.store.Watch(ctx, q)
	if err != nil {
		c.logger.Error("Failed to open subscription", zap.String("path", q.Path.String()), zap.Error(err))
		return nil, fmt.Errorf("watch %s: %w", q.Path, err)
	}
	return sub, nil
}

// Repositories groups the typed collections of every module.
type Repositories struct {
	Tasks      *Collection[models.Task]
	Income     *Collection[models.IncomeEntry]
	Spending   *Collection[models.SpendingEntry]
	Recurring  *Collection[models.RecurringExpense]
	Apps       *Collection[models.App]
	Moods      *Collection[models.MoodEntry]
	Activities *Collection[models.ActivityEntry]
	Food       *Collection[models.FoodEntry]
	Ideas      *Collection[models.Idea]

	store  storage.DocumentStore
	logger *zap.Logger
}

func New(store storage.DocumentStore, logger *zap.Logger) *Repositories {
	logger = logger.Named("repository")
	desc := func(f string) storage.Order { return storage.Order{Field: f, Direction: storage.Desc} }
	asc := func(f string) storage.Order { return storage.Order{Field: f, Direction: storage.Asc} }
	return &Repositories{
		Tasks:      newCollection(store, logger, storage.Col(TasksCollection), decodeTask, desc(FieldCreatedAt)),
		Income:     newCollection(store, logger, storage.Col(IncomeCollection), decodeIncome, desc(FieldDate)),
		Spending:   newCollection(store, logger, storage.Col(SpendingCollection), decodeSpending, desc(FieldDate), desc(FieldCreatedAt)),
		Recurring:  newCollection(store, logger, storage.Col(RecurringCollection), decodeRecurring, asc(FieldDueDate), asc(FieldName)),
		Apps:       newCollection(store, logger, storage.Col(AppsCollection), decodeApp, desc(FieldCreatedAt)),
		Moods:      newCollection(store, logger, storage.Col(MoodCollection), decodeMood),
		Activities: newCollection(store, logger, storage.Col(ActivityCollection), decodeActivity, desc(FieldActivityTime)),
		Food:       newCollection(store, logger, storage.Col(FoodCollection), decodeFood, desc(FieldEntryTime)),
		Ideas:      newCollection(store, logger, storage.Col(IdeasCollection), decodeIdea, desc(FieldCreatedAt)),
		store:      store,
		logger:     logger,
	}
}

// Metrics returns the metric series of one app, oldest first.
func (r *Repositories) Metrics(appID string) *Collection[models.Metric] {
	return newCollection(r.store, r.logger, storage.Col(AppsCollection, appID, MetricsCollection),
		func(rd reader) models.Metric { return decodeMetric(appID, rd) },
		storage.Order{Field: FieldMetricTimestamp, Direction: storage.Asc})
}

// Close releases the underlying store.
func (r *Repositories) Close() error {
	return r.store.Close()
}
