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
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// persister receives every committed write. The disk backend implements it.
type persister interface {
	save(path Path, id string, data map[string]interface{}) error
	remove(path Path, id string) error
}

// InMemoryStore keeps every collection in process memory.
type InMemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]interface{}
	subscribers map[*Subscription]Query
	logger      *zap.Logger
	now         func() time.Time
	newID       func() string
	persist     persister
}

// Option configures an InMemoryStore.
type Option func(*InMemoryStore)

// WithClock overrides the clock used to resolve ServerTimestamp.
func WithClock(now func() time.Time) Option {
	return func(s *InMemoryStore) { s.now = now }
}

// WithIDGenerator overrides document id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *InMemoryStore) { s.newID = newID }
}

func NewInMemoryStore(logger *zap.Logger, opts ...Option) *InMemoryStore {
	s := &InMemoryStore{
		collections: make(map[string]map[string]map[string]interface{}),
		subscribers: make(map[*Subscription]Query),
		logger:      logger.Named("inmemory_store"),
		now:         time.Now,
		newID: func() string {
			return uuid.New().String()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) collection(path Path) map[string]map[string]interface{} {
	key := path.String()
	c, ok := s.collections[key]
	if !ok {
		c = make(map[string]map[string]interface{})
		s.collections[key] = c
	}
	return c
}

func (s *InMemoryStore) commit(path Path, id string, data map[string]interface{}) error {
	if s.persist != nil {
		if err := s.persist.save(path, id, data); err != nil {
			return fmt.Errorf("failed to persist document: %w", err)
		}
	}
	s.collection(path)[id] = data
	s.notify(path)
	return nil
}

func (s *InMemoryStore) Insert(ctx context.Context, path Path, data map[string]interface{}) (string, error) {
	if !path.Valid() {
		return "", fmt.Errorf("invalid collection path %q", path)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newID()
	if err := s.commit(path, id, applyWrite(nil, data, s.now())); err != nil {
		return "", err
	}
	s.logger.Debug("Inserted document", zap.String("path", path.String()), zap.String("id", id))
	return id, nil
}

func (s *InMemoryStore) Set(ctx context.Context, path Path, id string, data map[string]interface{}, merge bool) error {
	if !path.Valid() || id == "" {
		return fmt.Errorf("invalid document address %q/%q", path, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var base map[string]interface{}
	if merge {
		base = s.collection(path)[id]
	}
	if err := s.commit(path, id, applyWrite(base, data, s.now())); err != nil {
		return err
	}
	s.logger.Debug("Set document", zap.String("path", path.String()), zap.String("id", id), zap.Bool("merge", merge))
	return nil
}

func (s *InMemoryStore) Update(ctx context.Context, path Path, id string, data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.collection(path)[id]
	if !ok {
		return fmt.Errorf("%s/%s: %w", path, id, ErrNotFound)
	}
	if err := s.commit(path, id, applyWrite(existing, data, s.now())); err != nil {
		return err
	}
	s.logger.Debug("Updated document", zap.String("path", path.String()), zap.String("id", id))
	return nil
}

func (s *InMemoryStore) Delete(ctx context.Context, path Path, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collection(path)
	if _, ok := c[id]; !ok {
		s.logger.Info("No document found to delete", zap.String("path", path.String()), zap.String("id", id))
		return nil
	}
	if s.persist != nil {
		if err := s.persist.remove(path, id); err != nil {
			return fmt.Errorf("failed to remove persisted document: %w", err)
		}
	}
	delete(c, id)
	s.notify(path)
	s.logger.Debug("Deleted document", zap.String("path", path.String()), zap.String("id", id))
	return nil
}

func (s *InMemoryStore) Get(ctx context.Context, path Path, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.collections[path.String()][id]
	if !ok {
		return nil, nil
	}
	return &Document{ID: id, Data: cloneMap(data)}, nil
}

func (s *InMemoryStore) Query(ctx context.Context, q Query) ([]Document, error) {
	if !q.Path.Valid() {
		return nil, fmt.Errorf("invalid collection path %q", q.Path)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return evaluate(s.collections[q.Path.String()], q), nil
}

// Watch registers a subscriber that receives the current result set immediately
// and again after every write to the queried collection.
func (s *InMemoryStore) Watch(ctx context.Context, q Query) (*Subscription, error) {
	if !q.Path.Valid() {
		return nil, fmt.Errorf("invalid collection path %q", q.Path)
	}
	subCtx, cancel := context.WithCancel(ctx)
	sub := newSubscription(cancel)

	s.mu.Lock()
	s.subscribers[sub] = q
	sub.publish(evaluate(s.collections[q.Path.String()], q))
	s.mu.Unlock()

	go func() {
		<-subCtx.Done()
		s.mu.Lock()
		delete(s.subscribers, sub)
		close(sub.snapshots)
		s.mu.Unlock()
		close(sub.done)
	}()
	return sub, nil
}

// notify must be called with s.mu held.
func (s *InMemoryStore) notify(path Path) {
	key := path.String()
	for sub, q := range s.subscribers {
		if q.Path.String() == key {
			sub.publish(evaluate(s.collections[key], q))
		}
	}
}

func (s *InMemoryStore) Close() error {
	s.mu.RLock()
	subs := make([]*Subscription, 0, len(s.subscribers))
	for sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.RUnlock()
	for _, sub := range subs {
		sub.Close()
	}
	s.logger.Info("Closing InMemoryStore", zap.Int("subscriptions", len(subs)))
	return nil
}
