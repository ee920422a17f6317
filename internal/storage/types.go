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
	"strings"
)

// ErrNotFound is returned by Update when the target document does not exist.
var ErrNotFound = errors.New("document not found")

// Path addresses a collection, either top level ("apps") or nested
// under a parent document ("apps", appID, "metrics").
type Path []string

// Col builds a Path from its segments.
func Col(segments ...string) Path {
	return Path(segments)
}

func (p Path) String() string {
	return strings.Join(p, "/")
}

// Valid reports whether the path names a collection (odd number of segments).
func (p Path) Valid() bool {
	if len(p)%2 != 1 {
		return false
	}
	for _, s := range p {
		if s == "" {
			return false
		}
	}
	return true
}

// Document is a single stored record. Data holds store-native values:
// string, bool, int64, float64, time.Time, []interface{}, map[string]interface{} or nil.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// Op is a filter comparison operator.
type Op string

const (
	OpEqual         Op = "=="
	OpLess          Op = "<"
	OpLessEqual     Op = "<="
	OpGreater       Op = ">"
	OpGreaterEqual  Op = ">="
	OpArrayContains Op = "array-contains"
)

// Filter restricts a query to documents whose field compares true against Value.
type Filter struct {
	Field string
	Op    Op
	Value interface{}
}

// Direction is a sort direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Order sorts query results by a field.
type Order struct {
	Field     string
	Direction Direction
}

// Query selects documents from a single collection.
type Query struct {
	Path    Path
	Filters []Filter
	Orders  []Order
}

// Where returns a copy of q with an extra filter.
func (q Query) Where(field string, op Op, value interface{}) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Field: field, Op: op, Value: value})
	return q
}

// OrderBy returns a copy of q with an extra sort key.
func (q Query) OrderBy(field string, dir Direction) Query {
	q.Orders = append(append([]Order(nil), q.Orders...), Order{Field: field, Direction: dir})
	return q
}

// serverTimestamp is the sentinel type behind ServerTimestamp.
type serverTimestamp struct{}

// ServerTimestamp asks the store to fill the field with its own clock at write time.
var ServerTimestamp interface{} = serverTimestamp{}

// ArrayUnionValue adds elements to an array field, skipping ones already present.
type ArrayUnionValue struct {
	Elems []interface{}
}

// ArrayRemoveValue removes every occurrence of the given elements from an array field.
type ArrayRemoveValue struct {
	Elems []interface{}
}

// ArrayUnion builds an ArrayUnionValue write sentinel.
func ArrayUnion(elems ...interface{}) ArrayUnionValue {
	return ArrayUnionValue{Elems: elems}
}

// ArrayRemove builds an ArrayRemoveValue write sentinel.
func ArrayRemove(elems ...interface{}) ArrayRemoveValue {
	return ArrayRemoveValue{Elems: elems}
}

// Subscription is a standing query. Every delivery on Snapshots is the full,
// ordered result set at that moment. The owner must call Close.
type Subscription struct {
	snapshots chan []Document
	errs      chan error
	cancel    context.CancelFunc
	done      chan struct{}
}

func newSubscription(cancel context.CancelFunc) *Subscription {
	return &Subscription{
		snapshots: make(chan []Document, 1),
		errs:      make(chan error, 1),
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

// FailedSubscription returns a subscription that has already ended with err.
func FailedSubscription(err error) *Subscription {
	sub := newSubscription(func() {})
	sub.fail(err)
	close(sub.snapshots)
	close(sub.done)
	return sub
}

// Snapshots delivers result sets. It is closed once the subscription ends.
func (s *Subscription) Snapshots() <-chan []Document {
	return s.snapshots
}

// Err delivers at most one terminal error.
func (s *Subscription) Err() <-chan error {
	return s.errs
}

// Close cancels the subscription and waits for its producer to stop.
func (s *Subscription) Close() {
	s.cancel()
	<-s.done
}

// publish replaces any undelivered snapshot with the newer one.
func (s *Subscription) publish(docs []Document) {
	for {
		select {
		case s.snapshots <- docs:
			return
		default:
		}
		select {
		case <-s.snapshots:
		default:
		}
	}
}

func (s *Subscription) fail(err error) {
	select {
	case s.errs <- err:
	default:
	}
}

// DocumentStore is the collection-scoped document database the modules write to.
type DocumentStore interface {
	Insert(ctx context.Context, path Path, data map[string]interface{}) (string, error)
	Set(ctx context.Context, path Path, id string, data map[string]interface{}, merge bool) error
	Update(ctx context.Context, path Path, id string, data map[string]interface{}) error
	Delete(ctx context.Context, path Path, id string) error
	Get(ctx context.Context, path Path, id string) (*Document, error)
	Query(ctx context.Context, q Query) ([]Document, error)
	Watch(ctx context.Context, q Query) (*Subscription, error)
	Close() error
}
