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

// Package projection keeps derived read views current from standing store
// subscriptions.
package projection

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"blockarchitech.com/lifeboard/internal/storage"
)

// Source opens subscriptions and decodes their snapshots into records.
// *repository.Collection satisfies it.
type Source[T any] interface {
	Watch(ctx context.Context, q storage.Query) (*storage.Subscription, error)
	Decode(docs []storage.Document) []T
}

// Handle is a live projection. Every value on Updates is a view derived from
// scratch from one full snapshot. The owner must call Close.
type Handle[V any] struct {
	updates chan V
	errs    chan error
	sub     *storage.Subscription
	done    chan struct{}
}

// Watch subscribes to q on src and re-derives the view on every snapshot.
func Watch[T, V any](ctx context.Context, src Source[T], q storage.Query, derive func([]T) V, logger *zap.Logger) (*Handle[V], error) {
	sub, err := src.Watch(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("open projection on %s: %w", q.Path, err)
	}
	h := &Handle[V]{
		updates: make(chan V, 1),
		errs:    make(chan error, 1),
		sub:     sub,
		done:    make(chan struct{}),
	}
	logger = logger.Named("projection").With(zap.String("path", q.Path.String()))

	fail := func(err error) {
		logger.Error("Subscription failed", zap.Error(err))
		h.errs <- err
	}
	go func() {
		defer close(h.done)
		defer close(h.updates)
		for {
			select {
			case docs, ok := <-sub.Snapshots():
				if !ok {
					// A failing producer reports its error before closing snapshots.
					select {
					case err := <-sub.Err():
						fail(err)
					default:
						logger.Debug("Subscription ended")
					}
					return
				}
				h.push(derive(src.Decode(docs)))
			case err := <-sub.Err():
				fail(err)
				return
			}
		}
	}()
	return h, nil
}

// push replaces any unread view with v.
func (h *Handle[V]) push(v V) {
	for {
		select {
		case h.updates <- v:
			return
		default:
		}
		select {
		case <-h.updates:
		default:
		}
	}
}

// Updates delivers derived views. It is closed when the projection ends; a
// terminal error, if any, is readable from Err by then.
func (h *Handle[V]) Updates() <-chan V {
	return h.updates
}

// Err delivers the subscription failure, if any.
func (h *Handle[V]) Err() <-chan error {
	return h.errs
}

// Close tears down the subscription and waits for the projection goroutine.
func (h *Handle[V]) Close() {
	h.sub.Close()
	<-h.done
}
