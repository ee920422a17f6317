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

package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"blockarchitech.com/lifeboard/internal/repository"
	"blockarchitech.com/lifeboard/internal/storage"
)

// Option configures the services built by New.
type Option func(*base)

// WithClock overrides the wall clock used for "now" and "today".
func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

// base carries what every module service needs.
type base struct {
	repos  *repository.Repositories
	tracer trace.Tracer
	logger *zap.Logger
	loc    *time.Location
	now    func() time.Time
}

// localNow is the current instant in the configured location.
func (b base) localNow() time.Time {
	return b.now().In(b.loc)
}

func (b base) named(name string) base {
	b.logger = b.logger.Named(name)
	return b
}

func (b base) start(ctx context.Context, name string) (context.Context, trace.Span) {
	return b.tracer.Start(ctx, name)
}

// fail records err on span and returns it.
func fail(span trace.Span, err error, msg string) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	return err
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
}

// Services bundles the writer and reader of every module.
type Services struct {
	Tasks      *TaskService
	Finance    *FinanceService
	Apps       *AppService
	Mood       *MoodService
	Activities *ActivityService
	Food       *FoodService
	Ideas      *IdeaService

	loc *time.Location
	now func() time.Time
}

// New builds all module services over repos. Calendar arithmetic happens in loc.
func New(repos *repository.Repositories, tracer trace.Tracer, logger *zap.Logger, loc *time.Location, opts ...Option) *Services {
	b := base{
		repos:  repos,
		tracer: tracer,
		logger: logger,
		loc:    loc,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return &Services{
		Tasks:      &TaskService{base: b.named("task_service")},
		Finance:    &FinanceService{base: b.named("finance_service")},
		Apps:       &AppService{base: b.named("app_service")},
		Mood:       &MoodService{base: b.named("mood_service")},
		Activities: &ActivityService{base: b.named("activity_service")},
		Food:       &FoodService{base: b.named("food_service")},
		Ideas:      &IdeaService{base: b.named("idea_service")},
		loc:        loc,
		now:        b.now,
	}
}

// Location returns the configured calendar location.
func (s *Services) Location() *time.Location {
	return s.loc
}

// Now returns the current instant in the configured location.
func (s *Services) Now() time.Time {
	return s.now().In(s.loc)
}
