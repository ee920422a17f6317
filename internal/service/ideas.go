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
	"strings"

	"go.uber.org/zap"

	"blockarchitech.com/lifeboard/internal/models"
	"blockarchitech.com/lifeboard/internal/projection"
	"blockarchitech.com/lifeboard/internal/repository"
	"blockarchitech.com/lifeboard/internal/storage"
	"blockarchitech.com/lifeboard/internal/validation"
)

type IdeaService struct {
	base
}

// AddIdea stores a new idea at Medium priority.
func (s *IdeaService) AddIdea(ctx context.Context, form validation.IdeaForm) (string, error) {
	ctx, span := s.start(ctx, "IdeaService.AddIdea")
	defer span.End()

	if err := validation.Struct(form); err != nil {
		return "", err
	}
	id, err := s.repos.Ideas.Add(ctx, map[string]interface{}{
		repository.FieldText:      strings.TrimSpace(form.Text),
		repository.FieldPriority:  string(models.PriorityMedium),
		repository.FieldCreatedAt: storage.ServerTimestamp,
	})
	if err != nil {
		return "", fail(span, err, "failed to add idea")
	}
	s.logger.Info("Added idea", zap.String("id", id))
	return id, nil
}

func (s *IdeaService) SetPriority(ctx context.Context, id string, form validation.PriorityForm) error {
	ctx, span := s.start(ctx, "IdeaService.SetPriority")
	defer span.End()

	if err := validation.Struct(form); err != nil {
		return err
	}
	if err := s.repos.Ideas.Update(ctx, id, map[string]interface{}{repository.FieldPriority: form.Priority}); err != nil {
		return fail(span, err, "failed to set idea priority")
	}
	return nil
}

func (s *IdeaService) ListIdeas(ctx context.Context) ([]models.Idea, error) {
	ctx, span := s.start(ctx, "IdeaService.ListIdeas")
	defer span.End()

	ideas, err := s.repos.Ideas.List(ctx)
	if err != nil {
		return nil, fail(span, err, "failed to list ideas")
	}
	return ideas, nil
}

func (s *IdeaService) DeleteIdea(ctx context.Context, id string) error {
	ctx, span := s.start(ctx, "IdeaService.DeleteIdea")
	defer span.End()

	if err := s.repos.Ideas.Delete(ctx, id); err != nil {
		return fail(span, err, "failed to delete idea")
	}
	return nil
}

func (s *IdeaService) WatchIdeas(ctx context.Context) (*projection.Handle[[]models.Idea], error) {
	return projection.Watch(ctx, s.repos.Ideas, s.repos.Ideas.Query(), projection.List[models.Idea], s.logger)
}
