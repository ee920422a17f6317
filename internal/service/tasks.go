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
	"time"

	"go.uber.org/zap"

	"blockarchitech.com/lifeboard/internal/models"
	"blockarchitech.com/lifeboard/internal/planner"
	"blockarchitech.com/lifeboard/internal/projection"
	"blockarchitech.com/lifeboard/internal/repository"
	"blockarchitech.com/lifeboard/internal/storage"
	"blockarchitech.com/lifeboard/internal/utils"
	"blockarchitech.com/lifeboard/internal/validation"
)

const postponeBy = 24 * time.Hour

type TaskService struct {
	base
}

// ParseView resolves a planner view name; blank means Daily.
func ParseView(raw string) (models.TaskType, error) {
	if raw == "" {
		return models.TaskDaily, nil
	}
	v := models.TaskType(raw)
	if !v.Valid() {
		return "", validation.Field("view", "tasktype", "is not a recognised tasktype")
	}
	return v, nil
}

// AddTask validates and stores a new pending task.
func (s *TaskService) AddTask(ctx context.Context, form validation.TaskForm) (string, error) {
	ctx, span := s.start(ctx, "TaskService.AddTask")
	defer span.End()

	if err := validation.Struct(form); err != nil {
		return "", err
	}
	var due interface{}
	if form.DueDate != "" {
		d, err := utils.ParseDate(form.DueDate, s.loc)
		if err != nil {
			return "", validation.Field("dueDate", "date", err.Error())
		}
		due = d
	}
	types := make([]string, 0, len(form.Types))
	seen := make(map[string]bool)
	for _, t := range form.Types {
		if !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}

	id, err := s.repos.Tasks.Add(ctx, map[string]interface{}{
		repository.FieldText:        strings.TrimSpace(form.Text),
		repository.FieldCompleted:   false,
		repository.FieldTypes:       types,
		repository.FieldCreatedAt:   storage.ServerTimestamp,
		repository.FieldDueDate:     due,
		repository.FieldCompletedAt: nil,
	})
	if err != nil {
		return "", fail(span, err, "failed to add task")
	}
	s.logger.Info("Added task", zap.String("id", id), zap.Strings("types", types))
	return id, nil
}

// ToggleComplete flips completion. completedAt is set on completion and cleared on reopening.
func (s *TaskService) ToggleComplete(ctx context.Context, id string) (*models.Task, error) {
	ctx, span := s.start(ctx, "TaskService.ToggleComplete")
	defer span.End()

	task, err := s.repos.Tasks.Get(ctx, id)
	if err != nil {
		return nil, fail(span, err, "failed to load task")
	}
	if task == nil {
		return nil, fail(span, notFound("task", id), "task not found")
	}

	update := map[string]interface{}{
		repository.FieldCompleted:   !task.Completed,
		repository.FieldCompletedAt: nil,
	}
	task.Completed = !task.Completed
	task.CompletedAt = nil
	if task.Completed {
		now := s.localNow()
		update[repository.FieldCompletedAt] = now
		task.CompletedAt = &now
	}
	if err := s.repos.Tasks.Update(ctx, id, update); err != nil {
		return nil, fail(span, err, "failed to toggle task")
	}
	s.logger.Debug("Toggled task", zap.String("id", id), zap.Bool("completed", task.Completed))
	return task, nil
}

// Postpone moves the due date to one day from now, whatever it was before.
func (s *TaskService) Postpone(ctx context.Context, id string) (time.Time, error) {
	ctx, span := s.start(ctx, "TaskService.Postpone")
	defer span.End()

	due := s.localNow().Add(postponeBy)
	if err := s.repos.Tasks.Update(ctx, id, map[string]interface{}{repository.FieldDueDate: due}); err != nil {
		return time.Time{}, fail(span, err, "failed to postpone task")
	}
	return due, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	ctx, span := s.start(ctx, "TaskService.DeleteTask")
	defer span.End()

	if err := s.repos.Tasks.Delete(ctx, id); err != nil {
		return fail(span, err, "failed to delete task")
	}
	return nil
}

// ListTasks returns every task, newest first.
func (s *TaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	ctx, span := s.start(ctx, "TaskService.ListTasks")
	defer span.End()

	tasks, err := s.repos.Tasks.List(ctx)
	if err != nil {
		return nil, fail(span, err, "failed to list tasks")
	}
	return tasks, nil
}

// Board builds the planner board for view as of now.
func (s *TaskService) Board(ctx context.Context, view models.TaskType) (planner.Board, error) {
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return planner.Board{}, err
	}
	return planner.Build(tasks, s.localNow(), view), nil
}

// WatchBoard keeps the planner board for view current.
func (s *TaskService) WatchBoard(ctx context.Context, view models.TaskType) (*projection.Handle[planner.Board], error) {
	return projection.Watch(ctx, s.repos.Tasks, s.repos.Tasks.Query(), projection.TaskBoard(view, s.localNow), s.logger)
}
