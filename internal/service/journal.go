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
	"sort"
	"strings"

	"go.uber.org/zap"

	"blockarchitech.com/lifeboard/internal/models"
	"blockarchitech.com/lifeboard/internal/projection"
	"blockarchitech.com/lifeboard/internal/repository"
	"blockarchitech.com/lifeboard/internal/storage"
	"blockarchitech.com/lifeboard/internal/utils"
	"blockarchitech.com/lifeboard/internal/validation"
)

type MoodService struct {
	base
}

// SaveMood upserts the mood record of form.Date (today when blank). Saving the
// same day twice merges into the one record. An energy of zero means unset.
func (s *MoodService) SaveMood(ctx context.Context, form validation.MoodForm) (*models.MoodEntry, error) {
	ctx, span := s.start(ctx, "MoodService.SaveMood")
	defer span.End()

	if form.Energy == 0 {
		form.Energy = models.DefaultEnergy
	}
	if form.Date == "" {
		form.Date = utils.DateKey(s.localNow())
	}
	if err := validation.Struct(form); err != nil {
		return nil, err
	}
	moods := make([]string, 0, len(form.Moods))
	seen := make(map[string]bool)
	for _, m := range form.Moods {
		if !seen[m] {
			seen[m] = true
			moods = append(moods, m)
		}
	}

	err := s.repos.Moods.Set(ctx, form.Date, map[string]interface{}{
		repository.FieldDate:      form.Date,
		repository.FieldMoods:     moods,
		repository.FieldEnergy:    form.Energy,
		repository.FieldNotes:     strings.TrimSpace(form.Notes),
		repository.FieldUpdatedAt: storage.ServerTimestamp,
	}, true)
	if err != nil {
		return nil, fail(span, err, "failed to save mood")
	}
	s.logger.Info("Saved mood", zap.String("date", form.Date), zap.Int("energy", form.Energy))

	entry, err := s.repos.Moods.Get(ctx, form.Date)
	if err != nil {
		return nil, fail(span, err, "failed to reload mood")
	}
	if entry == nil {
		return nil, notFound("mood", form.Date)
	}
	return entry, nil
}

// GetMood returns the record for date, or nil when the day has none.
func (s *MoodService) GetMood(ctx context.Context, date string) (*models.MoodEntry, error) {
	ctx, span := s.start(ctx, "MoodService.GetMood")
	defer span.End()

	if _, err := utils.ParseDate(date, s.loc); err != nil {
		return nil, validation.Field("date", "date", "must be a date in YYYY-MM-DD form")
	}
	entry, err := s.repos.Moods.Get(ctx, date)
	if err != nil {
		return nil, fail(span, err, "failed to get mood")
	}
	return entry, nil
}

// ListMoods returns every mood record, most recent day first.
func (s *MoodService) ListMoods(ctx context.Context) ([]models.MoodEntry, error) {
	ctx, span := s.start(ctx, "MoodService.ListMoods")
	defer span.End()

	entries, err := s.repos.Moods.List(ctx)
	if err != nil {
		return nil, fail(span, err, "failed to list moods")
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
	return entries, nil
}

type ActivityService struct {
	base
}

func (s *ActivityService) AddActivity(ctx context.Context, form validation.ActivityForm) (string, error) {
	ctx, span := s.start(ctx, "ActivityService.AddActivity")
	defer span.End()

	if err := validation.Struct(form); err != nil {
		return "", err
	}
	at, err := utils.CombineDateTime(form.Date, form.Time, s.loc)
	if err != nil {
		return "", validation.Field("time", "clock", err.Error())
	}
	minutes, _ := utils.ParseInt(form.DurationMinutes)

	data := map[string]interface{}{
		repository.FieldActivityType:    form.ActivityType,
		repository.FieldActivityTime:    at,
		repository.FieldDurationMinutes: minutes,
		repository.FieldCreatedAt:       storage.ServerTimestamp,
	}
	if desc := strings.TrimSpace(form.Description); desc != "" {
		data[repository.FieldDescription] = desc
	}
	id, err := s.repos.Activities.Add(ctx, data)
	if err != nil {
		return "", fail(span, err, "failed to add activity")
	}
	s.logger.Info("Added activity", zap.String("id", id), zap.String("type", form.ActivityType))
	return id, nil
}

// ListActivities returns activities, most recent first.
func (s *ActivityService) ListActivities(ctx context.Context) ([]models.ActivityEntry, error) {
	ctx, span := s.start(ctx, "ActivityService.ListActivities")
	defer span.End()

	entries, err := s.repos.Activities.List(ctx)
	if err != nil {
		return nil, fail(span, err, "failed to list activities")
	}
	return entries, nil
}

// ActivitiesByDay returns activities grouped into calendar days.
func (s *ActivityService) ActivitiesByDay(ctx context.Context) ([]projection.DayGroup[models.ActivityEntry], error) {
	entries, err := s.ListActivities(ctx)
	if err != nil {
		return nil, err
	}
	return projection.ActivitiesByDay(s.loc)(entries), nil
}

func (s *ActivityService) DeleteActivity(ctx context.Context, id string) error {
	ctx, span := s.start(ctx, "ActivityService.DeleteActivity")
	defer span.End()

	if err := s.repos.Activities.Delete(ctx, id); err != nil {
		return fail(span, err, "failed to delete activity")
	}
	return nil
}

func (s *ActivityService) WatchByDay(ctx context.Context) (*projection.Handle[[]projection.DayGroup[models.ActivityEntry]], error) {
	return projection.Watch(ctx, s.repos.Activities, s.repos.Activities.Query(), projection.ActivitiesByDay(s.loc), s.logger)
}

type FoodService struct {
	base
}

// AddFood records a meal at form.Time on form.Date, today when no date is given.
func (s *FoodService) AddFood(ctx context.Context, form validation.FoodForm) (string, error) {
	ctx, span := s.start(ctx, "FoodService.AddFood")
	defer span.End()

	if form.Date == "" {
		form.Date = utils.DateKey(s.localNow())
	}
	if err := validation.Struct(form); err != nil {
		return "", err
	}
	at, err := utils.CombineDateTime(form.Date, form.Time, s.loc)
	if err != nil {
		return "", validation.Field("time", "clock", err.Error())
	}

	id, err := s.repos.Food.Add(ctx, map[string]interface{}{
		repository.FieldEntryTime:       at,
		repository.FieldFoodDescription: strings.TrimSpace(form.FoodDescription),
		repository.FieldCreatedAt:       storage.ServerTimestamp,
	})
	if err != nil {
		return "", fail(span, err, "failed to add food entry")
	}
	s.logger.Info("Added food entry", zap.String("id", id), zap.Time("entryTime", at))
	return id, nil
}

func (s *FoodService) ListFood(ctx context.Context) ([]models.FoodEntry, error) {
	ctx, span := s.start(ctx, "FoodService.ListFood")
	defer span.End()

	entries, err := s.repos.Food.List(ctx)
	if err != nil {
		return nil, fail(span, err, "failed to list food entries")
	}
	return entries, nil
}

// FoodByDay returns food entries grouped into calendar days.
func (s *FoodService) FoodByDay(ctx context.Context) ([]projection.DayGroup[models.FoodEntry], error) {
	entries, err := s.ListFood(ctx)
	if err != nil {
		return nil, err
	}
	return projection.FoodByDay(s.loc)(entries), nil
}

func (s *FoodService) DeleteFood(ctx context.Context, id string) error {
	ctx, span := s.start(ctx, "FoodService.DeleteFood")
	defer span.End()

	if err := s.repos.Food.Delete(ctx, id); err != nil {
		return fail(span, err, "failed to delete food entry")
	}
	return nil
}

func (s *FoodService) WatchByDay(ctx context.Context) (*projection.Handle[[]projection.DayGroup[models.FoodEntry]], error) {
	return projection.Watch(ctx, s.repos.Food, s.repos.Food.Query(), projection.FoodByDay(s.loc), s.logger)
}
