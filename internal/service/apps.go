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
	"blockarchitech.com/lifeboard/internal/utils"
	"blockarchitech.com/lifeboard/internal/validation"
)

type AppService struct {
	base
}

// appData maps a validated form to stored fields. Unset optional fields are written as null.
func (s *AppService) appData(form validation.AppForm) map[string]interface{} {
	platforms := make([]string, 0, len(form.Platforms))
	seen := make(map[string]bool)
	for _, p := range form.Platforms {
		if !seen[p] {
			seen[p] = true
			platforms = append(platforms, p)
		}
	}
	data := map[string]interface{}{
		repository.FieldName:                 strings.TrimSpace(form.Name),
		repository.FieldDescription:          strings.TrimSpace(form.Description),
		repository.FieldPlatform:             platforms,
		repository.FieldStatus:               nil,
		repository.FieldUserCount:            nil,
		repository.FieldMonthlyRevenue:       nil,
		repository.FieldDevelopmentStartDate: nil,
	}
	if form.Status != "" {
		data[repository.FieldStatus] = form.Status
	}
	if form.UserCount != "" {
		n, _ := utils.ParseInt(form.UserCount)
		data[repository.FieldUserCount] = n
	}
	if form.MonthlyRevenue != "" {
		d, _ := utils.ParseLocaleDecimal(form.MonthlyRevenue)
		data[repository.FieldMonthlyRevenue] = d.InexactFloat64()
	}
	if form.DevelopmentStart != "" {
		ym, _ := utils.ParseYearMonth(form.DevelopmentStart)
		data[repository.FieldDevelopmentStartDate] = ym.FirstDay(s.loc)
	}
	return data
}

func (s *AppService) AddApp(ctx context.Context, form validation.AppForm) (string, error) {
	ctx, span := s.start(ctx, "AppService.AddApp")
	defer span.End()

	if err := validation.Struct(form); err != nil {
		return "", err
	}
	data := s.appData(form)
	data[repository.FieldCreatedAt] = storage.ServerTimestamp

	id, err := s.repos.Apps.Add(ctx, data)
	if err != nil {
		return "", fail(span, err, "failed to add app")
	}
	s.logger.Info("Added app", zap.String("id", id), zap.String("name", form.Name))
	return id, nil
}

// UpdateApp replaces every editable field of an existing app and stamps updatedAt.
func (s *AppService) UpdateApp(ctx context.Context, id string, form validation.AppForm) error {
	ctx, span := s.start(ctx, "AppService.UpdateApp")
	defer span.End()

	if err := validation.Struct(form); err != nil {
		return err
	}
	data := s.appData(form)
	data[repository.FieldUpdatedAt] = storage.ServerTimestamp

	if err := s.repos.Apps.Update(ctx, id, data); err != nil {
		return fail(span, err, "failed to update app")
	}
	s.logger.Info("Updated app", zap.String("id", id))
	return nil
}

func (s *AppService) GetApp(ctx context.Context, id string) (*models.App, error) {
	ctx, span := s.start(ctx, "AppService.GetApp")
	defer span.End()

	app, err := s.repos.Apps.Get(ctx, id)
	if err != nil {
		return nil, fail(span, err, "failed to get app")
	}
	if app == nil {
		return nil, notFound("app", id)
	}
	return app, nil
}

// ListApps returns apps newest first, or alphabetically when byName is set.
func (s *AppService) ListApps(ctx context.Context, byName bool) ([]models.App, error) {
	ctx, span := s.start(ctx, "AppService.ListApps")
	defer span.End()

	q := s.repos.Apps.Query()
	if byName {
		q = storage.Query{Path: s.repos.Apps.Path()}.OrderBy(repository.FieldName, storage.Asc)
	}
	apps, err := s.repos.Apps.Find(ctx, q)
	if err != nil {
		return nil, fail(span, err, "failed to list apps")
	}
	return apps, nil
}

// DeleteApp removes the app together with its metric series.
func (s *AppService) DeleteApp(ctx context.Context, id string) error {
	ctx, span := s.start(ctx, "AppService.DeleteApp")
	defer span.End()

	// Unordered, so metrics without a timestamp are included.
	metrics := s.repos.Metrics(id)
	points, err := metrics.Find(ctx, storage.Query{Path: metrics.Path()})
	if err != nil {
		return fail(span, err, "failed to list app metrics")
	}
	for _, m := range points {
		if err := metrics.Delete(ctx, m.ID); err != nil {
			return fail(span, err, "failed to delete app metric")
		}
	}
	if err := s.repos.Apps.Delete(ctx, id); err != nil {
		return fail(span, err, "failed to delete app")
	}
	s.logger.Info("Deleted app", zap.String("id", id), zap.Int("metrics", len(points)))
	return nil
}

// AddMetric appends a data point to an app's series. Blank or unparsable
// numbers are recorded as zero.
func (s *AppService) AddMetric(ctx context.Context, appID string, form validation.MetricForm) (string, error) {
	ctx, span := s.start(ctx, "AppService.AddMetric")
	defer span.End()

	if err := validation.Struct(form); err != nil {
		return "", err
	}
	if _, err := s.GetApp(ctx, appID); err != nil {
		return "", err
	}
	at, _ := utils.ParseDate(form.Date, s.loc)

	id, err := s.repos.Metrics(appID).Add(ctx, map[string]interface{}{
		repository.FieldMetricTimestamp: at,
		repository.FieldUserCount:       utils.IntOrZero(form.UserCount),
		repository.FieldMonthlyRevenue:  utils.DecimalOrZero(form.MonthlyRevenue).InexactFloat64(),
	})
	if err != nil {
		return "", fail(span, err, "failed to add metric")
	}
	s.logger.Info("Added app metric", zap.String("appID", appID), zap.String("id", id))
	return id, nil
}

// ListMetrics returns an app's metrics, oldest first.
func (s *AppService) ListMetrics(ctx context.Context, appID string) ([]models.Metric, error) {
	ctx, span := s.start(ctx, "AppService.ListMetrics")
	defer span.End()

	metrics, err := s.repos.Metrics(appID).List(ctx)
	if err != nil {
		return nil, fail(span, err, "failed to list metrics")
	}
	return metrics, nil
}

// MetricPoints returns the chart series for an app.
func (s *AppService) MetricPoints(ctx context.Context, appID string) ([]projection.MetricPoint, error) {
	metrics, err := s.ListMetrics(ctx, appID)
	if err != nil {
		return nil, err
	}
	return projection.MetricPoints(s.loc)(metrics), nil
}

func (s *AppService) WatchApps(ctx context.Context) (*projection.Handle[[]models.App], error) {
	return projection.Watch(ctx, s.repos.Apps, s.repos.Apps.Query(), projection.List[models.App], s.logger)
}

func (s *AppService) WatchMetrics(ctx context.Context, appID string) (*projection.Handle[[]projection.MetricPoint], error) {
	metrics := s.repos.Metrics(appID)
	return projection.Watch(ctx, metrics, metrics.Query(), projection.MetricPoints(s.loc), s.logger)
}
