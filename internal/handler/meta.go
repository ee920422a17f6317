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

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"blockarchitech.com/lifeboard/internal/models"
)

// HandleOptions lists the enumerations the entry forms offer.
func (h *HttpHandlers) HandleOptions(c *gin.Context) {
	_, span := h.Tracer.Start(c.Request.Context(), "HandleOptions")
	defer span.End()

	c.JSON(http.StatusOK, gin.H{
		"taskTypes":           models.TaskTypes,
		"spendingCategories":  models.SpendingCategories,
		"recurringCategories": models.RecurringCategories,
		"platforms":           models.Platforms,
		"appStatuses":         models.AppStatuses,
		"moods":               models.Moods,
		"activityTypes":       models.ActivityTypes,
		"priorities":          models.Priorities,
		"energy": gin.H{
			"min":     models.MinEnergy,
			"max":     models.MaxEnergy,
			"default": models.DefaultEnergy,
		},
		"maxIdeaLength": models.MaxIdeaLength,
		"timezone":      h.services.Location().String(),
	})
}

// HandleSummaryPage renders the monthly finance summary as HTML.
func (h *HttpHandlers) HandleSummaryPage(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleSummaryPage")
	defer span.End()

	month := h.monthParam(c)
	span.SetAttributes(attribute.String("month", month))
	summary, err := h.services.Finance.MonthlySummary(ctx, month)
	if err != nil {
		h.respondError(c, span, err, "Failed to compute monthly summary")
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.views.Render(c.Writer, "summary.html", summary); err != nil {
		h.logger.Error("Failed to render summary page", zap.Error(err), zap.String("month", month))
		span.RecordError(err)
	}
}
