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

	"blockarchitech.com/lifeboard/internal/validation"
)

func (h *HttpHandlers) HandleListMoods(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleListMoods")
	defer span.End()

	entries, err := h.services.Mood.ListMoods(ctx)
	if err != nil {
		h.respondError(c, span, err, "Failed to list moods")
		return
	}
	c.JSON(http.StatusOK, gin.H{"moods": entries})
}

// HandleGetMood returns the record of one day, used to pre-fill the mood form.
func (h *HttpHandlers) HandleGetMood(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleGetMood")
	defer span.End()

	entry, err := h.services.Mood.GetMood(ctx, c.Param("date"))
	if err != nil {
		h.respondError(c, span, err, "Failed to get mood")
		return
	}
	if entry == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *HttpHandlers) HandleSaveMood(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleSaveMood")
	defer span.End()

	var form validation.MoodForm
	if !bindJSON(c, &form) {
		return
	}
	entry, err := h.services.Mood.SaveMood(ctx, form)
	if err != nil {
		h.respondError(c, span, err, "Failed to save mood")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// HandleListActivities returns activities grouped by calendar day.
func (h *HttpHandlers) HandleListActivities(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleListActivities")
	defer span.End()

	days, err := h.services.Activities.ActivitiesByDay(ctx)
	if err != nil {
		h.respondError(c, span, err, "Failed to list activities")
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (h *HttpHandlers) HandleAddActivity(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleAddActivity")
	defer span.End()

	var form validation.ActivityForm
	if !bindJSON(c, &form) {
		return
	}
	id, err := h.services.Activities.AddActivity(ctx, form)
	if err != nil {
		h.respondError(c, span, err, "Failed to add activity")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *HttpHandlers) HandleStreamActivities(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleStreamActivities")
	defer span.End()

	p, err := h.services.Activities.WatchByDay(ctx)
	if err != nil {
		h.respondError(c, span, err, "Failed to watch activities")
		return
	}
	streamProjection(h, c, span, p)
}

func (h *HttpHandlers) HandleDeleteActivity(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleDeleteActivity")
	defer span.End()

	if err := h.services.Activities.DeleteActivity(ctx, c.Param("id")); err != nil {
		h.respondError(c, span, err, "Failed to delete activity")
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleListFood returns food entries grouped by calendar day.
func (h *HttpHandlers) HandleListFood(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleListFood")
	defer span.End()

	days, err := h.services.Food.FoodByDay(ctx)
	if err != nil {
		h.respondError(c, span, err, "Failed to list food entries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (h *HttpHandlers) HandleAddFood(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleAddFood")
	defer span.End()

	var form validation.FoodForm
	if !bindJSON(c, &form) {
		return
	}
	id, err := h.services.Food.AddFood(ctx, form)
	if err != nil {
		h.respondError(c, span, err, "Failed to add food entry")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *HttpHandlers) HandleStreamFood(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleStreamFood")
	defer span.End()

	p, err := h.services.Food.WatchByDay(ctx)
	if err != nil {
		h.respondError(c, span, err, "Failed to watch food entries")
		return
	}
	streamProjection(h, c, span, p)
}

func (h *HttpHandlers) HandleDeleteFood(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleDeleteFood")
	defer span.End()

	if err := h.services.Food.DeleteFood(ctx, c.Param("id")); err != nil {
		h.respondError(c, span, err, "Failed to delete food entry")
		return
	}
	c.Status(http.StatusNoContent)
}
