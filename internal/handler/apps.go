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

// HandleListApps lists apps newest first, or by name with ?sort=name.
func (h *HttpHandlers) HandleListApps(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleListApps")
	defer span.End()

	apps, err := h.services.Apps.ListApps(ctx, c.Query("sort") == "name")
	if err != nil {
		h.respondError(c, span, err, "Failed to list apps")
		return
	}
	c.JSON(http.StatusOK, gin.H{"apps": apps})
}

func (h *HttpHandlers) HandleAddApp(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleAddApp")
	defer span.End()

	var form validation.AppForm
	if !bindJSON(c, &form) {
		return
	}
	id, err := h.services.Apps.AddApp(ctx, form)
	if err != nil {
		h.respondError(c, span, err, "Failed to add app")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *HttpHandlers) HandleStreamApps(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleStreamApps")
	defer span.End()

	p, err := h.services.Apps.WatchApps(ctx)
	if err != nil {
		h.respondError(c, span, err, "Failed to watch apps")
		return
	}
	streamProjection(h, c, span, p)
}

func (h *HttpHandlers) HandleGetApp(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleGetApp")
	defer span.End()

	app, err := h.services.Apps.GetApp(ctx, c.Param("id"))
	if err != nil {
		h.respondError(c, span, err, "Failed to get app")
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *HttpHandlers) HandleUpdateApp(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleUpdateApp")
	defer span.End()

	var form validation.AppForm
	if !bindJSON(c, &form) {
		return
	}
	id := c.Param("id")
	if err := h.services.Apps.UpdateApp(ctx, id, form); err != nil {
		h.respondError(c, span, err, "Failed to update app")
		return
	}
	app, err := h.services.Apps.GetApp(ctx, id)
	if err != nil {
		h.respondError(c, span, err, "Failed to get app")
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *HttpHandlers) HandleDeleteApp(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleDeleteApp")
	defer span.End()

	if err := h.services.Apps.DeleteApp(ctx, c.Param("id")); err != nil {
		h.respondError(c, span, err, "Failed to delete app")
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleListMetrics returns the raw metric documents and the chart series derived from them.
func (h *HttpHandlers) HandleListMetrics(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleListMetrics")
	defer span.End()

	id := c.Param("id")
	metrics, err := h.services.Apps.ListMetrics(ctx, id)
	if err != nil {
		h.respondError(c, span, err, "Failed to list metrics")
		return
	}
	points, err := h.services.Apps.MetricPoints(ctx, id)
	if err != nil {
		h.respondError(c, span, err, "Failed to list metrics")
		return
	}
	c.JSON(http.StatusOK, gin.H{"metrics": metrics, "points": points})
}

func (h *HttpHandlers) HandleAddMetric(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleAddMetric")
	defer span.End()

	var form validation.MetricForm
	if !bindJSON(c, &form) {
		return
	}
	id, err := h.services.Apps.AddMetric(ctx, c.Param("id"), form)
	if err != nil {
		h.respondError(c, span, err, "Failed to add metric")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *HttpHandlers) HandleStreamMetrics(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleStreamMetrics")
	defer span.End()

	p, err := h.services.Apps.WatchMetrics(ctx, c.Param("id"))
	if err != nil {
		h.respondError(c, span, err, "Failed to watch metrics")
		return
	}
	streamProjection(h, c, span, p)
}
