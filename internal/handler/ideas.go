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

func (h *HttpHandlers) HandleListIdeas(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleListIdeas")
	defer span.End()

	ideas, err := h.services.Ideas.ListIdeas(ctx)
	if err != nil {
		h.respondError(c, span, err, "Failed to list ideas")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ideas": ideas})
}

func (h *HttpHandlers) HandleAddIdea(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleAddIdea")
	defer span.End()

	var form validation.IdeaForm
	if !bindJSON(c, &form) {
		return
	}
	id, err := h.services.Ideas.AddIdea(ctx, form)
	if err != nil {
		h.respondError(c, span, err, "Failed to add idea")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *HttpHandlers) HandleStreamIdeas(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleStreamIdeas")
	defer span.End()

	p, err := h.services.Ideas.WatchIdeas(ctx)
	if err != nil {
		h.respondError(c, span, err, "Failed to watch ideas")
		return
	}
	streamProjection(h, c, span, p)
}

func (h *HttpHandlers) HandleSetIdeaPriority(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleSetIdeaPriority")
	defer span.End()

	var form validation.PriorityForm
	if !bindJSON(c, &form) {
		return
	}
	id := c.Param("id")
	if err := h.services.Ideas.SetPriority(ctx, id, form); err != nil {
		h.respondError(c, span, err, "Failed to set idea priority")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "priority": form.Priority})
}

func (h *HttpHandlers) HandleDeleteIdea(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleDeleteIdea")
	defer span.End()

	if err := h.services.Ideas.DeleteIdea(ctx, c.Param("id")); err != nil {
		h.respondError(c, span, err, "Failed to delete idea")
		return
	}
	c.Status(http.StatusNoContent)
}
