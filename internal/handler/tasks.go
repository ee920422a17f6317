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

	"blockarchitech.com/lifeboard/internal/service"
	"blockarchitech.com/lifeboard/internal/validation"
)

func (h *HttpHandlers) HandleListTasks(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleListTasks")
	defer span.End()

	tasks, err := h.services.Tasks.ListTasks(ctx)
	if err != nil {
		h.respondError(c, span, err, "Failed to list tasks")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *HttpHandlers) HandleAddTask(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleAddTask")
	defer span.End()

	var form validation.TaskForm
	if !bindJSON(c, &form) {
		return
	}
	id, err := h.services.Tasks.AddTask(ctx, form)
	if err != nil {
		h.respondError(c, span, err, "Failed to add task")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// HandleTaskBoard returns the planner board for ?view= (Daily when omitted).
func (h *HttpHandlers) HandleTaskBoard(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleTaskBoard")
	defer span.End()

	view, err := service.ParseView(c.Query("view"))
	if err != nil {
		h.respondError(c, span, err, "Invalid view")
		return
	}
	board, err := h.services.Tasks.Board(ctx, view)
	if err != nil {
		h.respondError(c, span, err, "Failed to build task board")
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *HttpHandlers) HandleStreamTaskBoard(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleStreamTaskBoard")
	defer span.End()

	view, err := service.ParseView(c.Query("view"))
	if err != nil {
		h.respondError(c, span, err, "Invalid view")
		return
	}
	p, err := h.services.Tasks.WatchBoard(ctx, view)
	if err != nil {
		h.respondError(c, span, err, "Failed to watch tasks")
		return
	}
	streamProjection(h, c, span, p)
}

func (h *HttpHandlers) HandleToggleTask(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleToggleTask")
	defer span.End()

	task, err := h.services.Tasks.ToggleComplete(ctx, c.Param("id"))
	if err != nil {
		h.respondError(c, span, err, "Failed to toggle task")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *HttpHandlers) HandlePostponeTask(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandlePostponeTask")
	defer span.End()

	id := c.Param("id")
	due, err := h.services.Tasks.Postpone(ctx, id)
	if err != nil {
		h.respondError(c, span, err, "Failed to postpone task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "dueDate": due})
}

func (h *HttpHandlers) HandleDeleteTask(c *gin.Context) {
	ctx, span := h.Tracer.Start(c.Request.Context(), "HandleDeleteTask")
	defer span.End()

	if err := h.services.Tasks.DeleteTask(ctx, c.Param("id")); err != nil {
		h.respondError(c, span, err, "Failed to delete task")
		return
	}
	c.Status(http.StatusNoContent)
}
