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
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"blockarchitech.com/lifeboard/internal/config"
	"blockarchitech.com/lifeboard/internal/service"
	"blockarchitech.com/lifeboard/internal/storage"
	"blockarchitech.com/lifeboard/internal/validation"
	"blockarchitech.com/lifeboard/internal/view"
)

// HttpHandlers holds application-wide state and dependencies.
type HttpHandlers struct {
	logger   *zap.Logger
	config   *config.Config
	services *service.Services
	views    *view.HTMLTemplateManager
	Tracer   trace.Tracer
}

// NewHttpHandlers creates a new HttpHandlers instance.
func NewHttpHandlers(
	logger *zap.Logger,
	cfg *config.Config,
	services *service.Services,
	views *view.HTMLTemplateManager,
	tracer trace.Tracer,
) *HttpHandlers {
	return &HttpHandlers{
		logger:   logger.Named("http_handler"),
		config:   cfg,
		services: services,
		views:    views,
		Tracer:   tracer,
	}
}

// respondError maps err onto the API error taxonomy: validation failures are
// 400 with per-field details, missing records 404, anything else 500 with msg.
func (h *HttpHandlers) respondError(c *gin.Context, span trace.Span, err error, msg string) {
	if verrs, ok := validation.AsErrors(err); ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verrs.Fields})
		return
	}
	if errors.Is(err, storage.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	h.logger.Error(msg, zap.Error(err), zap.String("path", c.Request.URL.Path))
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// bindJSON decodes the request body into form, answering 400 on malformed JSON.
func bindJSON(c *gin.Context, form interface{}) bool {
	if err := c.ShouldBindJSON(form); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return false
	}
	return true
}
