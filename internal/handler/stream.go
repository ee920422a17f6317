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
	"io"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"blockarchitech.com/lifeboard/internal/projection"
)

// streamProjection writes every view produced by p as a server-sent "snapshot"
// event until the client goes away or the projection fails. It closes p.
func streamProjection[V any](h *HttpHandlers, c *gin.Context, span trace.Span, p *projection.Handle[V]) {
	defer p.Close()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	fail := func(err error) {
		h.logger.Error("Projection stream failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		span.RecordError(err)
		span.SetStatus(codes.Error, "projection failed")
		c.SSEvent("error", gin.H{"error": "stream failed"})
	}
	c.Stream(func(w io.Writer) bool {
		select {
		case v, ok := <-p.Updates():
			if !ok {
				select {
				case err := <-p.Err():
					fail(err)
				default:
				}
				return false
			}
			c.SSEvent("snapshot", v)
			return true
		case err := <-p.Err():
			fail(err)
			return false
		case <-c.Request.Context().Done():
			return false
		}
	})
}
