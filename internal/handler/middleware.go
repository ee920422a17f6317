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
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blockarchitech.com/lifeboard/internal/utils"
)

// AuthMiddleware requires the configured API token when one is set. GET
// requests may pass it as a "token" query parameter, since EventSource
// streams and the summary page cannot set headers.
func (h *HttpHandlers) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.config.APIToken == "" {
			c.Next()
			return
		}
		_, span := h.Tracer.Start(c.Request.Context(), "AuthMiddleware")
		defer span.End()

		token, err := utils.GetTokenFromHeader(c.Request)
		if err != nil && c.Request.Method == http.MethodGet {
			token, err = utils.GetTokenFromQuery(c.Request)
		}
		if err != nil {
			h.logger.Warn("Missing or invalid authorization token", zap.Error(err))
			span.RecordError(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !utils.TokensEqual(token, h.config.APIToken) {
			h.logger.Warn("API token mismatch", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

func (h *HttpHandlers) LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		h.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}

func (h *HttpHandlers) CORSMiddleware() gin.HandlerFunc {
	allowed := make(map[string]struct{})
	for _, o := range utils.NonEmpty(utils.SplitAndTrim(h.config.CORSAllowedOrigins, ",")) {
		allowed[o] = struct{}{}
	}
	_, wildcard := allowed["*"]
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			if _, ok := allowed[origin]; ok || wildcard {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Header("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Authorization,Content-Type")
				c.Header("Access-Control-Max-Age", "600")
			}
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
