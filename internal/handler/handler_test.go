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
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap/zaptest"

	"blockarchitech.com/lifeboard/internal/config"
	"blockarchitech.com/lifeboard/internal/models"
	"blockarchitech.com/lifeboard/internal/projection"
	"blockarchitech.com/lifeboard/internal/repository"
	"blockarchitech.com/lifeboard/internal/service"
	"blockarchitech.com/lifeboard/internal/storage"
	"blockarchitech.com/lifeboard/internal/view"
)

var testNow = time.Date(2024, 5, 15, 14, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t)
	clock := func() time.Time { return testNow }

	store := storage.NewInMemoryStore(logger, storage.WithClock(clock))
	tracer := noop.NewTracerProvider().Tracer("test")
	services := service.New(repository.New(store, logger), tracer, logger, time.UTC, service.WithClock(clock))
	views, err := view.NewHTMLTemplateManager(logger)
	if err != nil {
		t.Fatalf("templates: %v", err)
	}

	router := gin.New()
	NewHttpHandlers(logger, cfg, services, views, tracer).RegisterRoutes(router)
	return router
}

func do(router http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestAddTaskAndBoard(t *testing.T) {
	router := newTestRouter(t, &config.Config{})

	w := do(router, http.MethodPost, "/api/v1/tasks", `{"text":"water plants","types":["Daily"]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	id, _ := decode(t, w)["id"].(string)
	if id == "" {
		t.Fatalf("expected an id in %s", w.Body.String())
	}

	if w := do(router, http.MethodPost, "/api/v1/tasks/"+id+"/toggle", ""); w.Code != http.StatusOK {
		t.Fatalf("toggle: expected 200, got %d", w.Code)
	}

	w = do(router, http.MethodGet, "/api/v1/tasks/board?view=Daily", "")
	if w.Code != http.StatusOK {
		t.Fatalf("board: expected 200, got %d", w.Code)
	}
	completed := decode(t, w)["completed"].(map[string]interface{})
	if today := completed["today"].([]interface{}); len(today) != 1 {
		t.Fatalf("expected task in today bucket, got %v", completed)
	}

	if w := do(router, http.MethodGet, "/api/v1/tasks/board?view=Hourly", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown view, got %d", w.Code)
	}
}

func TestValidationErrorsAreReportedPerField(t *testing.T) {
	router := newTestRouter(t, &config.Config{})

	w := do(router, http.MethodPost, "/api/v1/finance/spending", `{"item":"","amount":"abc","category":"Yacht","date":"2024-05-01"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	fields := decode(t, w)["fields"].([]interface{})
	got := map[string]bool{}
	for _, f := range fields {
		got[f.(map[string]interface{})["field"].(string)] = true
	}
	for _, want := range []string{"item", "amount", "category"} {
		if !got[want] {
			t.Fatalf("expected %s error, got %v", want, fields)
		}
	}

	if w := do(router, http.MethodPost, "/api/v1/ideas", `{"text":`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", w.Code)
	}
}

func TestMissingRecordsAreNotFound(t *testing.T) {
	router := newTestRouter(t, &config.Config{})
	for _, tc := range []struct{ method, target, body string }{
		{http.MethodPost, "/api/v1/tasks/nope/toggle", ""},
		{http.MethodGet, "/api/v1/apps/nope", ""},
		{http.MethodPost, "/api/v1/apps/nope/metrics", `{"date":"2024-05-01"}`},
		{http.MethodGet, "/api/v1/mood/2024-05-01", ""},
		{http.MethodPatch, "/api/v1/ideas/nope", `{"priority":"High"}`},
	} {
		if w := do(router, tc.method, tc.target, tc.body); w.Code != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d", tc.method, tc.target, w.Code)
		}
	}
	if w := do(router, http.MethodDelete, "/api/v1/food/nope", ""); w.Code != http.StatusNoContent {
		t.Fatalf("expected deleting a missing entry to succeed, got %d", w.Code)
	}
}

func TestMonthlySummaryEndpoints(t *testing.T) {
	router := newTestRouter(t, &config.Config{})
	do(router, http.MethodPost, "/api/v1/finance/income", `{"source":"Salary","date":"2024-05-01","amount":"1000"}`)
	do(router, http.MethodPost, "/api/v1/finance/spending", `{"item":"Market","amount":"250,5","category":"Gıda","date":"2024-05-20"}`)

	w := do(router, http.MethodGet, "/api/v1/finance/summary?month=2024-05", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decode(t, w)
	if body["totalIncome"] != "1000" || body["netBalance"] != "749.5" {
		t.Fatalf("unexpected summary: %v", body)
	}

	if w := do(router, http.MethodGet, "/api/v1/finance/summary?month=2024-5", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad month, got %d", w.Code)
	}

	w = do(router, http.MethodGet, "/summary", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Monthly summary: 2024-05") {
		t.Fatalf("expected current month page, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRecurringPaidToggle(t *testing.T) {
	router := newTestRouter(t, &config.Config{})
	w := do(router, http.MethodPost, "/api/v1/finance/recurring", `{"name":"Rent","amount":"600","dueDay":"1","category":"Kira"}`)
	id := decode(t, w)["id"].(string)

	w = do(router, http.MethodPost, "/api/v1/finance/recurring/"+id+"/paid?month=2024-04", "")
	if w.Code != http.StatusOK || decode(t, w)["paid"] != true {
		t.Fatalf("expected paid, got %d: %s", w.Code, w.Body.String())
	}
	w = do(router, http.MethodPost, "/api/v1/finance/recurring/"+id+"/paid?month=2024-04", "")
	if decode(t, w)["paid"] != false {
		t.Fatalf("expected unpaid after second toggle, got %s", w.Body.String())
	}
}

func TestOptions(t *testing.T) {
	router := newTestRouter(t, &config.Config{})
	w := do(router, http.MethodGet, "/api/v1/meta/options", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decode(t, w)
	if moods := body["moods"].([]interface{}); len(moods) != 17 {
		t.Fatalf("expected 17 moods, got %d", len(moods))
	}
	if body["timezone"] != "UTC" {
		t.Fatalf("unexpected timezone %v", body["timezone"])
	}
}

func TestAuthMiddleware(t *testing.T) {
	router := newTestRouter(t, &config.Config{APIToken: "s3cret"})

	if w := do(router, http.MethodGet, "/api/v1/ideas", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	if w := do(router, http.MethodGet, "/api/v1/ideas", "", "Authorization", "Bearer wrong"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong token, got %d", w.Code)
	}
	if w := do(router, http.MethodGet, "/api/v1/ideas", "", "Authorization", "Bearer s3cret"); w.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", w.Code)
	}
	if w := do(router, http.MethodGet, "/summary?token=s3cret", ""); w.Code != http.StatusOK {
		t.Fatalf("expected query token to work for GET, got %d", w.Code)
	}
	if w := do(router, http.MethodPost, "/api/v1/ideas?token=s3cret", `{"text":"x"}`); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected query token to be refused for POST, got %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t, &config.Config{CORSAllowedOrigins: "http://localhost:3000, https://example.com"})

	w := do(router, http.MethodOptions, "/api/v1/tasks", "", "Origin", "http://localhost:3000")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("unexpected allow origin %q", got)
	}

	w = do(router, http.MethodOptions, "/api/v1/tasks", "", "Origin", "http://evil.test")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS header for unknown origin, got %q", got)
	}
}

func TestIdeasStreamSendsSnapshots(t *testing.T) {
	router := newTestRouter(t, &config.Config{})
	srv := httptest.NewServer(router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/ideas/stream", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("unexpected content type %q", ct)
	}

	lines := bufio.NewScanner(resp.Body)
	next := func() string {
		t.Helper()
		for lines.Scan() {
			if line := lines.Text(); strings.HasPrefix(line, "data:") {
				return strings.TrimPrefix(line, "data:")
			}
		}
		t.Fatalf("stream ended: %v", lines.Err())
		return ""
	}

	if first := next(); first != "[]" {
		t.Fatalf("expected empty initial snapshot, got %s", first)
	}
	do(router, http.MethodPost, "/api/v1/ideas", `{"text":"open a bakery"}`)
	if second := next(); !strings.Contains(second, "open a bakery") {
		t.Fatalf("expected new idea in snapshot, got %s", second)
	}
}

type failedIdeas struct{ err error }

func (f failedIdeas) Watch(ctx context.Context, q storage.Query) (*storage.Subscription, error) {
	return storage.FailedSubscription(f.err), nil
}

func (f failedIdeas) Decode(docs []storage.Document) []models.Idea {
	return nil
}

func TestStreamSendsErrorEventWhenSubscriptionFails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t)
	h := NewHttpHandlers(logger, &config.Config{}, nil, nil, noop.NewTracerProvider().Tracer("test"))
	router := gin.New()
	router.GET("/stream", func(c *gin.Context) {
		ctx, span := h.Tracer.Start(c.Request.Context(), "stream")
		defer span.End()
		p, err := projection.Watch(ctx, failedIdeas{err: errors.New("listener failed")},
			storage.Query{Path: storage.Col("ideas")}, projection.List[models.Idea], logger)
		if err != nil {
			h.respondError(c, span, err, "Failed to watch ideas")
			return
		}
		streamProjection(h, c, span, p)
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	for i := 0; i < 20; i++ {
		resp, err := http.Get(srv.URL + "/stream")
		if err != nil {
			t.Fatalf("open stream: %v", err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatalf("read stream: %v", err)
		}
		if !strings.Contains(string(body), "event:error") {
			t.Fatalf("run %d: expected error event, got %q", i, body)
		}
	}
}
