// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/popquiz/internal/analytics"
	"github.com/tomtom215/popquiz/internal/middleware"
	"github.com/tomtom215/popquiz/internal/models"
	"github.com/tomtom215/popquiz/internal/store"
	"github.com/tomtom215/popquiz/internal/store/storetest"
)

// envelope is models.APIResponse with the data left raw.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

type testServer struct {
	handler *Handler
	store   store.Store
	http    http.Handler
}

func newTestServer(t *testing.T, opts Options) *testServer {
	t.Helper()
	st := storetest.Seeded(t, func(*testing.T) store.Store { return store.NewMemory() })

	engine, err := analytics.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if opts.Backend == "" {
		opts.Backend = "memory"
	}
	h := NewHandler(st, engine, opts)
	t.Cleanup(h.Close)

	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = true
	return &testServer{
		handler: h,
		store:   st,
		http:    NewRouter(h, NewChiMiddleware(mwCfg)).SetupChi(),
	}
}

func (s *testServer) do(t *testing.T, method, target string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.http.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: decode envelope: %v\n%s", method, target, err, w.Body.String())
		}
	}
	return w, env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v\n%s", err, env.Data)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, Options{Version: "1.2.3"})

	w, env := s.do(t, http.MethodGet, "/api/v1/health", nil)
	if w.Code != http.StatusOK || env.Status != "success" {
		t.Fatalf("status = %d / %q", w.Code, env.Status)
	}
	var health models.HealthStatus
	decodeData(t, env, &health)
	if health.Status != "healthy" || !health.StoreConnected || health.Backend != "memory" || health.Version != "1.2.3" {
		t.Errorf("health = %+v", health)
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("request ID header missing")
	}
}

func TestHealth_StoreDown(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, Options{})
	if err := s.store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	w, env := s.do(t, http.MethodGet, "/api/v1/health", nil)
	var health models.HealthStatus
	decodeData(t, env, &health)
	if w.Code != http.StatusOK || health.Status != "degraded" || health.StoreConnected {
		t.Errorf("health = %d %+v, want degraded", w.Code, health)
	}

	w, env = s.do(t, http.MethodGet, "/api/v1/health/ready", nil)
	if w.Code != http.StatusServiceUnavailable || env.Error == nil || env.Error.Code != models.ErrCodeUnavailable {
		t.Errorf("ready = %d %+v, want 503", w.Code, env.Error)
	}

	if w, _ := s.do(t, http.MethodGet, "/api/v1/health/live", nil); w.Code != http.StatusOK {
		t.Errorf("live = %d, want 200", w.Code)
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, Options{})

	w, env := s.do(t, http.MethodGet, "/api/v1/categories", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var cats []analytics.Category
	decodeData(t, env, &cats)
	if len(cats) != 2 || cats[0].Slug != "movies" || cats[1].Slug != "artists" {
		t.Errorf("categories = %+v", cats)
	}
	if env.Metadata.Count == nil || *env.Metadata.Count != 2 {
		t.Errorf("metadata count = %v", env.Metadata.Count)
	}
}

func TestCategoryEndpoints(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, Options{})

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"ranking", "/api/v1/categories/movies/ranking", http.StatusOK},
		{"ranking simple", "/api/v1/categories/movies/ranking?mode=simple", http.StatusOK},
		{"ranking bad mode", "/api/v1/categories/movies/ranking?mode=median", http.StatusBadRequest},
		{"decades", "/api/v1/categories/movies/decades", http.StatusOK},
		{"divisive", "/api/v1/categories/movies/divisive?metric=stddev", http.StatusOK},
		{"divisive bad metric", "/api/v1/categories/movies/divisive?metric=range", http.StatusBadRequest},
		{"eclectic", "/api/v1/categories/movies/eclectic", http.StatusOK},
		{"clusters", "/api/v1/categories/movies/clusters", http.StatusOK},
		{"compare", "/api/v1/categories/movies/compare?user1=ann&user2=bob", http.StatusOK},
		{"compare bad policy", "/api/v1/categories/movies/compare?user1=ann&user2=bob&policy=fuzzy", http.StatusBadRequest},
		{"compare missing user", "/api/v1/categories/movies/compare?user1=ann", http.StatusBadRequest},
		{"compare unknown user", "/api/v1/categories/movies/compare?user1=ann&user2=zoe", http.StatusNotFound},
		{"compare3", "/api/v1/categories/movies/compare3?user1=ann&user2=bob&user3=cat", http.StatusOK},
		{"compare3 duplicate", "/api/v1/categories/movies/compare3?user1=ann&user2=bob&user3=ann", http.StatusBadRequest},
		{"compare3 bad membership", "/api/v1/categories/movies/compare3?user1=ann&user2=bob&user3=cat&membership=any", http.StatusBadRequest},
		{"compatibility", "/api/v1/categories/movies/compatibility/ann", http.StatusOK},
		{"compatibility unknown", "/api/v1/categories/movies/compatibility/zoe", http.StatusNotFound},
		{"item", "/api/v1/categories/movies/items/10", http.StatusOK},
		{"item in other category", "/api/v1/categories/movies/items/20", http.StatusNotFound},
		{"item bad id", "/api/v1/categories/movies/items/abc", http.StatusBadRequest},
		{"queue", "/api/v1/categories/movies/queue/bob", http.StatusOK},
		{"unknown category", "/api/v1/categories/books/ranking", http.StatusNotFound},
		{"malformed slug", "/api/v1/categories/Bad_Slug/ranking", http.StatusBadRequest},
		{"profile", "/api/v1/users/ann/profile?sort=year", http.StatusOK},
		{"profile bad sort", "/api/v1/users/ann/profile?sort=vote", http.StatusBadRequest},
		{"profile unknown", "/api/v1/users/zoe/profile", http.StatusNotFound},
		{"unknown route", "/api/v1/nothing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := s.do(t, http.MethodGet, tt.target, nil)
			if w.Code != tt.want {
				t.Fatalf("GET %s = %d, want %d\n%s", tt.target, w.Code, tt.want, w.Body.String())
			}
			if tt.want != http.StatusOK && (env.Status != "error" || env.Error == nil) {
				t.Errorf("error envelope = %+v", env)
			}
		})
	}
}

func TestRanking_Metadata(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, Options{})

	_, env := s.do(t, http.MethodGet, "/api/v1/categories/movies/ranking", nil)
	var ranked []analytics.RankedItem
	decodeData(t, env, &ranked)
	if len(ranked) != 2 {
		t.Fatalf("len(ranked) = %d, want 2", len(ranked))
	}
	if env.Metadata.Category != "movies" || env.Metadata.Scheme != analytics.SchemeFiveLevel {
		t.Errorf("metadata = %+v", env.Metadata)
	}
}

func TestCompare_UsesDisplayNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fullNames bool
		want      string
	}{
		{false, "Bob B"},
		{true, "Bob Baker"},
	}
	for _, tt := range tests {
		s := newTestServer(t, Options{FullNames: tt.fullNames})
		_, env := s.do(t, http.MethodGet, "/api/v1/categories/movies/compare?user1=ann&user2=bob&policy=exact", nil)

		var view models.ComparisonView
		decodeData(t, env, &view)
		if view.Second.DisplayName != tt.want {
			t.Errorf("fullNames=%v display name = %q, want %q", tt.fullNames, view.Second.DisplayName, tt.want)
		}
		if view.Policy.Kind != analytics.PolicyExact || view.Compatibility.Common != 1 {
			t.Errorf("comparison = %+v", view)
		}
	}
}

func TestCompatibilityBoard(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, Options{})

	_, env := s.do(t, http.MethodGet, "/api/v1/categories/movies/compatibility/ann", nil)
	var board models.CompatibilityBoardView
	decodeData(t, env, &board)
	if len(board.Matches) != 1 || board.Matches[0].User.Username != "bob" {
		t.Errorf("matches = %+v, want bob only", board.Matches)
	}
	if board.Most == nil || board.Most.User.Username != "bob" {
		t.Errorf("most = %+v", board.Most)
	}
}

func TestItemAndQueue(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, Options{})

	_, env := s.do(t, http.MethodGet, "/api/v1/categories/movies/items/10", nil)
	var item models.ItemBreakdownView
	decodeData(t, env, &item)
	if item.Item.Title != "Heat" || item.Tally.TotalOpinionated != 2 {
		t.Errorf("item = %+v", item)
	}

	_, env = s.do(t, http.MethodGet, "/api/v1/categories/movies/queue/bob", nil)
	var q analytics.QueueState
	decodeData(t, env, &q)
	if q.Next == nil || q.Next.Title != "Alien" || q.Rated != 1 || q.Remaining != 1 || q.Total != 2 {
		t.Errorf("queue = %+v", q)
	}
}

func TestProfile(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, Options{})

	_, env := s.do(t, http.MethodGet, "/api/v1/users/ann/profile", nil)
	var p models.ProfileView
	decodeData(t, env, &p)
	if p.User.Username != "ann" || p.Total != 2 || p.Sort != analytics.SortTitle {
		t.Errorf("profile = %+v", p)
	}
}

func TestSubmitRating(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, Options{SnapshotTTL: time.Minute})

	// warm the cache so the write has something to invalidate
	if w, _ := s.do(t, http.MethodGet, "/api/v1/categories/movies/queue/bob", nil); w.Code != http.StatusOK {
		t.Fatalf("queue status = %d", w.Code)
	}

	w, env := s.do(t, http.MethodPost, "/api/v1/ratings", models.RatingSubmission{
		Username: "bob",
		ItemID:   11,
		Level:    "hated",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", w.Code, w.Body.String())
	}
	var receipt models.RatingReceipt
	decodeData(t, env, &receipt)
	if receipt.Rating.UserID != 2 || receipt.Rating.ItemID != 11 || receipt.Rating.Level != analytics.LevelHated {
		t.Errorf("rating = %+v", receipt.Rating)
	}
	if !receipt.Queue.Completed || receipt.Queue.Next != nil || receipt.Queue.Rated != 2 {
		t.Errorf("queue = %+v, want completed", receipt.Queue)
	}

	// the cached snapshot must reflect the write
	_, env = s.do(t, http.MethodGet, "/api/v1/categories/movies/queue/bob", nil)
	var q analytics.QueueState
	decodeData(t, env, &q)
	if !q.Completed {
		t.Errorf("queue after write = %+v, want completed", q)
	}

	recs, err := s.store.Ratings(context.Background(), 1)
	if err != nil {
		t.Fatalf("Ratings() error = %v", err)
	}
	if len(recs) != 4 {
		t.Errorf("stored ratings = %d, want 4", len(recs))
	}
}

func TestSubmitRating_Rejected(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, Options{})

	tests := []struct {
		name     string
		body     interface{}
		want     int
		wantCode string
	}{
		{"unknown level", models.RatingSubmission{Username: "bob", ItemID: 11, Level: "superb"}, http.StatusBadRequest, models.ErrCodeValidation},
		{"wrong scheme", models.RatingSubmission{Username: "bob", ItemID: 11, Level: "yes"}, http.StatusBadRequest, models.ErrCodeValidation},
		{"missing item", models.RatingSubmission{Username: "bob", Level: "liked"}, http.StatusBadRequest, models.ErrCodeValidation},
		{"bad username", models.RatingSubmission{Username: "bob smith", ItemID: 11, Level: "liked"}, http.StatusBadRequest, models.ErrCodeValidation},
		{"unknown user", models.RatingSubmission{Username: "zoe", ItemID: 11, Level: "liked"}, http.StatusNotFound, models.ErrCodeNotFound},
		{"unknown item", models.RatingSubmission{Username: "bob", ItemID: 99, Level: "liked"}, http.StatusNotFound, models.ErrCodeNotFound},
		{"unknown field", `{"username":"bob","item_id":11,"level":"liked","stars":5}`, http.StatusBadRequest, models.ErrCodeValidation},
		{"not json", `level=liked`, http.StatusBadRequest, models.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := s.do(t, http.MethodPost, "/api/v1/ratings", tt.body)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d\n%s", w.Code, tt.want, w.Body.String())
			}
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
		})
	}

	recs, err := s.store.Ratings(context.Background(), 0)
	if err != nil {
		t.Fatalf("Ratings() error = %v", err)
	}
	if len(recs) != 4 {
		t.Errorf("rejected submissions changed the store: %d ratings", len(recs))
	}
}

func TestSubmitRating_MethodNotAllowed(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, Options{})

	w, env := s.do(t, http.MethodGet, "/api/v1/ratings", nil)
	if w.Code != http.StatusMethodNotAllowed || env.Error == nil || env.Error.Code != models.ErrCodeMethod {
		t.Errorf("GET /ratings = %d %+v", w.Code, env.Error)
	}
}

func TestPerformance(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, Options{})
	if w, _ := s.do(t, http.MethodGet, "/api/v1/performance", nil); w.Code != http.StatusNotFound {
		t.Errorf("without monitor = %d, want 404", w.Code)
	}

	s = newTestServer(t, Options{
		Monitor:     middleware.NewPerformanceMonitor(100, 0),
		SnapshotTTL: time.Minute,
	})
	s.do(t, http.MethodGet, "/api/v1/categories/movies/ranking", nil)
	s.do(t, http.MethodGet, "/api/v1/categories/movies/ranking", nil)

	w, env := s.do(t, http.MethodGet, "/api/v1/performance", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var report PerformanceReport
	decodeData(t, env, &report)
	if len(report.Endpoints) == 0 || report.Endpoints[0].Endpoint != "GET /api/v1/categories/{slug}/ranking" {
		t.Errorf("endpoints = %+v", report.Endpoints)
	}
	if report.SnapshotCache == nil || report.SnapshotCache.Hits != 1 || report.SnapshotCache.Misses != 1 {
		t.Errorf("snapshot cache = %+v, want 1 hit 1 miss", report.SnapshotCache)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, Options{})
	s.do(t, http.MethodGet, "/api/v1/categories", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.http.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("popquiz_api_requests_total")) {
		t.Errorf("/metrics = %d, missing popquiz_api_requests_total", w.Code)
	}
}
