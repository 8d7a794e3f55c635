package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/matt-dz/cookbox/internal/api/requestid"
	"github.com/matt-dz/cookbox/internal/metrics"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestAddRequestID(t *testing.T) {
	var first, second ulid.ULID
	capture := func(dst *ulid.ULID) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*dst = requestid.ExtractRequestID(r.Context())
		})
	}

	AddRequestID(capture(&first)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	AddRequestID(capture(&second)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if first == (ulid.ULID{}) || second == (ulid.ULID{}) {
		t.Fatalf("expected request ids to be set, got %s and %s", first, second)
	}
	if first == second {
		t.Fatalf("consecutive requests share request id %s", first)
	}
}

func TestAddCors(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		origin     string
		wantHeader string
	}{
		{
			name:       "wildcard",
			allowed:    []string{"*"},
			origin:     "http://192.168.1.20:19006",
			wantHeader: "*",
		},
		{
			name:       "listed origin",
			allowed:    []string{"https://cookbox.example.com"},
			origin:     "https://cookbox.example.com",
			wantHeader: "https://cookbox.example.com",
		},
		{
			name:       "unlisted origin",
			allowed:    []string{"https://cookbox.example.com"},
			origin:     "https://evil.example.com",
			wantHeader: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := AddCors(tt.allowed)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodOptions, "/recipes", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if called {
				t.Error("preflight request should not reach the handler")
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantHeader {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantHeader)
			}
		})
	}
}

func TestRecordMetrics(t *testing.T) {
	r := chi.NewRouter()
	r.Use(RecordMetrics)
	r.Delete("/recipes/{recipeID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodDelete, "/recipes/{recipeID}", "200")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/recipes/"+id, nil))
	}

	if got := testutil.ToFloat64(counter); got != before+2 {
		t.Errorf("requests counter = %v, want %v", got, before+2)
	}
}
