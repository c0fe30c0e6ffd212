package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/league-hub/league-hub/internal/domain/idempotency"
)

type memIdemRepo struct {
	mu   sync.Mutex
	recs map[string]*idempotency.Record
}

func newMemIdemRepo() *memIdemRepo {
	return &memIdemRepo{recs: make(map[string]*idempotency.Record)}
}

func identity(key, endpoint, method string, userID int64) string {
	return fmt.Sprintf("%s|%s|%s|%d", key, endpoint, method, userID)
}

func (r *memIdemRepo) Claim(_ context.Context, rec *idempotency.Record) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := identity(rec.Key, rec.Endpoint, rec.Method, rec.UserID)
	if _, ok := r.recs[id]; ok {
		return false, nil
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	cp := *rec
	r.recs[id] = &cp
	return true, nil
}

func (r *memIdemRepo) Get(_ context.Context, key, endpoint, method string, userID int64) (*idempotency.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recs[identity(key, endpoint, method, userID)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *memIdemRepo) Complete(_ context.Context, id uuid.UUID, status int, body []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.recs {
		if rec.ID == id {
			rec.State = idempotency.StateCompleted
			rec.ResponseStatus = status
			rec.ResponseBody = body
		}
	}
	return nil
}

func (r *memIdemRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, rec := range r.recs {
		if rec.ID == id {
			delete(r.recs, k)
		}
	}
	return nil
}

func newIdemRequest(key, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/v1/trades/5/accept", strings.NewReader(body))
	req.Header.Set("X-User-ID", "22")
	if key != "" {
		req.Header.Set(idempotencyHeader, key)
	}
	return req
}

func TestIdempotencyMiddleware(t *testing.T) {
	t.Run("replays the recorded response on retry", func(t *testing.T) {
		repo := newMemIdemRepo()
		mw := NewIdempotencyMiddleware(repo, time.Hour, 0, zerolog.Nop())

		calls := 0
		handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"status":"COMPLETED"}`))
		}))

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, newIdemRequest("key-1", `{"x":1}`))
		require.Equal(t, http.StatusCreated, first.Code)
		require.Equal(t, 1, calls)

		second := httptest.NewRecorder()
		handler.ServeHTTP(second, newIdemRequest("key-1", `{"x":1}`))
		assert.Equal(t, http.StatusCreated, second.Code)
		assert.Equal(t, 1, calls, "handler must not run twice")
		assert.JSONEq(t, `{"status":"COMPLETED"}`, second.Body.String())
		assert.Equal(t, "true", second.Header().Get("Idempotency-Replayed"))
	})

	t.Run("same key with a different body is rejected", func(t *testing.T) {
		repo := newMemIdemRepo()
		mw := NewIdempotencyMiddleware(repo, time.Hour, 0, zerolog.Nop())
		handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, newIdemRequest("key-2", `{"x":1}`))
		require.Equal(t, http.StatusOK, first.Code)

		second := httptest.NewRecorder()
		handler.ServeHTTP(second, newIdemRequest("key-2", `{"x":2}`))
		assert.Equal(t, http.StatusUnprocessableEntity, second.Code)
	})

	t.Run("an in-flight claim returns conflict", func(t *testing.T) {
		repo := newMemIdemRepo()
		mw := NewIdempotencyMiddleware(repo, time.Hour, 0, zerolog.Nop())

		// Pre-seed a pending, unexpired claim for the same identity and
		// body fingerprint.
		_, err := repo.Claim(context.Background(), &idempotency.Record{
			Key:         "key-3",
			Endpoint:    "/v1/trades/5/accept",
			Method:      http.MethodPost,
			UserID:      22,
			Fingerprint: fingerprintBody([]byte(`{"x":1}`)),
			State:       idempotency.StatePending,
			ExpiresAt:   time.Now().UTC().Add(time.Hour),
		})
		require.NoError(t, err)

		handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run while the claim is in flight")
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newIdemRequest("key-3", `{"x":1}`))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("an expired abandoned claim is reclaimed", func(t *testing.T) {
		repo := newMemIdemRepo()
		mw := NewIdempotencyMiddleware(repo, time.Hour, 0, zerolog.Nop())

		_, err := repo.Claim(context.Background(), &idempotency.Record{
			Key:         "key-4",
			Endpoint:    "/v1/trades/5/accept",
			Method:      http.MethodPost,
			UserID:      22,
			Fingerprint: fingerprintBody([]byte(`{"x":1}`)),
			State:       idempotency.StatePending,
			ExpiresAt:   time.Now().UTC().Add(-time.Minute),
		})
		require.NoError(t, err)

		calls := 0
		handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{}`))
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newIdemRequest("key-4", `{"x":1}`))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("requests without a key pass straight through", func(t *testing.T) {
		repo := newMemIdemRepo()
		mw := NewIdempotencyMiddleware(repo, time.Hour, 0, zerolog.Nop())

		calls := 0
		handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusOK)
		}))

		for i := 0; i < 2; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, newIdemRequest("", `{"x":1}`))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
		assert.Equal(t, 2, calls)
	})

	t.Run("oversized responses replay status only", func(t *testing.T) {
		repo := newMemIdemRepo()
		mw := NewIdempotencyMiddleware(repo, time.Hour, 16, zerolog.Nop())

		calls := 0
		handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(strings.Repeat("a", 64)))
		}))

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, newIdemRequest("key-5", `{}`))
		require.Equal(t, http.StatusCreated, first.Code)
		assert.Len(t, first.Body.String(), 64)

		// The claim completed status-only; a retry must not re-execute
		// the mutation even though the body is gone.
		second := httptest.NewRecorder()
		handler.ServeHTTP(second, newIdemRequest("key-5", `{}`))
		assert.Equal(t, http.StatusCreated, second.Code)
		assert.Equal(t, 1, calls, "handler must not run twice")
		assert.Empty(t, second.Body.String())
		assert.Equal(t, "true", second.Header().Get("Idempotency-Replayed"))
		assert.Equal(t, "true", second.Header().Get("Idempotency-Body-Omitted"))
	})
}
