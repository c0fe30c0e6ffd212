package httpapi

import (
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/blake2b"

	"github.com/league-hub/league-hub/internal/domain/apperr"
	"github.com/league-hub/league-hub/internal/domain/idempotency"
)

const idempotencyHeader = "Idempotency-Key"

// IdempotencyMiddleware replays retried mutations instead of
// re-executing them. The de-dup identity is (key, endpoint, method,
// user); the response is captured at the serialization point and
// persisted once the handler completes.
//
// A database error during the claim step falls back to unprotected
// pass-through, silently disabling the guarantee for that request.
// Deliberate: availability over dedup during an outage.
type IdempotencyMiddleware struct {
	repo    idempotency.Repository
	ttl     time.Duration
	maxBody int
	logger  zerolog.Logger
}

func NewIdempotencyMiddleware(repo idempotency.Repository, ttl time.Duration, maxBody int, logger zerolog.Logger) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if maxBody <= 0 {
		maxBody = 64 << 10
	}
	return &IdempotencyMiddleware{
		repo:    repo,
		ttl:     ttl,
		maxBody: maxBody,
		logger:  logger.With().Str("service", "idempotency").Logger(),
	}
}

func (m *IdempotencyMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(idempotencyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}
		userID, err := requestUser(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			m.writeError(w, apperr.Validation("unreadable request body"))
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		fingerprint := fingerprintBody(body)

		rec := &idempotency.Record{
			Key:         key,
			Endpoint:    r.URL.Path,
			Method:      r.Method,
			UserID:      userID,
			Fingerprint: fingerprint,
			State:       idempotency.StatePending,
			ExpiresAt:   time.Now().UTC().Add(m.ttl),
		}
		claimed, err := m.repo.Claim(r.Context(), rec)
		if err != nil {
			m.logger.Warn().Err(err).Msg("idempotency claim failed, passing through unprotected")
			next.ServeHTTP(w, r)
			return
		}
		if claimed {
			m.execute(w, r, next, rec)
			return
		}

		existing, err := m.repo.Get(r.Context(), key, r.URL.Path, r.Method, userID)
		if err != nil || existing == nil {
			m.logger.Warn().Err(err).Msg("idempotency lookup failed, passing through unprotected")
			next.ServeHTTP(w, r)
			return
		}
		if existing.Fingerprint != fingerprint {
			m.writeError(w, apperr.Validation("idempotency key reused with a different request body"))
			return
		}
		switch {
		case existing.State == idempotency.StateCompleted:
			m.replay(w, existing)
		case existing.Expired(time.Now().UTC()):
			// Claimed but abandoned; remove it and take over.
			if err := m.repo.Delete(r.Context(), existing.ID); err != nil {
				m.logger.Warn().Err(err).Msg("failed to clear abandoned claim")
				next.ServeHTTP(w, r)
				return
			}
			rec.ID = uuid.Nil
			m.reclaim(w, r, next, rec)
		default:
			m.writeJSONStatus(w, http.StatusConflict, map[string]string{
				"error": "a request with this idempotency key is still processing",
			})
		}
	})
}

func (m *IdempotencyMiddleware) reclaim(w http.ResponseWriter, r *http.Request, next http.Handler, rec *idempotency.Record) {
	claimed, err := m.repo.Claim(r.Context(), rec)
	if err != nil || !claimed {
		m.logger.Warn().Err(err).Msg("idempotency re-claim failed, passing through unprotected")
		next.ServeHTTP(w, r)
		return
	}
	m.execute(w, r, next, rec)
}

// execute runs the handler under the claim, capturing the response.
// An abandoned execution (panic or client abort before completion)
// clears the pending claim so retries are not blocked forever.
func (m *IdempotencyMiddleware) execute(w http.ResponseWriter, r *http.Request, next http.Handler, rec *idempotency.Record) {
	recorder := &responseRecorder{ResponseWriter: w, status: http.StatusOK, limit: m.maxBody}
	completed := false
	defer func() {
		if completed {
			return
		}
		// The request context is gone after a client abort; cleanup
		// must still run or retries stay blocked on the claim.
		if err := m.repo.Delete(context.Background(), rec.ID); err != nil {
			m.logger.Warn().Err(err).Msg("failed to clear orphaned claim")
		}
	}()

	next.ServeHTTP(recorder, r)

	cached := recorder.body.Bytes()
	if recorder.overflowed {
		// Too large to cache the body; complete the claim status-only
		// so a retry replays the outcome instead of re-executing.
		m.logger.Warn().Str("endpoint", rec.Endpoint).Msg("response exceeds idempotency cache ceiling, caching status only")
		cached = nil
	}
	if err := m.repo.Complete(r.Context(), rec.ID, recorder.status, cached); err != nil {
		m.logger.Warn().Err(err).Msg("failed to persist idempotent response")
		return
	}
	completed = true
}

func (m *IdempotencyMiddleware) replay(w http.ResponseWriter, rec *idempotency.Record) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Idempotency-Replayed", "true")
	if len(rec.ResponseBody) == 0 && rec.ResponseStatus < http.StatusBadRequest {
		// Status-only record: the original body was too large to cache.
		w.Header().Set("Idempotency-Body-Omitted", "true")
	}
	w.WriteHeader(rec.ResponseStatus)
	_, _ = w.Write(rec.ResponseBody)
}

func (m *IdempotencyMiddleware) writeError(w http.ResponseWriter, err error) {
	status := http.StatusUnprocessableEntity
	if apperr.KindOf(err) == apperr.KindConflict {
		status = http.StatusConflict
	}
	m.writeJSONStatus(w, status, map[string]string{"error": err.Error()})
}

func (m *IdempotencyMiddleware) writeJSONStatus(w http.ResponseWriter, status int, v map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := []byte(`{"error":"` + v["error"] + `"}`)
	_, _ = w.Write(body)
}

func fingerprintBody(body []byte) string {
	sum := blake2b.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// responseRecorder tees the response so it can be persisted for
// replay.
type responseRecorder struct {
	http.ResponseWriter
	status      int
	body        bytes.Buffer
	limit       int
	overflowed  bool
	wroteHeader bool
}

func (r *responseRecorder) WriteHeader(status int) {
	if r.wroteHeader {
		return
	}
	r.wroteHeader = true
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	if !r.overflowed {
		if r.body.Len()+len(b) > r.limit {
			r.overflowed = true
			r.body.Reset()
		} else {
			r.body.Write(b)
		}
	}
	return r.ResponseWriter.Write(b)
}
