package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"loadboard/pkg/logger"
	"loadboard/service"
)

type ctxKey int

const sessionKey ctxKey = iota

func sessionFrom(ctx context.Context) *service.AuthStore {
	s, _ := ctx.Value(sessionKey).(*service.AuthStore)
	return s
}

// requireSession resolves the bearer token to the caller's AuthStore.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		sessionID, err := h.tokens.Parse(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		store := h.svc.Auth().Open(r.Context(), sessionID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, store)))
	})
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.log.Debug("http request",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Duration("took", time.Since(start)),
		)
	})
}
