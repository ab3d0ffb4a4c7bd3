package httpapi

import (
	"crypto/subtle"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/mailsift/mailsift/pkg/config"
	"github.com/mailsift/mailsift/pkg/refdata"
)

// requireAPIKey gates the admin surface behind the shared secret.
// Comparison is constant-time; an unconfigured key disables the surface
// entirely.
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cfg, err := s.cfgStore.Load(r.Context())
		if err != nil || cfg.AdminAPIKey == "" {
			writeError(w, http.StatusServiceUnavailable, "admin API not configured")
			return
		}
		key := r.Header.Get("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.AdminAPIKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "invalid API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.cfgStore.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "configuration unavailable")
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	cfg, err := s.cfgStore.Put(r.Context(), body)
	if err != nil {
		writeConfigError(w, err)
		return
	}
	s.logf("httpapi: configuration replaced")
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handlePatchConfig(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	cfg, err := s.cfgStore.Patch(r.Context(), body)
	if err != nil {
		writeConfigError(w, err)
		return
	}
	s.logf("httpapi: configuration patched")
	writeJSON(w, http.StatusOK, cfg)
}

// handleValidateConfig checks a candidate document without persisting it
func (s *Server) handleValidateConfig(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	if err := config.CheckDocument(body); err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"valid": false, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"valid": true})
}

func (s *Server) handleResetConfig(w http.ResponseWriter, r *http.Request) {
	if err := s.cfgStore.Reset(r.Context()); err != nil {
		writeConfigError(w, err)
		return
	}
	s.logf("httpapi: configuration reset to defaults")
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) handleDropConfigCache(w http.ResponseWriter, _ *http.Request) {
	s.cfgStore.Invalidate()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cache cleared"})
}

type healthResponse struct {
	Status  string                       `json:"status"`
	Uptime  string                       `json:"uptime"`
	KVStore string                       `json:"kvStore"`
	Tables  map[string]refdata.TableMeta `json:"tables"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	out := healthResponse{
		Status:  "ok",
		Uptime:  time.Since(s.started).Round(time.Second).String(),
		KVStore: "ok",
		Tables: map[string]refdata.TableMeta{
			refdata.TableDisposable: s.ref.Meta(refdata.TableDisposable),
			refdata.TableFree:       s.ref.Meta(refdata.TableFree),
			refdata.TableTLD:        s.ref.Meta(refdata.TableTLD),
		},
	}
	status := http.StatusOK
	if s.rdb != nil {
		if err := s.rdb.Ping(r.Context()).Err(); err != nil {
			out.Status = "degraded"
			out.KVStore = err.Error()
			status = http.StatusServiceUnavailable
		}
	} else {
		out.KVStore = "not configured"
	}
	writeJSON(w, status, out)
}

func writeConfigError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, config.ErrInvalidConfig):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, config.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
