package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/telebot/internal/config"
	"github.com/edgard/telebot/internal/logger"
)

// SecretHeader carries the webhook secret registered with SetWebhook.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Mode      string `json:"mode"`
}

type indexResponse struct {
	Message   string            `json:"message"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: s.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Mode:      string(config.ModePush),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, indexResponse{
		Message: "Telegram Bot Webhook Server",
		Status:  "running",
		Endpoints: map[string]string{
			"health":  "/health",
			"webhook": "/bot<redacted>",
		},
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not Found"})
}

// handleWebhook decodes a pushed update and dispatches it before answering,
// so the platform only sees 200 once the update has been handled.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.limiter != nil && !s.limiter.Allow() {
		s.logger.WarnContext(ctx, "Webhook rate limit exceeded", "remote_addr", r.RemoteAddr)
		http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		return
	}

	if secret := s.cfg.Transport.WebhookSecret; secret != "" {
		got := r.Header.Get(SecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			s.logger.WarnContext(ctx, "Webhook request with invalid secret", "remote_addr", r.RemoteAddr)
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.HTTP.MaxBodyBytes)
	defer r.Body.Close()

	var update models.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.logger.WarnContext(ctx, "Webhook body too large", "limit", tooLarge.Limit)
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		s.logger.ErrorContext(ctx, "Failed to decode webhook update", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ctx, traceID := logger.WithTraceID(ctx)
	log := s.logger.With(append([]any{"trace_id", traceID}, logger.UpdateAttrs(&update)...)...)

	start := time.Now()
	if err := s.dispatcher.Dispatch(ctx, &update); err != nil {
		log.ErrorContext(ctx, "Failed to process webhook update", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	log.InfoContext(ctx, "Finished processing update", "duration", time.Since(start))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
