package maintenance

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"auth-serverless/internal/auth"
	"auth-serverless/internal/observability"
)

// CleanupHandler prunes old login-audit rows. It is meant to be hit by a
// scheduled job and hides behind a shared bearer secret; with no secret
// configured the endpoint pretends not to exist.
type CleanupHandler struct {
	audit          *auth.AuditLog
	logger         *observability.Logger
	cronSecret     string
	eventRetention time.Duration
	batchSize      int
}

func NewCleanupHandler(
	audit *auth.AuditLog,
	logger *observability.Logger,
	cronSecret string,
	eventRetention time.Duration,
	batchSize int,
) *CleanupHandler {
	if eventRetention <= 0 {
		eventRetention = 30 * 24 * time.Hour
	}

	return &CleanupHandler{
		audit:          audit,
		logger:         logger,
		cronSecret:     strings.TrimSpace(cronSecret),
		eventRetention: eventRetention,
		batchSize:      batchSize,
	}
}

func (h *CleanupHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.cronSecret == "" || h.audit == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) != h.cronSecret {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	cutoff := time.Now().UTC().Add(-h.eventRetention)
	deleted, err := h.audit.DeleteStaleEvents(r.Context(), cutoff, h.batchSize)
	if err != nil {
		h.logger.Error("audit_cleanup_failed", map[string]any{"error": err.Error()})
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "cleanup failed"})
		return
	}

	h.logger.Info("audit_cleanup_completed", map[string]any{
		"deleted_login_events": deleted,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"status":               "ok",
		"deleted_login_events": deleted,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
