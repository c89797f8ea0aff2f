package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"govorun/internal/gate"
	"govorun/internal/gpt"
	"govorun/internal/store"
)

// maxRequestBytes bounds the inbound envelope size.
const maxRequestBytes = 64 << 10

// Asker runs one bounded question-answer orchestration.
type Asker interface {
	Run(ctx context.Context, utterance string) gpt.Result
}

// Config captures the settings for the webhook handler.
type Config struct {
	WebhookPath  string
	HardBudget   time.Duration
	Orchestrator Asker
	Gate         gate.Gate
	Store        *store.Store
	DebugToken   string
	Logger       *slog.Logger
}

type handler struct {
	cfg    Config
	logger *slog.Logger
}

// NewHandler builds the HTTP handler: the webhook route, a health
// probe, and bearer-gated debug endpoints when a store and token are
// both configured.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Orchestrator == nil {
		return nil, errors.New("webhook: orchestrator is required")
	}
	if cfg.WebhookPath == "" || !strings.HasPrefix(cfg.WebhookPath, "/") {
		return nil, errors.New("webhook: webhook path must start with /")
	}
	if cfg.Gate == nil {
		cfg.Gate = gate.NoopGate
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h := &handler{cfg: cfg, logger: cfg.Logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/", h.serveHealth)
	mux.HandleFunc(cfg.WebhookPath, h.serveWebhook)
	if cfg.Store != nil && cfg.DebugToken != "" {
		mux.HandleFunc("GET /debug/calls", h.withAuth(h.serveCalls))
		mux.HandleFunc("GET /debug/calls/{id}", h.withAuth(h.serveCall))
	}
	return mux, nil
}

// serveHealth answers liveness probes.
func (h *handler) serveHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

// serveWebhook handles one dialog turn.
func (h *handler) serveWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		// The platform checks skill availability with a GET.
		writeJSON(w, h.logger, envelope(Request{Version: "1.0"}, gpt.ReplyOnline))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		http.Error(w, "read request", http.StatusBadRequest)
		return
	}
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		h.logger.Warn("malformed envelope", "error", err)
		http.Error(w, "malformed envelope", http.StatusBadRequest)
		return
	}

	utterance := strings.TrimSpace(req.Request.OriginalUtterance)
	if utterance == "" {
		utterance = strings.TrimSpace(req.Request.Command)
	}
	if utterance == "" {
		if req.Session.New {
			writeJSON(w, h.logger, envelope(req, gpt.ReplyAskSomething))
		} else {
			writeJSON(w, h.logger, envelope(req, gpt.ReplyNotHeard))
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.HardBudget)
	defer cancel()

	release, err := h.cfg.Gate.Acquire(ctx)
	if err != nil {
		h.logger.Warn("gate rejected call", "session", req.Session.SessionID, "error", err)
		writeJSON(w, h.logger, envelope(req, gpt.ReplyOverloaded))
		return
	}
	defer release()

	result := h.cfg.Orchestrator.Run(ctx, utterance)
	h.logger.Info("turn answered",
		"session", req.Session.SessionID,
		"outcome", result.Outcome,
		"attempts", result.Attempts,
		"duration", result.Duration,
	)
	h.record(req, utterance, result)
	writeJSON(w, h.logger, envelope(req, result.Reply))
}

// record persists the call when a store is configured. Failures are
// logged, never surfaced to the dialog.
func (h *handler) record(req Request, utterance string, result gpt.Result) {
	if h.cfg.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := h.cfg.Store.InsertCall(ctx, store.CallRecord{
		SessionID:  req.Session.SessionID,
		Utterance:  utterance,
		Reply:      result.Reply,
		Outcome:    string(result.Outcome),
		Shape:      string(result.Shape),
		Attempts:   result.Attempts,
		Status:     result.Status,
		DurationMs: result.Duration.Milliseconds(),
		Request:    string(result.Request),
		Response:   string(result.Response),
	})
	if err != nil {
		h.logger.Error("persist call", "error", err)
	}
}

// withAuth requires the configured bearer token.
func (h *handler) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token != h.cfg.DebugToken {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// serveCalls lists recent calls, newest first.
func (h *handler) serveCalls(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			http.Error(w, "limit must be an integer between 1 and 500", http.StatusBadRequest)
			return
		}
		limit = parsed
	}
	records, err := h.cfg.Store.RecentCalls(r.Context(), limit)
	if err != nil {
		h.logger.Error("list calls", "error", err)
		http.Error(w, "query calls", http.StatusInternalServerError)
		return
	}
	writeJSON(w, h.logger, map[string]any{"calls": records})
}

// serveCall returns one full call record.
func (h *handler) serveCall(w http.ResponseWriter, r *http.Request) {
	rec, err := h.cfg.Store.CallByID(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "call not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("fetch call", "error", err)
		http.Error(w, "query call", http.StatusInternalServerError)
		return
	}
	writeJSON(w, h.logger, rec)
}

// writeJSON encodes v with the JSON content type.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("write response", "error", err)
	}
}
