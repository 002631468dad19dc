package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/hazyhaar/csvnorm/pkg/kit"
	"github.com/hazyhaar/csvnorm/pkg/stream"
)

// NewRouter returns an http.Handler with all csvnorm API routes.
// zone is reported by the health endpoint.
func NewRouter(proc *stream.Processor, zone string, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	h := &handler{
		normalize: kit.Chain(loggingMiddleware(logger))(normalizeEndpoint(proc)),
		zone:      zone,
	}

	mux.HandleFunc("GET /v1/normalize", methodNotAllowed) // normalization needs a body
	mux.HandleFunc("POST /v1/normalize", h.handleNormalize)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(mux)
}

type handler struct {
	normalize kit.Endpoint
	zone      string
}

// --- normalize ---

type httpNormalizeRequest struct {
	Data string `json:"data"`
}

// handleNormalize accepts either a JSON body {"data": "<csv>"} or a raw CSV
// body (any non-JSON content type). JSON in, JSON out; raw in, raw CSV out
// with the row accounting in X-Csvnorm-* headers.
func (h *handler) handleNormalize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPayload)
	ctx := kit.WithTransport(r.Context(), "http")
	ctx = kit.WithRequestID(ctx, uuid.NewString())

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		var req httpNormalizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		resp, err := h.normalize(ctx, &normalizeReq{Data: req.Data})
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	resp, err := h.normalize(ctx, &normalizeReq{Data: string(body)})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	nr := resp.(*normalizeResp)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("X-Csvnorm-Read", strconv.Itoa(nr.Read))
	w.Header().Set("X-Csvnorm-Emitted", strconv.Itoa(nr.Emitted))
	w.Header().Set("X-Csvnorm-Dropped", strconv.Itoa(nr.Dropped))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, nr.Data)
}

// --- health ---

type healthResponse struct {
	Status   string `json:"status"`
	Timezone string `json:"timezone"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Timezone: h.zone,
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
