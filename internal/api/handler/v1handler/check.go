package v1handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"checker/internal/checker"
	"checker/pkg/logger"

	"go.uber.org/zap"
)

// domainStatus is the per-domain entry in the check response.
type domainStatus struct {
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

// orderedResults serializes batch results as a JSON object keyed by domain,
// preserving input order. encoding/json sorts map keys, so the object is
// built by hand.
type orderedResults []checker.Result

func (o orderedResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, res := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(res.Domain)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(domainStatus{Available: res.Available(), Error: res.Err})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// checkResponse is the reply envelope of the check endpoint.
type checkResponse struct {
	Status  string         `json:"status"`
	Results orderedResults `json:"results,omitempty"`
	Message string         `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Check runs one availability batch and replies with the aggregated report.
// 200 when every lookup completed, 500 when any failed or the invocation
// itself could not run (e.g. missing configuration).
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		writeJSON(r, w, http.StatusMethodNotAllowed, checkResponse{Status: "error", Error: "method not allowed"})

		return
	}

	ctx := r.Context()

	report, err := h.deps.Runner.Run(ctx)
	if err != nil {
		logger.Error(ctx, "check invocation failed", zap.Error(err))
		writeJSON(r, w, http.StatusInternalServerError, checkResponse{Status: "error", Error: err.Error()})

		return
	}

	code := http.StatusOK
	if report.HasErrors() {
		code = http.StatusInternalServerError
	}

	writeJSON(r, w, code, checkResponse{
		Status:  "success",
		Results: orderedResults(report.Results),
		Message: report.Message(),
	})
}

func writeJSON(r *http.Request, w http.ResponseWriter, code int, body checkResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error(r.Context(), "could not encode response", zap.Error(err))
	}
}
