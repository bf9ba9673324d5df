package v1handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"checker/internal/api/handler/v1handler"
	"checker/internal/checker"
	"checker/pkg/logger"
	"checker/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Initialize logger to avoid nil pointer deref during tests
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

// stubRunner implements v1handler.Runner with canned output.
type stubRunner struct {
	report checker.Report
	err    error
}

func (s stubRunner) Run(context.Context) (checker.Report, error) { return s.report, s.err }

func doCheck(t *testing.T, runner v1handler.Runner, method string) *httptest.ResponseRecorder {
	t.Helper()

	h := v1handler.New(v1handler.Deps{Runner: runner})
	mux := http.NewServeMux()
	h.Register(mux)

	req := httptest.NewRequest(method, "/v1/check", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	return rec
}

func TestCheck_Success(t *testing.T) {
	runner := stubRunner{report: checker.Report{Results: []checker.Result{
		{Domain: "a.com", Verdict: checker.VerdictAvailable},
		{Domain: "b.com", Verdict: checker.VerdictUnavailable},
	}}}

	rec := doCheck(t, runner, http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Status  string                     `json:"status"`
		Results map[string]json.RawMessage `json:"results"`
		Message string                     `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "success", body.Status)
	require.Len(t, body.Results, 2)
	require.Contains(t, body.Message, "a.com")
}

func TestCheck_ResultsPreserveInputOrder(t *testing.T) {
	runner := stubRunner{report: checker.Report{Results: []checker.Result{
		{Domain: "z.com", Verdict: checker.VerdictUnavailable},
		{Domain: "a.com", Verdict: checker.VerdictUnavailable},
		{Domain: "m.com", Verdict: checker.VerdictUnavailable},
	}}}

	rec := doCheck(t, runner, http.MethodGet)

	// raw JSON keys must follow input order, not lexicographic order
	raw := rec.Body.String()
	zi := strings.Index(raw, `"z.com"`)
	ai := strings.Index(raw, `"a.com"`)
	mi := strings.Index(raw, `"m.com"`)
	require.True(t, zi >= 0 && ai >= 0 && mi >= 0, "all domains present in %s", raw)
	require.Less(t, zi, ai)
	require.Less(t, ai, mi)
}

func TestCheck_LookupFailureYields500(t *testing.T) {
	runner := stubRunner{report: checker.Report{Results: []checker.Result{
		{Domain: "a.com", Verdict: checker.VerdictAvailable},
		{Domain: "b.com", Verdict: checker.VerdictFailed, Err: "timeout"},
	}}}

	rec := doCheck(t, runner, http.MethodPost)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body struct {
		Status  string `json:"status"`
		Results map[string]struct {
			Available bool   `json:"available"`
			Error     string `json:"error"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "success", body.Status)
	require.True(t, body.Results["a.com"].Available)
	require.False(t, body.Results["b.com"].Available)
	require.Equal(t, "timeout", body.Results["b.com"].Error)
}

func TestCheck_ConfigErrorYieldsErrorEnvelope(t *testing.T) {
	runner := stubRunner{err: serrors.With(serrors.ErrConfig, "no domains configured")}

	rec := doCheck(t, runner, http.MethodGet)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "error", body.Status)
	require.Equal(t, "no domains configured", body.Error)
}

func TestCheck_MethodNotAllowed(t *testing.T) {
	rec := doCheck(t, stubRunner{}, http.MethodDelete)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "GET, POST", rec.Header().Get("Allow"))
}
