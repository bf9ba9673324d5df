package controller

import (
	"net/http"
	"net/http/pprof"
)

// PprofMux returns an http.ServeMux exposing the net/http/pprof handlers.
// The index handler expects to be mounted under /debug/pprof/ on the main
// server mux; named profiles (heap, goroutine, ...) are served through it.
func PprofMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)

	return mux
}
