// Package api exposes the report proxy: a thin HTTP surface that forwards
// range queries to the Wolkvox reports API on behalf of browser clients
// that cannot attach the credential headers themselves.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/core/daterange"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/core/model"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/data/fetcher"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/data/operations"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/util"
)

var wireTimestamp = regexp.MustCompile(`^\d{14}$`)

// Server proxies report queries to the upstream API and publishes the
// operations list the viewer is configured with.
type Server struct {
	router   *chi.Mux
	port     int
	client   *fetcher.Client
	registry *operations.Registry
}

// NewServer builds the proxy around an existing report client and
// operations registry. The registry may be hot-reloaded while the server
// runs; /api/operations always answers from the current contents.
func NewServer(port int, client *fetcher.Client, registry *operations.Registry) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:   router,
		port:     port,
		client:   client,
		registry: registry,
	}

	router.Get("/health", s.health)
	router.Get("/api/operations", s.operations)
	router.Get("/api/wolkvox-reports", s.reports)

	return s
}

// Start blocks serving HTTP on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	util.LogInfof("report proxy listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// operations lists the names clients may query reports for. Tokens and
// server numbers stay private to the proxy.
func (s *Server) operations(w http.ResponseWriter, r *http.Request) {
	names := []string{}
	if s.registry != nil {
		names = s.registry.Names()
	}
	writeJSON(w, http.StatusOK, map[string][]string{"operations": names})
}

// reports forwards a validated-range query upstream. The not-found-empty
// normalization happens in the fetch client, so an empty day range comes
// back here as a regular empty payload.
func (s *Server) reports(w http.ResponseWriter, r *http.Request) {
	dateIni := r.URL.Query().Get("date_ini")
	dateEnd := r.URL.Query().Get("date_end")
	token := r.Header.Get("wolkvox-token")
	server := r.Header.Get("wolkvox-server")

	if !wireTimestamp.MatchString(dateIni) || !wireTimestamp.MatchString(dateEnd) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "date_ini and date_end must be 14-digit YYYYMMDDhhmmss timestamps",
		})
		return
	}

	if token == "" || server == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error": "wolkvox-token and wolkvox-server headers are required",
		})
		return
	}

	op := model.Operation{Server: server, Token: token}
	rng := daterange.Range{DateIni: dateIni, DateEnd: dateEnd}

	records, err := s.client.FetchReport(r.Context(), op, rng)
	if err != nil {
		util.LogErrorf("report proxy fetch failed: %v", err)
		status := http.StatusInternalServerError
		if errors.Is(err, fetcher.ErrUpstreamUnavailable) {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, map[string]string{"error": "failed to fetch report data"})
		return
	}

	writeJSON(w, http.StatusOK, model.ReportResponse{
		Code: "200",
		Msg:  fmt.Sprintf("%d records", len(records)),
		Data: records,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
