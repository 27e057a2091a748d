package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"

	"github.com/nduyhai/nodestatus/internal/clusterstatus"
	"github.com/nduyhai/nodestatus/internal/httpx"
	"github.com/nduyhai/nodestatus/internal/journal"
	"github.com/nduyhai/nodestatus/internal/node"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 1000
)

type StatusFetcher interface {
	FetchAll(ctx context.Context) clusterstatus.Snapshot
	FetchOne(ctx context.Context, q node.Query) clusterstatus.FetchResult
}

type API struct {
	Fetcher StatusFetcher
	Journal journal.Journal
	Logger  *httplog.Logger
}

func NewAPI(fetcher StatusFetcher, j journal.Journal, logger *httplog.Logger) *API {
	return &API{Fetcher: fetcher, Journal: j, Logger: logger}
}

// Routes is mounted under /api/v1.
func (a *API) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/status", a.StatusHandler)
	r.Get("/status/{nodeType}/{partitionType}", a.QueryHandler)
	r.Get("/runs", a.RunsHandler)
	return r
}

func (a *API) StatusHandler(w http.ResponseWriter, r *http.Request) {
	snap := a.Fetcher.FetchAll(r.Context())
	httpx.WriteJSON(w, http.StatusOK, NewSnapshotResponse(snap))
}

func (a *API) QueryHandler(w http.ResponseWriter, r *http.Request) {
	nodeType, err := node.ParseType(chi.URLParam(r, "nodeType"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	partition, err := node.ParsePartitionType(chi.URLParam(r, "partitionType"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := a.Fetcher.FetchOne(r.Context(), node.Query{Type: nodeType, Partition: partition})
	httpx.WriteJSON(w, http.StatusOK, NewResultResponse(res))
}

func (a *API) RunsHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxRunsLimit {
			httpx.WriteError(w, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxRunsLimit))
			return
		}
		limit = n
	}

	entries, err := a.Journal.Recent(limit)
	if err != nil {
		a.Logger.Error("read journal", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, "failed to read run journal")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, entries)
}
