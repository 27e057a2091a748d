package dashboard

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"

	"github.com/nduyhai/nodestatus/internal/clusterstatus"
	"github.com/nduyhai/nodestatus/internal/node"
)

//go:embed templates/*.tmpl
var templates embed.FS

var indexTemplate = template.Must(template.ParseFS(templates, "templates/index.html.tmpl"))

type SnapshotFetcher interface {
	FetchAll(ctx context.Context) clusterstatus.Snapshot
}

// Page holds the values around the tables that do not change per request.
type Page struct {
	Title          string
	DashboardURL   string
	DashboardTitle string
}

type LegendItem struct {
	Label string
	Color string
}

// Legend mirrors the colour scheme of the status script.
var Legend = []LegendItem{
	{Label: "up", Color: "green"},
	{Label: "down / drain", Color: "red"},
	{Label: "full", Color: "#696969"},
	{Label: "> 50%", Color: "#909090"},
	{Label: "<= 50%", Color: "#D0D0D0"},
	{Label: "<= 25%", Color: "#E8E8E8"},
	{Label: "idle", Color: "white"},
}

type section struct {
	Heading string
	Records []node.Status
	Error   string
}

type view struct {
	Page
	Legend     []LegendItem
	Sections   []section
	SnapshotID string
	StartedAt  time.Time
	Duration   time.Duration
}

type Dashboard struct {
	Fetcher SnapshotFetcher
	Page    Page
	Logger  *httplog.Logger
}

func NewDashboard(fetcher SnapshotFetcher, page Page, logger *httplog.Logger) *Dashboard {
	return &Dashboard{Fetcher: fetcher, Page: page, Logger: logger}
}

func Heading(q node.Query) string {
	partition := "Public"
	if q.Partition == node.Private {
		partition = "Private"
	}
	return partition + " " + q.Type.String() + " Nodes"
}

func (d *Dashboard) newView(snap clusterstatus.Snapshot) view {
	v := view{
		Page:       d.Page,
		Legend:     Legend,
		SnapshotID: snap.ID.String(),
		StartedAt:  snap.StartedAt,
		Duration:   snap.Duration.Round(time.Millisecond),
	}
	for _, r := range snap.Results {
		v.Sections = append(v.Sections, section{
			Heading: Heading(r.Query),
			Records: r.Records,
			Error:   r.ErrorMessage(),
		})
	}
	return v
}

func (d *Dashboard) IndexHandler(w http.ResponseWriter, r *http.Request) {
	snap := d.Fetcher.FetchAll(r.Context())

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, d.newView(snap)); err != nil {
		d.Logger.Error("render dashboard", slog.Any("error", err))
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
