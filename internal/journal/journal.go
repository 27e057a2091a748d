package journal

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/nduyhai/nodestatus/internal/clusterstatus"
)

// Journal keeps summaries of the most recent fetch runs. The node records
// themselves are never stored.
type Journal interface {
	Append(e Entry) error
	// Recent returns up to limit entries, newest first.
	Recent(limit int) ([]Entry, error)
	Close() error
}

type QuerySummary struct {
	NodeType      string        `json:"node_type"`
	PartitionType string        `json:"partition_type"`
	Records       int           `json:"records"`
	Duration      time.Duration `json:"duration"`
	Error         string        `json:"error,omitempty"`
}

type Entry struct {
	ID        uuid.UUID      `json:"id"`
	StartedAt time.Time      `json:"started_at"`
	Duration  time.Duration  `json:"duration"`
	Queries   []QuerySummary `json:"queries"`
}

func (e Entry) Failed() int {
	return lo.CountBy(e.Queries, func(q QuerySummary) bool { return q.Error != "" })
}

func FromSnapshot(s clusterstatus.Snapshot) Entry {
	return Entry{
		ID:        s.ID,
		StartedAt: s.StartedAt,
		Duration:  s.Duration,
		Queries: lo.Map(s.Results[:], func(r clusterstatus.FetchResult, _ int) QuerySummary {
			return QuerySummary{
				NodeType:      r.Query.Type.String(),
				PartitionType: r.Query.Partition.String(),
				Records:       len(r.Records),
				Duration:      r.Duration,
				Error:         r.ErrorMessage(),
			}
		}),
	}
}
