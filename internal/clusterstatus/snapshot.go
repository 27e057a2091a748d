package clusterstatus

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/nduyhai/nodestatus/internal/node"
)

// FetchResult is the outcome of one query: either records or an error,
// never both.
type FetchResult struct {
	Query    node.Query
	Records  []node.Status
	Err      error
	Duration time.Duration
}

func (r FetchResult) Failed() bool {
	return r.Err != nil
}

// ErrorMessage is empty for successful queries.
func (r FetchResult) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Snapshot holds the results of one FetchAll run, in node.Queries order.
type Snapshot struct {
	ID        uuid.UUID
	StartedAt time.Time
	Duration  time.Duration
	Results   [len(node.Queries)]FetchResult
}

func (s Snapshot) GPUPublic() FetchResult  { return s.Results[0] }
func (s Snapshot) CPUPublic() FetchResult  { return s.Results[1] }
func (s Snapshot) GPUPrivate() FetchResult { return s.Results[2] }
func (s Snapshot) CPUPrivate() FetchResult { return s.Results[3] }

func (s Snapshot) Failed() int {
	return lo.CountBy(s.Results[:], FetchResult.Failed)
}

func (s Snapshot) RecordCount() int {
	return lo.SumBy(s.Results[:], func(r FetchResult) int { return len(r.Records) })
}
