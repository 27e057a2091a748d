package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/nduyhai/nodestatus/internal/clusterstatus"
	"github.com/nduyhai/nodestatus/internal/node"
)

type ResultResponse struct {
	NodeType      string        `json:"node_type"`
	PartitionType string        `json:"partition_type"`
	Records       []node.Status `json:"records"`
	Error         string        `json:"error,omitempty"`
	DurationMS    int64         `json:"duration_ms"`
}

type SnapshotResponse struct {
	ID         uuid.UUID        `json:"id"`
	StartedAt  time.Time        `json:"started_at"`
	DurationMS int64            `json:"duration_ms"`
	Results    []ResultResponse `json:"results"`
}

func NewResultResponse(r clusterstatus.FetchResult) ResultResponse {
	records := r.Records
	if records == nil {
		records = []node.Status{}
	}
	return ResultResponse{
		NodeType:      r.Query.Type.String(),
		PartitionType: r.Query.Partition.String(),
		Records:       records,
		Error:         r.ErrorMessage(),
		DurationMS:    r.Duration.Milliseconds(),
	}
}

func NewSnapshotResponse(s clusterstatus.Snapshot) SnapshotResponse {
	resp := SnapshotResponse{
		ID:         s.ID,
		StartedAt:  s.StartedAt,
		DurationMS: s.Duration.Milliseconds(),
		Results:    make([]ResultResponse, 0, len(s.Results)),
	}
	for _, r := range s.Results {
		resp.Results = append(resp.Results, NewResultResponse(r))
	}
	return resp
}
