package clusterstatus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/iter"

	"github.com/nduyhai/nodestatus/internal/node"
)

type Fetcher struct {
	command       Command
	runner        Runner
	timeout       time.Duration
	sequential    bool
	logger        *slog.Logger
	resultHooks   []func(FetchResult)
	snapshotHooks []func(Snapshot)
}

type Option func(*Fetcher)

func WithRunner(r Runner) Option {
	return func(f *Fetcher) { f.runner = r }
}

// WithTimeout bounds every script run. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// Sequential makes FetchAll run the queries one after another instead of
// concurrently.
func Sequential(sequential bool) Option {
	return func(f *Fetcher) { f.sequential = sequential }
}

func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// OnResult registers a hook called after every query.
func OnResult(hook func(FetchResult)) Option {
	return func(f *Fetcher) { f.resultHooks = append(f.resultHooks, hook) }
}

// OnSnapshot registers a hook called after every FetchAll.
func OnSnapshot(hook func(Snapshot)) Option {
	return func(f *Fetcher) { f.snapshotHooks = append(f.snapshotHooks, hook) }
}

func NewFetcher(command Command, opts ...Option) *Fetcher {
	f := &Fetcher{
		command: command,
		runner:  ExecRunner{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Fetcher) Command() Command {
	return f.command
}

// FetchOne runs the script once for q. A failed run is reported in the
// result; there is no retry.
func (f *Fetcher) FetchOne(ctx context.Context, q node.Query) FetchResult {
	start := time.Now()
	result := f.fetchOne(ctx, q)
	result.Duration = time.Since(start)

	for _, hook := range f.resultHooks {
		hook(result)
	}
	return result
}

func (f *Fetcher) fetchOne(ctx context.Context, q node.Query) FetchResult {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	argv := f.command.Build(q)
	stdout, stderr, err := f.runner.Run(ctx, argv[0], argv[1:]...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w (%w)", ctxErr, err)
		}
		// stdout of a failed run is dropped
		return FetchResult{
			Query:   q,
			Records: []node.Status{},
			Err: &CommandFailure{
				Command: f.command.String(q),
				Stderr:  string(stderr),
				Err:     err,
			},
		}
	}

	return FetchResult{Query: q, Records: Parse(string(stdout))}
}

// FetchAll runs every query in node.Queries. All of them are attempted
// whatever happens to the others.
func (f *Fetcher) FetchAll(ctx context.Context) Snapshot {
	snap := Snapshot{
		ID:        uuid.New(),
		StartedAt: time.Now(),
	}

	queries := node.Queries[:]
	var results []FetchResult
	if f.sequential {
		results = lo.Map(queries, func(q node.Query, _ int) FetchResult {
			return f.FetchOne(ctx, q)
		})
	} else {
		results = iter.Map(queries, func(q *node.Query) FetchResult {
			return f.FetchOne(ctx, *q)
		})
	}
	copy(snap.Results[:], results)
	snap.Duration = time.Since(snap.StartedAt)

	for _, r := range snap.Results {
		if r.Failed() {
			f.logger.Warn("status query failed",
				slog.String("snapshot_id", snap.ID.String()),
				slog.String("node_type", r.Query.Type.String()),
				slog.String("partition_type", r.Query.Partition.String()),
				slog.Any("error", r.Err))
		}
	}
	f.logger.Info("cluster status fetched",
		slog.String("snapshot_id", snap.ID.String()),
		slog.Duration("duration", snap.Duration),
		slog.Int("records", snap.RecordCount()),
		slog.Int("failed", snap.Failed()))

	for _, hook := range f.snapshotHooks {
		hook(snap)
	}
	return snap
}
