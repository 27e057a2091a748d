package clusterstatus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nduyhai/nodestatus/internal/node"
)

type fakeRun struct {
	stdout string
	stderr string
	err    error
	delay  time.Duration
}

type fakeRunner struct {
	mu    sync.Mutex
	runs  map[string]fakeRun
	calls []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	key := strings.Join(args, " ")
	f.mu.Lock()
	f.calls = append(f.calls, name+" "+key)
	run := f.runs[key]
	f.mu.Unlock()

	if run.delay > 0 {
		select {
		case <-time.After(run.delay):
		case <-ctx.Done():
			return nil, []byte(run.stderr), errors.New("signal: killed")
		}
	}
	return []byte(run.stdout), []byte(run.stderr), run.err
}

const (
	gpuLine = "gpu;green;g01;#E8E8E8;64;8;#D0D0D0;a100;4;2;white;983;0"
	cpuLine = "day;green;c01;white;36;0;black;None;0;0;white;180;0"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCommandBuild(t *testing.T) {
	c := NewCommand("/opt/status.py")
	assert.Equal(t, []string{"/opt/status.py", "GPU", "public"}, c.Build(node.Queries[0]))
	assert.Equal(t, "/opt/status.py CPU private", c.String(node.Queries[3]))

	assert.Equal(t, DefaultScriptPath, NewCommand("").Path)
}

func TestFetchOneSuccess(t *testing.T) {
	runner := &fakeRunner{runs: map[string]fakeRun{
		"GPU public": {stdout: gpuLine + "\n" + gpuLine + "\n", stderr: "warning ignored"},
	}}
	f := NewFetcher(NewCommand("/opt/status.py"), WithRunner(runner), WithLogger(discardLogger()))

	res := f.FetchOne(context.Background(), node.Query{Type: node.GPU, Partition: node.Public})
	require.NoError(t, res.Err)
	assert.False(t, res.Failed())
	assert.Empty(t, res.ErrorMessage())
	require.Len(t, res.Records, 2)
	assert.Equal(t, "g01", res.Records[0].NodeName)
	assert.Equal(t, []string{"/opt/status.py GPU public"}, runner.calls)
}

func TestFetchOneFailure(t *testing.T) {
	runner := &fakeRunner{runs: map[string]fakeRun{
		"CPU private": {stdout: cpuLine, stderr: "scontrol: error: Unable to contact slurm controller\n", err: errors.New("exit status 1")},
	}}
	f := NewFetcher(NewCommand("/opt/status.py"), WithRunner(runner), WithLogger(discardLogger()))

	res := f.FetchOne(context.Background(), node.Query{Type: node.CPU, Partition: node.Private})
	require.Error(t, res.Err)
	assert.NotNil(t, res.Records)
	assert.Empty(t, res.Records)

	var failure *CommandFailure
	require.True(t, errors.As(res.Err, &failure))
	assert.Equal(t, "/opt/status.py CPU private", failure.Command)
	assert.Contains(t, res.ErrorMessage(), "Unable to contact slurm controller")
	assert.Contains(t, res.ErrorMessage(), "/opt/status.py CPU private")
}

func TestFetchOneFailureWithoutStderr(t *testing.T) {
	runner := &fakeRunner{runs: map[string]fakeRun{
		"GPU private": {err: errors.New("fork/exec /opt/status.py: no such file or directory")},
	}}
	f := NewFetcher(NewCommand("/opt/status.py"), WithRunner(runner), WithLogger(discardLogger()))

	res := f.FetchOne(context.Background(), node.Query{Type: node.GPU, Partition: node.Private})
	require.Error(t, res.Err)
	assert.Contains(t, res.ErrorMessage(), "no such file or directory")
}

func TestFetchOneTimeout(t *testing.T) {
	runner := &fakeRunner{runs: map[string]fakeRun{
		"GPU public": {delay: time.Minute, stderr: "partial"},
	}}
	f := NewFetcher(NewCommand("/opt/status.py"),
		WithRunner(runner),
		WithLogger(discardLogger()),
		WithTimeout(20*time.Millisecond))

	res := f.FetchOne(context.Background(), node.Query{Type: node.GPU, Partition: node.Public})
	require.Error(t, res.Err)
	assert.True(t, errors.Is(res.Err, context.DeadlineExceeded))
	assert.Contains(t, res.ErrorMessage(), "partial")
}

func TestFetchAll(t *testing.T) {
	for _, sequential := range []bool{false, true} {
		t.Run(map[bool]string{false: "concurrent", true: "sequential"}[sequential], func(t *testing.T) {
			runner := &fakeRunner{runs: map[string]fakeRun{
				"GPU public":  {stdout: gpuLine, delay: 10 * time.Millisecond},
				"CPU public":  {stderr: "boom", err: errors.New("exit status 2")},
				"GPU private": {stdout: ""},
				"CPU private": {stdout: cpuLine + "\n" + cpuLine},
			}}

			var results, snapshots int
			var mu sync.Mutex
			f := NewFetcher(NewCommand("/opt/status.py"),
				WithRunner(runner),
				WithLogger(discardLogger()),
				Sequential(sequential),
				OnResult(func(FetchResult) { mu.Lock(); results++; mu.Unlock() }),
				OnSnapshot(func(Snapshot) { snapshots++ }))

			snap := f.FetchAll(context.Background())

			assert.Len(t, runner.calls, 4)
			assert.Equal(t, 4, results)
			assert.Equal(t, 1, snapshots)
			assert.NotEmpty(t, snap.ID.String())

			for i, q := range node.Queries {
				assert.Equal(t, q, snap.Results[i].Query)
			}

			assert.Len(t, snap.GPUPublic().Records, 1)
			assert.Empty(t, snap.GPUPublic().ErrorMessage())

			assert.Empty(t, snap.CPUPublic().Records)
			assert.Contains(t, snap.CPUPublic().ErrorMessage(), "boom")

			assert.NoError(t, snap.GPUPrivate().Err)
			assert.Empty(t, snap.GPUPrivate().Records)

			assert.Len(t, snap.CPUPrivate().Records, 2)

			assert.Equal(t, 1, snap.Failed())
			assert.Equal(t, 3, snap.RecordCount())
		})
	}
}

func TestExecRunnerScript(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	script := filepath.Join(t.TempDir(), "cluster_status.sh")
	body := `#!/bin/sh
if [ "$2" = "private" ]; then
  echo "no private partitions for $1" >&2
  exit 3
fi
echo "` + gpuLine + `"
echo "` + cpuLine + `"
`
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))

	f := NewFetcher(NewCommand(script), WithLogger(discardLogger()), WithTimeout(10*time.Second))
	snap := f.FetchAll(context.Background())

	assert.Len(t, snap.GPUPublic().Records, 2)
	assert.Len(t, snap.CPUPublic().Records, 2)
	assert.Contains(t, snap.GPUPrivate().ErrorMessage(), "no private partitions for GPU")
	assert.Contains(t, snap.CPUPrivate().ErrorMessage(), "no private partitions for CPU")
	assert.Empty(t, snap.CPUPrivate().Records)
}

func TestExecRunnerMissingScript(t *testing.T) {
	f := NewFetcher(NewCommand(filepath.Join(t.TempDir(), "missing.py")), WithLogger(discardLogger()))

	res := f.FetchOne(context.Background(), node.Queries[0])
	require.Error(t, res.Err)

	var failure *CommandFailure
	assert.True(t, errors.As(res.Err, &failure))
	assert.Empty(t, res.Records)
}
