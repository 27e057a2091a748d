package clusterstatus

import (
	"strings"

	"github.com/nduyhai/nodestatus/internal/node"
)

const DefaultScriptPath = "/gpfs/radev/apps/services/ood/share/apps/cluster_status/cluster_status.py"

// Command is the external status script. It is invoked as
// `<path> <node type> <partition type>`.
type Command struct {
	Path string
}

func NewCommand(path string) Command {
	if path == "" {
		path = DefaultScriptPath
	}
	return Command{Path: path}
}

// Build returns the argument vector for q, executable first.
func (c Command) Build(q node.Query) []string {
	return []string{c.Path, q.Type.String(), q.Partition.String()}
}

func (c Command) String(q node.Query) string {
	return strings.Join(c.Build(q), " ")
}
