package clusterstatus

import (
	"strings"

	"github.com/nduyhai/nodestatus/internal/node"
)

const fieldSeparator = ";"

// Parse turns the script output into status records, one per line. Fields
// are bound by position; a ';' inside a value shifts every field after it.
func Parse(output string) []node.Status {
	output = strings.TrimSpace(output)
	if output == "" {
		return []node.Status{}
	}

	lines := strings.Split(output, "\n")
	records := make([]node.Status, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, node.NewStatus(strings.SplitN(line, fieldSeparator, node.FieldCount)))
	}
	return records
}
