package node

import "fmt"

type Type int

const (
	GPU Type = iota
	CPU
)

func (t Type) String() string {
	switch t {
	case GPU:
		return "GPU"
	case CPU:
		return "CPU"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

type PartitionType int

const (
	Public PartitionType = iota
	Private
)

func (p PartitionType) String() string {
	switch p {
	case Public:
		return "public"
	case Private:
		return "private"
	}
	return fmt.Sprintf("PartitionType(%d)", int(p))
}

func ParseType(s string) (Type, error) {
	switch s {
	case "GPU", "gpu":
		return GPU, nil
	case "CPU", "cpu":
		return CPU, nil
	}
	return 0, fmt.Errorf("unknown node type %q", s)
}

func ParsePartitionType(s string) (PartitionType, error) {
	switch s {
	case "public":
		return Public, nil
	case "private":
		return Private, nil
	}
	return 0, fmt.Errorf("unknown partition type %q", s)
}

// Query selects one slice of the cluster the status script can report on.
type Query struct {
	Type      Type
	Partition PartitionType
}

func (q Query) String() string {
	return q.Type.String() + "/" + q.Partition.String()
}

// Queries lists every query in the order the dashboard shows them.
var Queries = [4]Query{
	{Type: GPU, Partition: Public},
	{Type: CPU, Partition: Public},
	{Type: GPU, Partition: Private},
	{Type: CPU, Partition: Private},
}
