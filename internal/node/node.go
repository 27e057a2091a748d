package node

// Status is one line reported by the cluster status script. Every field is
// passed through as the script printed it.
type Status struct {
	Partition    string `json:"partition"`
	NodeColor    string `json:"node_color"`
	NodeName     string `json:"nodename"`
	CPUColor     string `json:"cpu_color"`
	CPUTotal     string `json:"cpu_total"`
	CPUAllocated string `json:"cpu_allocated"`
	GPUColor     string `json:"gpu_color"`
	GPUType      string `json:"gpu_type"`
	GPUTotal     string `json:"gpu_total"`
	GPUAllocated string `json:"gpu_allocated"`
	MemColor     string `json:"mem_color"`
	MemTotal     string `json:"mem_total"`
	MemAllocated string `json:"mem_allocated"`
}

// FieldCount is the number of ';' separated fields in one status line.
const FieldCount = 13

// NewStatus binds fields positionally. Missing trailing fields stay empty and
// anything past FieldCount is ignored.
func NewStatus(fields []string) Status {
	var f [FieldCount]string
	copy(f[:], fields)
	return Status{
		Partition:    f[0],
		NodeColor:    f[1],
		NodeName:     f[2],
		CPUColor:     f[3],
		CPUTotal:     f[4],
		CPUAllocated: f[5],
		GPUColor:     f[6],
		GPUType:      f[7],
		GPUTotal:     f[8],
		GPUAllocated: f[9],
		MemColor:     f[10],
		MemTotal:     f[11],
		MemAllocated: f[12],
	}
}

func (s Status) Fields() []string {
	return []string{
		s.Partition, s.NodeColor, s.NodeName,
		s.CPUColor, s.CPUTotal, s.CPUAllocated,
		s.GPUColor, s.GPUType, s.GPUTotal, s.GPUAllocated,
		s.MemColor, s.MemTotal, s.MemAllocated,
	}
}
