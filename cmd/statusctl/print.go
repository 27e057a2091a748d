package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/nduyhai/nodestatus/internal/api"
	"github.com/nduyhai/nodestatus/internal/journal"
)

func printResults(out io.Writer, results []api.ResultResponse) {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "== %s nodes, %s partitions ==\n", r.NodeType, r.PartitionType)
		if r.Error != "" {
			fmt.Fprintf(out, "ERROR: %s\n", r.Error)
			continue
		}
		if len(r.Records) == 0 {
			fmt.Fprintln(out, "no nodes reported")
			continue
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PARTITION\tNODE\tCPU\tGPU TYPE\tGPU\tMEM (GB)")
		for _, s := range r.Records {
			fmt.Fprintf(w, "%s\t%s\t%s/%s\t%s\t%s/%s\t%s/%s\n",
				s.Partition, s.NodeName,
				s.CPUAllocated, s.CPUTotal,
				s.GPUType, s.GPUAllocated, s.GPUTotal,
				s.MemAllocated, s.MemTotal)
		}
		_ = w.Flush()
	}
}

func printRuns(out io.Writer, runs []journal.Entry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tDURATION\tFAILED")
	for _, e := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", e.ID, e.StartedAt.Format(time.RFC3339), e.Duration.Round(time.Millisecond), e.Failed())
	}
	_ = w.Flush()
}
