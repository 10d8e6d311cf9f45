package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/callroute/callroute/pkg/analysis/callgraph"
	"github.com/callroute/callroute/pkg/analysis/routes"
	"github.com/callroute/callroute/pkg/models"
	"github.com/callroute/callroute/pkg/version"
)

// Report is the JSON-serializable result of one analysis run.
type Report struct {
	CreationInfo CreationInfo          `json:"creation_info"`
	Mode         string                `json:"mode"`
	Targets      []*routes.TraceResult `json:"targets,omitempty"`
	Records      []models.RouteRecord  `json:"records,omitempty"`
	EntryPoints  []models.EntryPoint   `json:"entry_points"`
	CallGraph    GraphStats            `json:"call_graph"`
}

// CreationInfo contains metadata about report generation
type CreationInfo struct {
	Created     string `json:"created"`
	ToolName    string `json:"tool_name"`
	ToolVersion string `json:"tool_version"`
}

// GraphStats contains call graph statistics
type GraphStats struct {
	TotalCallables int `json:"total_callables"`
	TotalCallSites int `json:"total_call_sites"`
	TotalEdges     int `json:"total_edges"`
	EntryPoints    int `json:"entry_points"`
}

// NewReport assembles a report from the built graph and any trace results.
func NewReport(mode string, g *callgraph.Graph, results []*routes.TraceResult) *Report {
	report := &Report{
		CreationInfo: CreationInfo{
			Created:     time.Now().UTC().Format(time.RFC3339),
			ToolName:    "callroute",
			ToolVersion: version.GetVersion(),
		},
		Mode:        mode,
		Targets:     results,
		EntryPoints: g.EntryPoints(),
		CallGraph:   Stats(g),
	}
	for _, res := range results {
		report.Records = append(report.Records, Records(res)...)
	}
	return report
}

// Stats summarizes a built graph.
func Stats(g *callgraph.Graph) GraphStats {
	edges := 0
	for _, callees := range g.Forward {
		edges += len(callees)
	}
	return GraphStats{
		TotalCallables: len(g.Declared),
		TotalCallSites: len(g.Sites),
		TotalEdges:     edges,
		EntryPoints:    len(g.EntryPointIDs()),
	}
}

// WriteJSON encodes the report with two-space indentation.
func WriteJSON(w io.Writer, report *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
