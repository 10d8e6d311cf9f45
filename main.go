package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/callroute/callroute/pkg/analysis/callgraph"
	"github.com/callroute/callroute/pkg/analysis/routes"
	"github.com/callroute/callroute/pkg/config"
	"github.com/callroute/callroute/pkg/models"
	"github.com/callroute/callroute/pkg/output"
	"github.com/callroute/callroute/pkg/sourcemodel"
	"github.com/callroute/callroute/pkg/utils"
	"github.com/callroute/callroute/pkg/version"
)

func main() {
	var (
		source      = flag.String("source", ".", "Comma-separated source roots (Go package patterns or directories)")
		mode        = flag.String("mode", "trace", "Analysis mode (trace, forward, reverse)")
		target      = flag.String("target", "", "Callee pattern (regexp) to trace; required for trace mode")
		format      = flag.String("format", "text", "Output format (text, csv, tsv, json, dot)")
		outputPath  = flag.String("o", "", "Write output to file instead of stdout; \"auto\" derives a name from the first source root")
		exclude     = flag.String("exclude", "", "Comma-separated additional owner prefixes to exclude")
		maxRoutes   = flag.Int("max-routes", 0, "Maximum routes per traced call site (0: config default)")
		maxDepth    = flag.Int("max-depth", 0, "Maximum route depth (0: config default)")
		verbose     = flag.Bool("v", false, "Verbose output")
		showVersion = flag.Bool("version", false, "Show version information and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetVersionWithCommit())
		os.Exit(0)
	}

	cfg, err := config.DefaultConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.AddOwnerPrefixes(utils.ParseCommaDelimited(*exclude))
	if *maxRoutes > 0 {
		cfg.Limits.MaxRoutes = *maxRoutes
	}
	if *maxDepth > 0 {
		cfg.Limits.MaxDepth = *maxDepth
	}

	roots := utils.ParseCommaDelimited(*source)

	loader := sourcemodel.NewLoader(*verbose)
	model, err := loader.Load(roots)
	if err != nil {
		log.Fatalf("Source loading failed: %v", err)
	}

	graph := callgraph.Build(model, cfg)
	utils.VerboseLogf(*verbose, "Built call graph: %d callables, %d call sites\n",
		len(graph.Declared), len(graph.Sites))

	w, cleanup, err := openOutput(*outputPath, roots, *format)
	if err != nil {
		log.Fatalf("Failed to open output: %v", err)
	}
	defer cleanup()

	switch *mode {
	case "trace":
		if *target == "" {
			log.Fatalf("trace mode requires -target")
		}
		if err := runTrace(w, model, graph, cfg, *target, *format); err != nil {
			log.Fatalf("Trace failed: %v", err)
		}
	case "forward", "reverse":
		if err := runTree(w, graph, *mode, *format); err != nil {
			log.Fatalf("%s analysis failed: %v", *mode, err)
		}
	default:
		log.Fatalf("unsupported mode: %s (supported: trace, forward, reverse)", *mode)
	}
}

func runTrace(w io.Writer, model *sourcemodel.Model, graph *callgraph.Graph, cfg *config.Config, target, format string) error {
	tracer := routes.NewTracer(model, graph, cfg.Limits.MaxRoutes, cfg.Limits.MaxDepth)
	results, err := tracer.TraceByPattern(target)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintf(os.Stderr, "No call sites matched pattern %q\n", target)
	}

	switch format {
	case "text":
		for _, res := range results {
			if err := output.FormatRoutes(w, res); err != nil {
				return err
			}
		}
		return nil
	case "csv", "tsv":
		var records []models.RouteRecord
		for _, res := range results {
			records = append(records, output.Records(res)...)
		}
		sep := ','
		if format == "tsv" {
			sep = '\t'
		}
		return output.WriteRecords(w, records, sep)
	case "json":
		return output.WriteJSON(w, output.NewReport("trace", graph, results))
	case "dot":
		return output.WriteDOT(w, graph)
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, csv, tsv, json, dot)", format)
	}
}

func runTree(w io.Writer, graph *callgraph.Graph, mode, format string) error {
	switch format {
	case "text":
		if mode == "forward" {
			return output.PrintForwardTrees(w, graph)
		}
		return output.PrintReverseTrees(w, graph)
	case "json":
		return output.WriteJSON(w, output.NewReport(mode, graph, nil))
	case "dot":
		return output.WriteDOT(w, graph)
	default:
		return fmt.Errorf("format %s is not supported in %s mode (supported: text, json, dot)", format, mode)
	}
}

// openOutput resolves the report destination. The returned cleanup closes
// the file and surfaces close errors, which matter for report output.
func openOutput(path string, roots []string, format string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	if path == "auto" && len(roots) > 0 {
		path = utils.GenerateOutputFilename(roots[0], format)
	}
	file, err := utils.SafeCreateFile(path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close output file %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Report written to: %s\n", path)
	}
	return file, cleanup, nil
}
