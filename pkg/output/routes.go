// Package output formats traced routes and graph traversals into their
// external representations: indented route text, forward/reverse trees,
// CSV/TSV records, a JSON report, and DOT graph markup.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/callroute/callroute/pkg/analysis/conditions"
	"github.com/callroute/callroute/pkg/analysis/routes"
	"github.com/callroute/callroute/pkg/models"
)

const indentUnit = "  "

// FormatRoutes renders every route of a trace result in the canonical text
// form: a "[Route N]" header, one caller line per hop with its terminal
// note, condition lines one level deeper each, and the target last.
func FormatRoutes(w io.Writer, res *routes.TraceResult) error {
	if _, err := fmt.Fprintf(w, "Call route tracking: %s at %s\n\n", res.Target, res.Site.Location()); err != nil {
		return err
	}

	for i, route := range res.Routes {
		if err := formatRoute(w, i+1, route); err != nil {
			return err
		}
	}

	if len(res.EntryPoints) > 0 {
		if _, err := fmt.Fprintln(w, "Entry points reached:"); err != nil {
			return err
		}
		for _, ep := range res.EntryPoints {
			if _, err := fmt.Fprintf(w, "  %s\n", ep); err != nil {
				return err
			}
		}
		fmt.Fprintln(w)
	}

	if res.Truncated {
		if _, err := fmt.Fprintln(w, "(route enumeration truncated by configured limits)"); err != nil {
			return err
		}
	}
	return nil
}

func formatRoute(w io.Writer, number int, route models.Route) error {
	var b strings.Builder
	fmt.Fprintf(&b, "[Route %d]\n", number)

	depth := 0
	for _, step := range route.Steps {
		b.WriteString(strings.Repeat(indentUnit, depth))
		b.WriteString(stepLine(step))
		b.WriteByte('\n')

		for _, cond := range step.Conditions {
			depth++
			b.WriteString(strings.Repeat(indentUnit, depth))
			b.WriteString(cond)
			b.WriteByte('\n')
		}
		depth++
	}

	b.WriteString(strings.Repeat(indentUnit, depth))
	fmt.Fprintf(&b, "[Target] %s\n\n", route.Target)

	_, err := io.WriteString(w, b.String())
	return err
}

func stepLine(step models.RouteStep) string {
	if step.Note == models.NoteTopLevel {
		return step.Note.String()
	}
	line := step.Caller.String()
	if step.Note != models.NoteNone {
		line += " " + step.Note.String()
	}
	return line
}

// Records flattens a trace result into the tabular per-route schema:
// target, ordered caller chain, condition text, reached entry point.
func Records(res *routes.TraceResult) []models.RouteRecord {
	records := make([]models.RouteRecord, 0, len(res.Routes))
	for i, route := range res.Routes {
		rec := models.RouteRecord{
			Target: route.Target.String(),
			Route:  i + 1,
		}
		for _, step := range route.Steps {
			rec.Callers = append(rec.Callers, stepLine(step))
			rec.Conditions = append(rec.Conditions, step.Conditions...)
			if step.Note == models.NoteEntryPoint {
				rec.EntryPoint = step.Caller.String()
			}
			if step.Note == models.NoteTopLevel {
				rec.EntryPoint = step.Note.String()
			}
		}
		if len(rec.Conditions) == 0 {
			rec.Conditions = []string{conditions.NoCondition}
		}
		records = append(records, rec)
	}
	return records
}
