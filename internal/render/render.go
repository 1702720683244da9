// Package render produces human-readable terminal summaries of registry
// snapshots, schema metadata, and diffs. Rendering is a convenience for
// inspection and tooling; nothing in the engine depends on it.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/omopkit/semantics/registry"
	"github.com/omopkit/semantics/schema"
)

// Options configures rendering behavior.
type Options struct {
	NoColor bool
}

// Renderer writes summaries to a writer.
type Renderer struct {
	writer  io.Writer
	noColor bool
}

// New creates a renderer.
func New(w io.Writer, opts *Options) *Renderer {
	noColor := false
	if opts != nil {
		noColor = opts.NoColor
	}
	return &Renderer{writer: w, noColor: noColor}
}

func (r *Renderer) heading(s string) string {
	if r.noColor {
		return s
	}
	return color.New(color.Bold).Sprint(s)
}

func (r *Renderer) dim(s string) string {
	if r.noColor {
		return s
	}
	return color.New(color.Faint).Sprint(s)
}

// Registry writes a role-by-role summary of a registry snapshot.
func (r *Renderer) Registry(reg *registry.Registry) {
	s := reg.Summary()
	fmt.Fprintln(r.writer, r.heading("Concept Registry"))
	fmt.Fprintf(r.writer, "  Concepts: %d\n", s.Concepts)
	fmt.Fprintf(r.writer, "  Groups:   %d\n", s.Groups)
	fmt.Fprintln(r.writer, "  Roles:")
	for _, role := range reg.Roles() {
		count := len(reg.ByRole(role))
		line := fmt.Sprintf("    - %s: %d", role, count)
		if desc := reg.DescribeRole(role); desc != "" {
			line += " " + r.dim(desc)
		}
		fmt.Fprintln(r.writer, line)
	}
}

// Schema writes a summary of schema metadata.
func (r *Renderer) Schema(info *schema.Info) {
	fmt.Fprintln(r.writer, r.heading("Schema"))
	fmt.Fprintf(r.writer, "  Roles:   %s\n", Preview(info.Roles(), 4))
	fmt.Fprintf(r.writer, "  Classes: %s\n", Preview(info.Classes(), 4))
}

// Diff writes the six diff categories, skipping empty ones.
func (r *Renderer) Diff(d registry.Diff) {
	fmt.Fprintln(r.writer, r.heading("Registry Diff"))
	if d.Empty() {
		fmt.Fprintln(r.writer, "  no differences")
		return
	}
	writeIDs := func(label string, ids []int) {
		if len(ids) > 0 {
			fmt.Fprintf(r.writer, "  %s: %v\n", label, ids)
		}
	}
	writeNames := func(label string, names []string) {
		if len(names) > 0 {
			fmt.Fprintf(r.writer, "  %s: %s\n", label, strings.Join(names, ", "))
		}
	}
	writeIDs("concepts added", d.AddedConcepts)
	writeIDs("concepts removed", d.RemovedConcepts)
	writeIDs("concepts changed", d.ChangedConcepts)
	writeNames("groups added", d.AddedGroups)
	writeNames("groups removed", d.RemovedGroups)
	writeNames("groups changed", d.ChangedGroups)
}

// Preview joins the first limit items, noting how many were elided.
func Preview(items []string, limit int) string {
	if limit <= 0 || len(items) <= limit {
		return strings.Join(items, ", ")
	}
	head := strings.Join(items[:limit], ", ")
	return fmt.Sprintf("%s, ... (+%d)", head, len(items)-limit)
}
