// Package memreport provides the hierarchical memory-accounting report used
// by kdw.Index.MemReport, and an opt-in diagnostic logger that kdw.Construct
// writes one line to per built dimension (wavelet depth and distinct-value
// count).
package memreport

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Report is a hierarchical memory-usage breakdown for one component of a
// kdw.Index: one entry per dimension's wavelet matrix plus one for the
// shared ordering structure (see kdw.Index.MemReport). TotalBytes is this
// component's own resident size; Children, when present, break that total
// down further (e.g. a wavelet matrix's per-level bit-vectors).
type Report struct {
	Name       string   `json:"name"`
	TotalBytes int      `json:"total_bytes"`
	Children   []Report `json:"children,omitempty"`
}

// SumChildren totals TotalBytes across all direct children.
// kdw.Index.MemReport uses it as the parent's own TotalBytes.
func (r Report) SumChildren() int {
	total := 0
	for _, c := range r.Children {
		total += c.TotalBytes
	}
	return total
}

// heaviestChild returns the name and share (0-1) of the largest direct
// child's contribution to TotalBytes, used by Print/String to flag which
// dimension or structure dominates an Index's footprint. Returns ("", 0) if
// there are no children or TotalBytes is zero.
func (r Report) heaviestChild() (name string, share float64) {
	if r.TotalBytes == 0 || len(r.Children) == 0 {
		return "", 0
	}
	var biggest Report
	for _, c := range r.Children {
		if c.TotalBytes > biggest.TotalBytes {
			biggest = c
		}
	}
	return biggest.Name, float64(biggest.TotalBytes) / float64(r.TotalBytes)
}

// Print formats and prints the Report as an indented tree, rendering sizes
// in human-readable units (humanize.Bytes, the same formatter kdwbench uses
// for its CSV bytes_human column) and annotating each node with whichever
// child dominates its footprint — the detail that matters when deciding
// which dimension's wavelet matrix to prune or re-encode.
func (r Report) Print(indent int) {
	fmt.Print(r.line(indent))
	for _, child := range r.Children {
		child.Print(indent + 1)
	}
}

// JSON returns the report as a JSON string, with exact byte counts (not the
// human-readable units Print/String use) so downstream tooling can compare
// or aggregate reports numerically.
func (r Report) JSON() string {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(b)
}

// String renders the same tree Print writes, as a single string.
func (r Report) String() string {
	var sb strings.Builder
	r.buildString(&sb, 0)
	return sb.String()
}

func (r Report) buildString(sb *strings.Builder, indent int) {
	sb.WriteString(r.line(indent))
	for _, child := range r.Children {
		child.buildString(sb, indent+1)
	}
}

func (r Report) line(indent int) string {
	prefix := strings.Repeat("  ", indent)
	if name, share := r.heaviestChild(); name != "" && share >= 0.5 {
		return fmt.Sprintf("%s- %s: %s (%s dominates, %.0f%%)\n", prefix, r.Name, humanize.Bytes(uint64(r.TotalBytes)), name, share*100)
	}
	return fmt.Sprintf("%s- %s: %s\n", prefix, r.Name, humanize.Bytes(uint64(r.TotalBytes)))
}

// Map applies f element-wise; a helper for assembling Report.Children from
// a slice of sub-components.
func Map[T, U any](ts []T, f func(T) U) []U {
	us := make([]U, len(ts))
	for i, v := range ts {
		us[i] = f(v)
	}
	return us
}
