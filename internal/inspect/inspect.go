// Package inspect renders carriers for the command line.
package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/on-the-ground/categor_ive_go/setcat"
)

// DefaultLimit is the number of elements rendered when no limit is given.
const DefaultLimit = 64

// Digest fingerprints the rendered elements of c independently of their
// order. Only the first limit elements take part; limit <= 0 means
// DefaultLimit.
func Digest[T comparable](c setcat.Carrier[T], limit int) uint64 {
	var sum uint64
	for _, s := range Elements(c, limit) {
		sum ^= xxhash.Sum64String(s)
	}
	return sum
}

// Elements renders the first limit elements of c with fmt.Sprint.
func Elements[T comparable](c setcat.Carrier[T], limit int) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}
	elems := setcat.Take(c, limit)
	out := make([]string, len(elems))
	for i, e := range elems {
		out[i] = fmt.Sprint(e)
	}
	return out
}

// Report is what the CLI prints for one carrier.
type Report struct {
	Tag         string
	Kind        string
	Cardinality string
	Digest      uint64
	Elements    []string
	Truncated   bool
}

// NewReport summarizes c.
func NewReport[T comparable](c setcat.Carrier[T], limit int) Report {
	if limit <= 0 {
		limit = DefaultLimit
	}
	elems := Elements(c, limit+1)
	truncated := len(elems) > limit
	if truncated {
		elems = elems[:limit]
	}
	return Report{
		Tag:         c.Tag(),
		Kind:        c.Kind().String(),
		Cardinality: c.Cardinality().String(),
		Digest:      Digest(c, limit),
		Elements:    elems,
		Truncated:   truncated,
	}
}

// Write prints r, one element per line.
func (r Report) Write(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)\n", r.Tag, r.Kind)
	fmt.Fprintf(&sb, "cardinality: %s\n", r.Cardinality)
	fmt.Fprintf(&sb, "digest: %016x\n", r.Digest)
	for _, e := range r.Elements {
		fmt.Fprintf(&sb, "  %s\n", e)
	}
	if r.Truncated {
		sb.WriteString("  ...\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
