package domain

import (
	"fmt"
	"path/filepath"

	m "unfold.dev/pkg/unfold/internal/model"
)

// NameCounts counts occurrences of each base name.
type NameCounts map[string]int

// CountNames builds the occurrence count of every base name in files.
func CountNames(files []m.DiscoveredFile) NameCounts {
	counts := NameCounts{}
	for _, file := range files {
		counts[file.BaseName]++
	}

	return counts
}

// Conflicts returns the set of base names that occur more than once.
func (c NameCounts) Conflicts() map[string]struct{} {
	conflicts := map[string]struct{}{}

	for name, count := range c {
		if count > 1 {
			conflicts[name] = struct{}{}
		}
	}

	return conflicts
}

// SplitName splits a base name at its last extension separator.
// A name without extension yields an empty ext; a leading dot does not start
// an extension, so ".bashrc" is all stem.
func SplitName(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	if ext == name {
		return name, ""
	}

	return name[:len(name)-len(ext)], ext
}

// ConflictName formats the disambiguated name of the n-th file named name.
func ConflictName(n int, name string) string {
	stem, ext := SplitName(name)
	return fmt.Sprintf("[conflict-%d]-%s%s", n, stem, ext)
}

// Resolver assigns every discovered file a unique name inside the output root.
type Resolver struct {
	counts    NameCounts
	conflicts map[string]struct{}
	counters  map[string]int
	taken     map[string]struct{}
}

// NewResolver prepares a resolver for the complete file set. It must be built
// from all files before the first Assign call. Reserved names belong to files
// the run itself writes into the output root (the audit document); a source
// file carrying one of them is treated as colliding.
func NewResolver(files []m.DiscoveredFile, reserved ...string) *Resolver {
	counts := CountNames(files)
	conflicts := counts.Conflicts()
	taken := make(map[string]struct{}, len(counts)+len(reserved))

	for name := range counts {
		taken[name] = struct{}{}
	}

	for _, name := range reserved {
		taken[name] = struct{}{}

		if counts[name] > 0 {
			conflicts[name] = struct{}{}
		}
	}

	return &Resolver{
		counts:    counts,
		conflicts: conflicts,
		counters:  map[string]int{},
		taken:     taken,
	}
}

// Colliding reports whether name occurs more than once in the file set or is
// reserved by the run.
func (r *Resolver) Colliding(name string) bool {
	_, ok := r.conflicts[name]
	return ok
}

// Assign returns the destination of file. Non-colliding names pass through;
// colliding names get a per-name counter incremented in call order.
//
// Counters are not always contiguous: when [conflict-n]-name is itself the
// base name of another file in the tree (or a reserved name), n is skipped
// and the file gets the next free counter. Without the skip two files would
// share a destination, so for such trees the k occurrences of a name are not
// numbered exactly 1..k.
func (r *Resolver) Assign(file m.DiscoveredFile) m.Assignment {
	if !r.Colliding(file.BaseName) {
		return m.Assignment{File: file, DestName: file.BaseName}
	}

	for {
		r.counters[file.BaseName]++

		dest := ConflictName(r.counters[file.BaseName], file.BaseName)
		if _, clash := r.taken[dest]; clash {
			continue
		}

		r.taken[dest] = struct{}{}

		return m.Assignment{File: file, DestName: dest, Renamed: true}
	}
}

// Resolve assigns destinations to all files in order.
func Resolve(files []m.DiscoveredFile, reserved ...string) []m.Assignment {
	resolver := NewResolver(files, reserved...)

	assignments := make([]m.Assignment, 0, len(files))
	for _, file := range files {
		assignments = append(assignments, resolver.Assign(file))
	}

	return assignments
}
