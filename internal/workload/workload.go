package workload

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// IDPlaceholder is the substitution marker a query path may contain.
const IDPlaceholder = "{id}"

// Default constituency identifier range for {id} substitution.
const (
	DefaultIDMin = 1
	DefaultIDMax = 299
)

// Query defines one benchmark query: a name, a relative selection weight and
// a path template. Weights need not sum to 1.
type Query struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
	Path   string  `yaml:"path"`
}

// Workload is an immutable, ordered registry of queries plus the identifier
// range used for path instantiation. Pick and InstantiatePath draw from the
// caller's generator and never mutate shared state, so a single Workload is
// safe to share across all terminals.
type Workload struct {
	queries    []Query
	cumulative []float64 // running weight sums for weighted selection
	total      float64
	idMin      int
	idMax      int
}

// New builds a Workload from the given queries and identifier range.
func New(queries []Query, idMin, idMax int) (*Workload, error) {
	if len(queries) == 0 {
		return nil, fmt.Errorf("workload must define at least one query")
	}
	if idMin < 0 || idMax < idMin {
		return nil, fmt.Errorf("invalid identifier range [%d, %d]", idMin, idMax)
	}

	w := &Workload{
		queries:    make([]Query, len(queries)),
		cumulative: make([]float64, len(queries)),
		idMin:      idMin,
		idMax:      idMax,
	}
	copy(w.queries, queries)

	for i, q := range w.queries {
		if q.Name == "" {
			return nil, fmt.Errorf("query %d: name is required", i)
		}
		if q.Path == "" {
			return nil, fmt.Errorf("query %q: path is required", q.Name)
		}
		if q.Weight <= 0 {
			return nil, fmt.Errorf("query %q: weight must be greater than 0", q.Name)
		}
		w.total += q.Weight
		w.cumulative[i] = w.total
	}

	return w, nil
}

// Default returns the built-in WIS query mix.
func Default() *Workload {
	w, err := New([]Query{
		{Name: "Q1", Weight: 0.25, Path: "/api/seats?year=2025"},
		{Name: "Q2", Weight: 0.10, Path: "/api/members?year=2025"},
		{Name: "Q3", Weight: 0.25, Path: "/api/constituency/{id}/overview?year=2025"},
		{Name: "Q4", Weight: 0.10, Path: "/api/constituency-winners?year=2025"},
		{Name: "Q5", Weight: 0.10, Path: "/api/direct-without-coverage?year=2025"},
		{Name: "Q6", Weight: 0.20, Path: "/api/closest-winners?year=2025"},
	}, DefaultIDMin, DefaultIDMax)
	if err != nil {
		// The built-in mix is statically valid.
		panic(err)
	}
	return w
}

// file is the YAML document shape for user-provided workloads.
type file struct {
	Queries []Query `yaml:"queries"`
	IDMin   *int    `yaml:"idMin,omitempty"`
	IDMax   *int    `yaml:"idMax,omitempty"`
}

// LoadFile loads a custom query mix from a YAML file. The identifier range
// defaults to the built-in one when omitted.
func LoadFile(path string) (*Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workload file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse workload YAML: %w", err)
	}

	idMin, idMax := DefaultIDMin, DefaultIDMax
	if f.IDMin != nil {
		idMin = *f.IDMin
	}
	if f.IDMax != nil {
		idMax = *f.IDMax
	}

	w, err := New(f.Queries, idMin, idMax)
	if err != nil {
		return nil, fmt.Errorf("invalid workload file %s: %w", path, err)
	}
	return w, nil
}

// Queries returns the queries in their configured order. The returned slice
// is a copy; callers cannot mutate the workload through it.
func (w *Workload) Queries() []Query {
	out := make([]Query, len(w.queries))
	copy(out, w.queries)
	return out
}

// Pick draws one query with probability proportional to its weight, using
// the caller's generator. Deterministic given a seeded *rand.Rand.
func (w *Workload) Pick(r *rand.Rand) Query {
	x := r.Float64() * w.total
	for i, c := range w.cumulative {
		if x < c {
			return w.queries[i]
		}
	}
	// Float64 returns values in [0, 1); rounding can still land us here.
	return w.queries[len(w.queries)-1]
}

// InstantiatePath resolves the {id} placeholder in the query's path with a
// uniform draw from the identifier range. Pure aside from the draw itself.
func (w *Workload) InstantiatePath(q Query, r *rand.Rand) string {
	if !strings.Contains(q.Path, IDPlaceholder) {
		return q.Path
	}
	id := w.idMin + r.Intn(w.idMax-w.idMin+1)
	return strings.Replace(q.Path, IDPlaceholder, strconv.Itoa(id), 1)
}
