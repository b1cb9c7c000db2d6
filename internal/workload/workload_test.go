package workload

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestNew_Validation(t *testing.T) {
	valid := []Query{{Name: "Q1", Weight: 1, Path: "/a"}}

	if _, err := New(nil, 1, 10); err == nil {
		t.Error("Expected error for empty query list")
	}
	if _, err := New([]Query{{Name: "", Weight: 1, Path: "/a"}}, 1, 10); err == nil {
		t.Error("Expected error for missing name")
	}
	if _, err := New([]Query{{Name: "Q1", Weight: 1, Path: ""}}, 1, 10); err == nil {
		t.Error("Expected error for missing path")
	}
	if _, err := New([]Query{{Name: "Q1", Weight: 0, Path: "/a"}}, 1, 10); err == nil {
		t.Error("Expected error for non-positive weight")
	}
	if _, err := New(valid, 10, 1); err == nil {
		t.Error("Expected error for inverted identifier range")
	}
	if _, err := New(valid, 1, 10); err != nil {
		t.Errorf("Expected valid workload, got: %v", err)
	}
}

func TestDefault_QueryOrder(t *testing.T) {
	wl := Default()
	queries := wl.Queries()

	want := []string{"Q1", "Q2", "Q3", "Q4", "Q5", "Q6"}
	if len(queries) != len(want) {
		t.Fatalf("Expected %d queries, got: %d", len(want), len(queries))
	}
	for i, name := range want {
		if queries[i].Name != name {
			t.Errorf("Expected query %d to be %s, got: %s", i, name, queries[i].Name)
		}
	}
}

// TestPick_Distribution verifies the observed selection frequency tracks the
// configured weight share over a large number of draws.
func TestPick_Distribution(t *testing.T) {
	wl := Default()
	r := rand.New(rand.NewSource(1))

	const draws = 100000
	counts := make(map[string]int)
	for i := 0; i < draws; i++ {
		counts[wl.Pick(r).Name]++
	}

	var total float64
	for _, q := range wl.Queries() {
		total += q.Weight
	}

	const tolerance = 0.02 // 2 percentage points
	for _, q := range wl.Queries() {
		want := q.Weight / total
		got := float64(counts[q.Name]) / draws
		if math.Abs(got-want) > tolerance {
			t.Errorf("Query %s: expected share ~%.2f, got: %.3f", q.Name, want, got)
		}
	}
}

// TestPick_Reproducible verifies identical seeds yield identical sequences.
func TestPick_Reproducible(t *testing.T) {
	wl := Default()

	first := make([]string, 0, 1000)
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		first = append(first, wl.Pick(r).Name)
	}

	r = rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		if got := wl.Pick(r).Name; got != first[i] {
			t.Fatalf("Draw %d diverged: expected %s, got %s", i, first[i], got)
		}
	}
}

func TestInstantiatePath(t *testing.T) {
	wl, err := New([]Query{
		{Name: "plain", Weight: 1, Path: "/api/seats?year=2025"},
		{Name: "templated", Weight: 1, Path: "/api/constituency/{id}/overview"},
	}, 1, 299)
	if err != nil {
		t.Fatalf("Failed to build workload: %v", err)
	}

	r := rand.New(rand.NewSource(7))
	queries := wl.Queries()

	if got := wl.InstantiatePath(queries[0], r); got != queries[0].Path {
		t.Errorf("Expected plain path unchanged, got: %s", got)
	}

	for i := 0; i < 1000; i++ {
		path := wl.InstantiatePath(queries[1], r)
		if strings.Contains(path, IDPlaceholder) {
			t.Fatalf("Placeholder not resolved: %s", path)
		}
		idStr := strings.TrimSuffix(strings.TrimPrefix(path, "/api/constituency/"), "/overview")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			t.Fatalf("Could not extract id from %s: %v", path, err)
		}
		if id < 1 || id > 299 {
			t.Fatalf("Identifier %d outside [1, 299]", id)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mix.yaml")

	content := `queries:
  - name: A
    weight: 0.7
    path: /api/a
  - name: B
    weight: 0.3
    path: /api/b/{id}
idMin: 5
idMax: 9
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write workload file: %v", err)
	}

	wl, err := LoadFile(path)
	if err != nil {
		t.Fatalf("Failed to load workload: %v", err)
	}

	queries := wl.Queries()
	if len(queries) != 2 || queries[0].Name != "A" || queries[1].Name != "B" {
		t.Errorf("Unexpected queries: %+v", queries)
	}

	r := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		p := wl.InstantiatePath(queries[1], r)
		id, err := strconv.Atoi(strings.TrimPrefix(p, "/api/b/"))
		if err != nil {
			t.Fatalf("Could not parse id in %s: %v", p, err)
		}
		if id < 5 || id > 9 {
			t.Fatalf("Identifier %d outside configured [5, 9]", id)
		}
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "nope.yaml")
	if _, err := LoadFile(missing); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("queries:\n  - name: A\n    weight: 0\n    path: /a\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := LoadFile(bad); err == nil {
		t.Error("Expected error for zero-weight query")
	}
}
