package cli

import (
	"encoding/json"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/graphdraw/pkg/graph"
	"github.com/matzehuels/graphdraw/pkg/settings"
)

func pathSnapshot(t *testing.T) graph.Snapshot {
	t.Helper()
	j, err := newJob([]byte(pathDoc), settings.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	return j.engine(quietLogger()).VisibleSnapshot()
}

func TestAnalyzePath(t *testing.T) {
	r := analyze(pathSnapshot(t), false, 4.0/3)

	if r.Nodes != 3 || r.Edges != 2 {
		t.Errorf("nodes, edges = %d, %d, want 3, 2", r.Nodes, r.Edges)
	}
	if r.Components != 1 {
		t.Errorf("components = %d, want 1", r.Components)
	}
	if r.StronglyConnected != 0 {
		t.Errorf("undirected report should not count strong components, got %d", r.StronglyConnected)
	}
	if !r.Bipartite {
		t.Error("a path is bipartite")
	}
	if !slices.Equal(r.Cuts, []string{"b"}) {
		t.Errorf("cuts = %v, want [b]", r.Cuts)
	}
	if !slices.Equal(r.Bridges, []string{"a b 0", "b c 0"}) {
		t.Errorf("bridges = %v", r.Bridges)
	}
	if !r.EdgesNumeric || r.MSTWeight == nil || *r.MSTWeight != 8 {
		t.Errorf("mst weight = %v, want 8", r.MSTWeight)
	}
	if r.BackEdges != 0 {
		t.Errorf("back edges = %d, want 0", r.BackEdges)
	}
	if r.Degrees[0].Node != "b" {
		t.Errorf("highest degree node = %q, want b", r.Degrees[0].Node)
	}
}

func TestAnalyzeWithoutLabels(t *testing.T) {
	s, err := graph.FromEdges([]string{"a", "b", "c"}, []string{"a b", "b c", "c a"}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	r := analyze(s, true, 1)

	if r.Bipartite {
		t.Error("a triangle is not bipartite")
	}
	if r.EdgesNumeric || r.MSTWeight != nil {
		t.Error("unlabeled edges have no spanning forest")
	}
	if r.StronglyConnected != 1 {
		t.Errorf("strong components = %d, want 1", r.StronglyConnected)
	}
	if len(r.Bridges) != 0 || len(r.Cuts) != 0 {
		t.Errorf("a cycle has no bridges or cuts, got %v %v", r.Bridges, r.Cuts)
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"bridges":[]`) {
		t.Errorf("empty lists should encode as [], got %s", data)
	}
}

func TestAnalyzeEmptyListsEncodeAsArrays(t *testing.T) {
	for name, s := range map[string]graph.Snapshot{
		"empty": graph.Empty(),
		"cycle": mustSnapshot(t, []string{"1", "2", "3", "4"}, []string{"1 2", "2 3", "3 4", "4 1"}),
	} {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(analyze(s, false, 1))
			if err != nil {
				t.Fatal(err)
			}
			for _, want := range []string{`"bridges":[]`, `"cutVertices":[]`, `"degrees":[`} {
				if !strings.Contains(string(data), want) {
					t.Errorf("missing %s in %s", want, data)
				}
			}
			if strings.Contains(string(data), "null") {
				t.Errorf("report should not contain null: %s", data)
			}
		})
	}
}

func mustSnapshot(t *testing.T, nodes, edges []string) graph.Snapshot {
	t.Helper()
	s, err := graph.FromEdges(nodes, edges, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestAnalyzeCommandJSON(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	stdout := captureOut(t)

	root := New(io.Discard, LogQuiet).RootCommand()
	root.SetArgs([]string{"analyze", writeDoc(t, pathDoc), "--json"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}

	var r report
	if err := json.Unmarshal(stdout.Bytes(), &r); err != nil {
		t.Fatalf("output is not a JSON report: %v\n%s", err, stdout)
	}
	if r.TestCases != 1 || r.Nodes != 3 {
		t.Errorf("report = %+v", r)
	}
}

func TestPrintReport(t *testing.T) {
	stdout := captureOut(t)
	printReport(analyze(pathSnapshot(t), false, 1), 2)

	got := stdout.String()
	for _, want := range []string{"Graph structure", "3 nodes", "cut vertices", "mst weight", "Node"} {
		if !strings.Contains(got, want) {
			t.Errorf("report output missing %q:\n%s", want, got)
		}
	}
}
