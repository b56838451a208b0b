package cli

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphdraw/pkg/graph"
	"github.com/matzehuels/graphdraw/pkg/structure"
)

// report is the structural summary of the visible graph.
type report struct {
	Nodes             int      `json:"nodes"`
	Edges             int      `json:"edges"`
	TestCases         int      `json:"testCases"`
	Directed          bool     `json:"directed"`
	Components        int      `json:"components"`
	StronglyConnected int      `json:"stronglyConnected,omitempty"`
	Bipartite         bool     `json:"bipartite"`
	Cuts              []string `json:"cutVertices"`
	Bridges           []string `json:"bridges"`
	Depth             int      `json:"treeDepth"`
	BackEdges         int      `json:"backEdges"`
	GridCols          int      `json:"gridCols"`
	GridRows          int      `json:"gridRows"`
	EdgesNumeric      bool     `json:"edgesNumeric"`
	MSTWeight         *int     `json:"mstWeight,omitempty"`
	MSTEdges          []string `json:"mstEdges,omitempty"`
	Degrees           []degree `json:"degrees"`
}

type degree struct {
	Node string `json:"node"`
	In   int    `json:"in"`
	Out  int    `json:"out"`
}

// analyze runs every structure algorithm over g. aspect is the canvas
// width over height, used for the grid.
func analyze(g graph.Snapshot, directed bool, aspect float64) report {
	r := report{
		Nodes:    len(g.Nodes),
		Edges:    len(g.Edges),
		Directed: directed,
		Degrees:  []degree{},
	}

	r.Components = structure.Count(structure.Components(g))
	if directed {
		r.StronglyConnected = structure.Count(structure.StronglyConnected(g))
	}
	_, _, r.Bipartite = structure.Bipartite(g)

	cuts, bridges := structure.Bridges(g)
	r.Cuts = sortedKeys(cuts)
	r.Bridges = sortedKeys(bridges)

	layers, back := structure.TreeLayers(g)
	for _, l := range layers {
		r.Depth = max(r.Depth, l.MaxDepth)
	}
	r.BackEdges = len(back)

	grid := structure.Grid(g, aspect)
	r.GridCols, r.GridRows = grid.Cols, grid.Rows

	r.EdgesNumeric = structure.EdgesNumeric(g)
	if mst, ok := structure.MinimumSpanningForest(g); ok {
		weight := 0
		for _, e := range g.Edges {
			if mst[e] {
				w, _ := strconv.Atoi(g.EdgeLabels[e])
				weight += w
				r.MSTEdges = append(r.MSTEdges, e)
			}
		}
		r.MSTWeight = &weight
	}

	for _, u := range g.Nodes {
		r.Degrees = append(r.Degrees, degree{Node: u, In: len(g.Rev[u]), Out: len(g.Adj[u])})
	}
	slices.SortStableFunc(r.Degrees, func(a, b degree) int {
		return (b.In + b.Out) - (a.In + a.Out)
	})
	return r
}

// sortedKeys never returns nil so empty sets encode as [].
func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	return append(out, slices.Sorted(maps.Keys(m))...)
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		asJSON   bool
		directed bool
		top      int
	)

	cmd := &cobra.Command{
		Use:   "analyze [graph.json]",
		Short: "Report the structure of a graph",
		Long: `Analyze reports what the editor's overlays show: connected and strongly
connected components, bipartiteness, bridges and cut vertices, BFS tree depth
and back edges, and the minimum spanning forest when every edge label is an
integer. Concealed nodes of inactive encodings are left out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := c.loadSettings()
			if err != nil {
				return err
			}
			j, err := loadJob(args[0], base)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("directed") {
				j.settings.Directed = directed
			}

			e := j.engine(c.Logger)
			r := analyze(e.VisibleSnapshot(), j.settings.Directed, j.width/j.height)
			r.TestCases = len(j.doc.TestCases)

			if asJSON {
				data, err := json.MarshalIndent(r, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			printReport(r, top)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVarP(&directed, "directed", "d", false, "treat edges as directed")
	cmd.Flags().IntVar(&top, "top", 10, "number of highest-degree nodes to list")
	return cmd
}

func printReport(r report, top int) {
	fmt.Fprintln(out, StyleTitle.Render("Graph structure"))
	printStats(r.Nodes, r.Edges, r.TestCases)
	fmt.Fprintln(out)

	printKeyValue("components", strconv.Itoa(r.Components))
	if r.Directed {
		printKeyValue("strong comps", strconv.Itoa(r.StronglyConnected))
	}
	printFlag("bipartite", r.Bipartite)
	printKeyValue("tree depth", strconv.Itoa(r.Depth))
	printKeyValue("back edges", strconv.Itoa(r.BackEdges))
	printKeyValue("grid", fmt.Sprintf("%d x %d", r.GridCols, r.GridRows))
	printKeyValue("cut vertices", list(r.Cuts))
	printKeyValue("bridges", list(r.Bridges))
	printFlag("numeric edges", r.EdgesNumeric)
	if r.MSTWeight != nil {
		printKeyValue("mst weight", strconv.Itoa(*r.MSTWeight))
	}

	if top <= 0 || len(r.Degrees) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, degreeTable(r.Degrees[:min(top, len(r.Degrees))]))
}

func list(items []string) string {
	if len(items) == 0 {
		return StyleDim.Render("none")
	}
	return strings.Join(items, ", ")
}

func degreeTable(rows []degree) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Node", "In", "Out").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col > 0 {
				return cellStyle.Foreground(colorCyan)
			}
			return cellStyle
		})
	for _, d := range rows {
		t.Row(d.Node, strconv.Itoa(d.In), strconv.Itoa(d.Out))
	}
	return t.Render()
}
