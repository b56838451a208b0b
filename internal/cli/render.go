package cli

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphdraw/pkg/animate"
	"github.com/matzehuels/graphdraw/pkg/errors"
	"github.com/matzehuels/graphdraw/pkg/settings"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file, or base path for several formats
	formats  []string // png, svg, dot, graphviz, json
	width    float64
	height   float64
	ticks    int
	seed     uint64
	scale    float64
	noCache  bool
	directed bool
	light    bool
	modes    []string // overlay modes switched on for this render
}

// modeFlags maps --mode values to settings switches.
var modeFlags = map[string]func(*settings.Settings){
	"tree":       func(s *settings.Settings) { s.TreeMode = true },
	"grid":       func(s *settings.Settings) { s.GridMode = true },
	"bipartite":  func(s *settings.Settings) { s.BipartiteMode = true },
	"components": func(s *settings.Settings) { s.ShowComponents = true },
	"bridges":    func(s *settings.Settings) { s.ShowBridges = true },
	"mst":        func(s *settings.Settings) { s.ShowMSTs = true },
	"fixed":      func(s *settings.Settings) { s.FixedMode = true },
	"no-boxes":   func(s *settings.Settings) { s.TestCaseBoundingBoxes = false },
	"no-multi":   func(s *settings.Settings) { s.MultiedgeMode = false },
}

// applyModes switches on every named mode.
func applyModes(s *settings.Settings, modes []string) error {
	for _, m := range modes {
		set, ok := modeFlags[strings.TrimSpace(m)]
		if !ok {
			return errors.New(errors.ErrCodeInvalidInput, "unknown mode %q", m)
		}
		set(s)
	}
	return nil
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		width:  defaultWidth,
		height: defaultHeight,
		ticks:  defaultTicks,
		seed:   defaultSeed,
		scale:  1,
	}

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Simulate a graph headless and write the settled frame",
		Long: `Render loads test cases exported by the editor, runs the force simulation
for a fixed number of 90 Hz ticks with a seeded random source, and writes the
final frame. The same input, settings, seed and tick count always produce the
same output, so results are cached.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (several)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), svg, dot, graphviz, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "canvas width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "canvas height")
	cmd.Flags().IntVarP(&opts.ticks, "ticks", "n", opts.ticks, "simulation ticks (90 per second)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", opts.seed, "random seed for initial placement")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG pixel density")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVarP(&opts.directed, "directed", "d", false, "draw edges as directed")
	cmd.Flags().BoolVar(&opts.light, "light", false, "use the light theme")
	cmd.Flags().StringSliceVarP(&opts.modes, "mode", "m", nil, "modes: tree, grid, bipartite, components, bridges, mst, fixed, no-boxes, no-multi")
	_ = cmd.RegisterFlagCompletionFunc("format", completeList([]string{formatPNG, formatSVG, formatDOT, formatGraphviz, formatJSON}))
	_ = cmd.RegisterFlagCompletionFunc("mode", completeList(slices.Sorted(maps.Keys(modeFlags))))

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	ctx := cmd.Context()
	base, err := c.loadSettings()
	if err != nil {
		return err
	}
	j, err := loadJob(input, base)
	if err != nil {
		return err
	}
	if err := c.applyRenderFlags(cmd, j, opts); err != nil {
		return err
	}

	ca, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer ca.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Simulating %d ticks...", j.ticks))
	spinner.Start()
	prog := newProgress(c.Logger)

	r := newRenderer(ca, nil, c.Logger)
	artifacts, err := r.render(ctx, j, opts.formats, func(done int) {
		spinner.SetMessage("Simulating... %ds of %ds", done/animate.FPS, j.ticks/animate.FPS)
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done("Rendered", "formats", len(artifacts))

	nodes, edges := 0, 0
	for _, tc := range j.doc.TestCases {
		nodes += len(tc.Active().Nodes)
		edges += len(tc.Active().Edges)
	}
	printSuccess("Rendered %s", filepath.Base(input))
	printStats(nodes, edges, len(j.doc.TestCases))

	written, err := writeArtifacts(artifacts, outputBase(input, opts.output), len(artifacts) > 1)
	if err != nil {
		return err
	}
	for i, path := range written {
		printFile(path, artifacts[i].Cached)
	}
	printNextStep("Inspect the structure", "graphdraw analyze "+input)
	return nil
}

// applyRenderFlags copies flags onto the job. Settings flags apply only when
// given, so values from the settings file and the document survive.
func (c *CLI) applyRenderFlags(cmd *cobra.Command, j *job, opts renderOpts) error {
	j.width, j.height = opts.width, opts.height
	j.ticks, j.seed, j.scale = opts.ticks, opts.seed, opts.scale

	flags := cmd.Flags()
	if flags.Changed("directed") {
		j.settings.Directed = opts.directed
	}
	if flags.Changed("light") {
		j.settings.DarkMode = !opts.light
	}
	if err := applyModes(&j.settings, opts.modes); err != nil {
		return err
	}
	return j.validate()
}

// outputBase derives the output path from the input when -o is not given.
func outputBase(input, output string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + formatExt[formatPNG]
}

// writeArtifacts writes every artifact and returns the paths in order.
func writeArtifacts(artifacts []artifact, base string, multiple bool) ([]string, error) {
	if !multiple && len(artifacts) == 1 && filepath.Ext(base) == formatExt[formatPNG] && artifacts[0].Format != formatPNG {
		// A single non-PNG format never lands in a .png file.
		multiple = true
	}
	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path := outputPath(base, a.Format, multiple)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, a.Data, 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
