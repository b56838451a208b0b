// Package settings defines the flat configuration object read by the layout
// engine and the renderer.
//
// Settings are plain values: the engine copies them on every
// UpdateSettings call and never writes back. Files use TOML
// ([Load], [Save]); exported drawings embed the same fields as JSON.
package settings

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/graphdraw/pkg/errors"
)

// DrawMode selects what pointer input does on the canvas.
type DrawMode string

const (
	DrawNode  DrawMode = "node"
	DrawPen   DrawMode = "pen"
	DrawErase DrawMode = "erase"
)

// MarkBorder is the border style of selected nodes.
type MarkBorder string

const (
	BorderDouble MarkBorder = "double"
	BorderSingle MarkBorder = "single"
)

// Mark color indexes with special meaning. Indexes from MarkColorFirst up to
// MarkColorLast pick a palette entry.
const (
	MarkColorDefault = 1 // pen uses the edge color, nodes are unchanged
	MarkColorClear   = 2 // clears node marks, pen draws a rainbow
	MarkColorFirst   = 3
	MarkColorLast    = 9
)

// Settings is the full set of recognized options.
type Settings struct {
	Directed bool `toml:"directed" json:"directed"`
	DarkMode bool `toml:"dark_mode" json:"darkMode"`

	NodeRadius          float64 `toml:"node_radius" json:"nodeRadius"`
	FontSize            float64 `toml:"font_size" json:"fontSize"`
	NodeBorderWidthHalf float64 `toml:"node_border_width_half" json:"nodeBorderWidthHalf"`
	EdgeLength          float64 `toml:"edge_length" json:"edgeLength"`
	EdgeLabelSeparation float64 `toml:"edge_label_separation" json:"edgeLabelSeparation"`
	LabelOffset         int     `toml:"label_offset" json:"labelOffset"`

	DrawMode        DrawMode   `toml:"draw_mode" json:"drawMode"`
	MarkColor       int        `toml:"mark_color" json:"markColor"`
	MarkBorder      MarkBorder `toml:"mark_border" json:"markBorder"`
	PenThickness    float64    `toml:"pen_thickness" json:"penThickness"`
	PenTransparency float64    `toml:"pen_transparency" json:"penTransparency"`
	EraserRadius    float64    `toml:"eraser_radius" json:"eraserRadius"`

	ShowComponents        bool `toml:"show_components" json:"showComponents"`
	ShowBridges           bool `toml:"show_bridges" json:"showBridges"`
	ShowMSTs              bool `toml:"show_msts" json:"showMSTs"`
	TreeMode              bool `toml:"tree_mode" json:"treeMode"`
	BipartiteMode         bool `toml:"bipartite_mode" json:"bipartiteMode"`
	GridMode              bool `toml:"grid_mode" json:"gridMode"`
	MarkedNodes           bool `toml:"marked_nodes" json:"markedNodes"`
	LockMode              bool `toml:"lock_mode" json:"lockMode"`
	FixedMode             bool `toml:"fixed_mode" json:"fixedMode"`
	MultiedgeMode         bool `toml:"multiedge_mode" json:"multiedgeMode"`
	TestCaseBoundingBoxes bool `toml:"test_case_bounding_boxes" json:"testCaseBoundingBoxes"`

	CollisionAvoidance bool    `toml:"collision_avoidance" json:"collisionAvoidance"`
	CollisionStrength  float64 `toml:"collision_strength" json:"collisionStrength"`
	MinNodeDistance    float64 `toml:"min_node_distance" json:"minNodeDistance"`
}

// Defaults returns the settings a fresh drawing starts with.
func Defaults() Settings {
	return Settings{
		DarkMode:              true,
		NodeRadius:            15,
		FontSize:              15,
		NodeBorderWidthHalf:   1.5,
		EdgeLength:            10,
		EdgeLabelSeparation:   10,
		DrawMode:              DrawNode,
		MarkColor:             MarkColorDefault,
		MarkBorder:            BorderDouble,
		PenThickness:          1,
		PenTransparency:       0,
		EraserRadius:          20,
		MultiedgeMode:         true,
		TestCaseBoundingBoxes: true,
		CollisionAvoidance:    true,
		CollisionStrength:     1.0,
		MinNodeDistance:       0.5,
	}
}

// NodeDist is the base distance between adjacent node centers.
func (s Settings) NodeDist() float64 {
	return s.EdgeLength + 2*s.NodeRadius
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"node_radius", s.NodeRadius},
		{"font_size", s.FontSize},
		{"pen_thickness", s.PenThickness},
		{"eraser_radius", s.EraserRadius},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return errors.New(errors.ErrCodeInvalidSettings, "%s must be positive, got %g", p.name, p.value)
		}
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"node_border_width_half", s.NodeBorderWidthHalf},
		{"edge_length", s.EdgeLength},
		{"edge_label_separation", s.EdgeLabelSeparation},
		{"collision_strength", s.CollisionStrength},
		{"min_node_distance", s.MinNodeDistance},
	}
	for _, p := range nonNegative {
		if p.value < 0 {
			return errors.New(errors.ErrCodeInvalidSettings, "%s must not be negative, got %g", p.name, p.value)
		}
	}

	if s.PenTransparency < 0 || s.PenTransparency > 100 {
		return errors.New(errors.ErrCodeInvalidSettings, "pen_transparency must be within [0, 100], got %g", s.PenTransparency)
	}
	if s.MarkColor < MarkColorDefault || s.MarkColor > MarkColorLast {
		return errors.New(errors.ErrCodeInvalidSettings, "mark_color must be within [%d, %d], got %d", MarkColorDefault, MarkColorLast, s.MarkColor)
	}
	switch s.DrawMode {
	case DrawNode, DrawPen, DrawErase:
	default:
		return errors.New(errors.ErrCodeInvalidSettings, "unknown draw_mode %q", s.DrawMode)
	}
	switch s.MarkBorder {
	case BorderDouble, BorderSingle:
	default:
		return errors.New(errors.ErrCodeInvalidSettings, "unknown mark_border %q", s.MarkBorder)
	}
	return nil
}

// =============================================================================
// Files
// =============================================================================

// Load reads a TOML file on top of [Defaults]; keys absent from the file
// keep their default values.
func Load(path string) (Settings, error) {
	s := Defaults()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, errors.Wrap(errors.ErrCodeFileNotFound, err, "read settings %s", path)
	}
	if err != nil {
		return s, fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return s, errors.Wrap(errors.ErrCodeInvalidSettings, err, "decode %s", path)
	}
	return s, s.Validate()
}

// Save writes s as TOML.
func Save(s Settings, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return nil
}

// FromJSON decodes settings embedded in an exported drawing on top of base.
// Empty input returns base unchanged.
func FromJSON(raw []byte, base Settings) (Settings, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return base, nil
	}
	s := base
	if err := json.Unmarshal(raw, &s); err != nil {
		return base, errors.Wrap(errors.ErrCodeInvalidSettings, err, "decode settings")
	}
	return s, s.Validate()
}
