package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/graphdraw/pkg/errors"
)

// Document is the exported drawing: test cases plus the settings they were
// drawn with. Settings are kept raw so this package stays independent of
// the settings package.
type Document struct {
	TestCases map[int]TestCase `json:"testCases"`
	Settings  json.RawMessage  `json:"settings,omitempty"`
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal encodes a document as indented JSON.
func Marshal(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes a document as indented JSON to w.
func Write(doc Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a document to path.
func WriteFile(doc Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(doc, f)
}

// Read decodes a document. A bare test-case object (keys are test-case
// numbers) is accepted as a document without settings.
func Read(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read: %w", err)
	}
	return Unmarshal(data)
}

// ReadFile reads a document from path.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Unmarshal decodes a document from JSON bytes and validates every test case.
func Unmarshal(data []byte) (Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode document")
	}

	var doc Document
	if _, ok := fields["testCases"]; ok {
		if err := json.Unmarshal(data, &doc); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode document")
		}
	} else if err := json.Unmarshal(data, &doc.TestCases); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode test cases")
	}

	for num, tc := range doc.TestCases {
		tc, err := normalize(tc)
		if err != nil {
			return Document{}, errors.Wrap(errors.GetCode(err), err, "test case %d", num)
		}
		doc.TestCases[num] = tc
	}
	return doc, nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func normalize(tc TestCase) (TestCase, error) {
	switch tc.InputFormat {
	case "":
		tc.InputFormat = FormatEdges
	case FormatEdges, FormatParentChild:
	default:
		return tc, errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q", tc.InputFormat)
	}
	var err error
	if tc.Edges, err = complete(tc.Edges); err != nil {
		return tc, err
	}
	if tc.ParentChild, err = complete(tc.ParentChild); err != nil {
		return tc, err
	}
	return tc, nil
}

// complete fills nil collections and derives adjacency for hand-written
// files that only list nodes and edges.
func complete(s Snapshot) (Snapshot, error) {
	s = fill(s)
	if len(s.Adj) == 0 && len(s.Edges) > 0 {
		return FromEdges(s.Nodes, s.Edges, s.EdgeLabels, s.NodeLabels)
	}
	return s, s.Validate()
}

// fill replaces nil collections so decoded snapshots behave like Empty().
func fill(s Snapshot) Snapshot {
	if s.Nodes == nil {
		s.Nodes = []string{}
	}
	if s.Edges == nil {
		s.Edges = []string{}
	}
	if s.Adj == nil {
		s.Adj = map[string][]string{}
	}
	if s.Rev == nil {
		s.Rev = map[string][]string{}
	}
	if s.EdgeLabels == nil {
		s.EdgeLabels = map[string]string{}
	}
	if s.NodeLabels == nil {
		s.NodeLabels = map[string]string{}
	}
	return s
}
