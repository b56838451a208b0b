// Package graph defines the graph snapshots consumed by the layout engine.
//
// A [Snapshot] is an immutable-by-convention description of a graph at one
// point in time: an ordered node list, an edge list whose keys carry a
// multiplicity index for parallel edges, directed adjacency and reverse
// adjacency, and label maps. The engine never mutates a snapshot it is given.
//
// # Edge Keys
//
// Edges are addressed by space-separated keys:
//
//	"u v"     first edge from u to v (index 0)
//	"u v k"   k-th parallel edge from u to v
//
// Use [ParseEdgeKey] and [EdgeKey.String] to convert between the two forms.
//
// # Test Cases
//
// A drawing may hold several independent test cases. Each [TestCase] keeps
// two equivalent encodings of its graph (an edge list and a parent/child
// array) of which only one is live. [Merge] unions all test cases into one
// snapshot and reports the nodes of every inactive encoding in a [Conceal]
// set, so switching encodings is lossless.
//
// # Serialization
//
// Test cases are exchanged as JSON objects keyed by test-case number, with
// adjacency and label maps encoded as JSON objects:
//
//	cases, _ := graph.ReadFile("graph.json")
//	graph.WriteFile(cases, "copy.json")
package graph
