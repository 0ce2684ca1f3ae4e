package annotate

import (
	"github.com/jonathan/resume-diff/internal/changeset"
	"github.com/jonathan/resume-diff/internal/diffpath"
	"github.com/jonathan/resume-diff/internal/resume"
)

// Classification is the change status of one node.
type Classification string

const (
	Unchanged Classification = "unchanged"
	Added     Classification = "added"
	Removed   Classification = "removed"
	Modified  Classification = "modified"
)

// classificationOf maps a normalized change onto its display classification.
func classificationOf(c changeset.Change) Classification {
	switch c.(type) {
	case changeset.Modified, changeset.TypeChanged:
		return Modified
	case changeset.Added:
		return Added
	case changeset.Removed:
		return Removed
	default:
		return Unchanged
	}
}

// NodeKind describes the shape of a rendered node.
type NodeKind string

const (
	KindLeaf     NodeKind = "leaf"
	KindSequence NodeKind = "sequence"
	KindMapping  NodeKind = "mapping"
	// KindEmpty is an absent, null or zero-length array value.
	KindEmpty NodeKind = "empty"
	// KindFallback is a value with no JSON shape, shown by its literal label.
	KindFallback NodeKind = "fallback"
	// KindTruncated replaces subtrees deeper than Options.MaxDepth.
	KindTruncated NodeKind = "truncated"
)

// Node is one annotated position of the comparison tree.
type Node struct {
	Path           diffpath.Path  `json:"-" yaml:"-"`
	PathText       string         `json:"path" yaml:"path"`
	Key            string         `json:"key,omitempty" yaml:"key,omitempty"`
	Label          string         `json:"label" yaml:"label"`
	Kind           NodeKind       `json:"kind" yaml:"kind"`
	Classification Classification `json:"classification" yaml:"classification"`

	// Value is the displayed value of leaves; Text is its rendering.
	Value resume.Value `json:"value,omitempty" yaml:"value,omitempty"`
	Text  string       `json:"text,omitempty" yaml:"text,omitempty"`

	// Old and New are set on changed nodes.
	Old     resume.Value `json:"old,omitempty" yaml:"old,omitempty"`
	New     resume.Value `json:"new,omitempty" yaml:"new,omitempty"`
	OldType string       `json:"old_type,omitempty" yaml:"old_type,omitempty"`
	NewType string       `json:"new_type,omitempty" yaml:"new_type,omitempty"`

	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsLeaf reports whether the node has no children by construction.
func (n *Node) IsLeaf() bool {
	return n.Kind != KindSequence && n.Kind != KindMapping
}

// Walk visits n and its descendants depth-first, parents before children.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}

// Find returns the node addressed by path within the subtree rooted at n,
// or nil.
func (n *Node) Find(path diffpath.Path) *Node {
	if n == nil || !path.HasPrefix(n.Path) {
		return nil
	}
	cur := n
	for _, seg := range path[len(n.Path):] {
		if seg.IsIndex() {
			if cur.Kind != KindSequence || seg.Position() >= len(cur.Children) {
				return nil
			}
			cur = cur.Children[seg.Position()]
			continue
		}
		if cur.Kind != KindMapping {
			return nil
		}
		if cur = cur.Child(seg.Name()); cur == nil {
			return nil
		}
	}
	return cur
}

// Child returns the direct child stored under key, or nil.
func (n *Node) Child(key string) *Node {
	for _, c := range n.Children {
		if c.Key == key {
			return c
		}
	}
	return nil
}

// Summary counts nodes per classification.
type Summary struct {
	Added     int `json:"added" yaml:"added"`
	Removed   int `json:"removed" yaml:"removed"`
	Modified  int `json:"modified" yaml:"modified"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
}

// Summarize counts the classifications of every node in the trees.
func Summarize(nodes []*Node) Summary {
	var s Summary
	for _, root := range nodes {
		root.Walk(func(n *Node) bool {
			switch n.Classification {
			case Added:
				s.Added++
			case Removed:
				s.Removed++
			case Modified:
				s.Modified++
			default:
				s.Unchanged++
			}
			return true
		})
	}
	return s
}
