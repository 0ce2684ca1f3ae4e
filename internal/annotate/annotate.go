// Package annotate renders the comparison between an original and an
// optimized résumé as a tree of labeled nodes, each classified as added,
// removed, modified or unchanged according to the change-set produced by the
// external structural-diff tool.
//
// Classification is decided by path lookup only. Subtrees are never compared
// for equality: the change-set is authoritative. Reordering array items
// without editing them is reported exactly as the producer reports it.
//
// A container whose type changes (an object becoming an array, say) takes the
// shape of its primary side: only that side's children become nodes. The
// other side's content stays reachable through the node's Old or New value.
package annotate

import (
	"github.com/jonathan/resume-diff/internal/changeset"
	"github.com/jonathan/resume-diff/internal/diffpath"
	"github.com/jonathan/resume-diff/internal/resume"
)

// DefaultMaxDepth bounds recursion. Real résumés nest a handful of levels.
const DefaultMaxDepth = 64

// DefaultReservedKeys are type-marker keys some serializers add to objects;
// they are never shown as sections.
var DefaultReservedKeys = []string{"__type__", "__typename"}

// Options configures an Annotator.
type Options struct {
	// ReservedKeys are top-level keys excluded from Sections.
	ReservedKeys []string
	// MaxDepth is the deepest level rendered; deeper subtrees become
	// KindTruncated leaves. Zero means DefaultMaxDepth.
	MaxDepth int
	// ChangedOnly restricts Annotate to the sections the change-set touches.
	ChangedOnly bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ReservedKeys: append([]string(nil), DefaultReservedKeys...),
		MaxDepth:     DefaultMaxDepth,
	}
}

// Annotator applies one normalized change-set to résumé values. It holds no
// mutable state and may be shared between goroutines.
type Annotator struct {
	changes     *changeset.Index
	reserved    map[string]bool
	maxDepth    int
	changedOnly bool
}

// New returns an Annotator for changes. A nil index classifies everything
// as unchanged.
func New(changes *changeset.Index, opts Options) *Annotator {
	a := &Annotator{
		changes:     changes,
		reserved:    make(map[string]bool, len(opts.ReservedKeys)),
		maxDepth:    opts.MaxDepth,
		changedOnly: opts.ChangedOnly,
	}
	for _, k := range opts.ReservedKeys {
		a.reserved[k] = true
	}
	if a.maxDepth <= 0 {
		a.maxDepth = DefaultMaxDepth
	}
	return a
}

// Classify returns the classification recorded for path: modified for type
// and value changes, then added, then removed, otherwise unchanged.
func Classify(path diffpath.Path, changes *changeset.Index) Classification {
	c, ok := changes.Lookup(path)
	if !ok {
		return Unchanged
	}
	return classificationOf(c)
}

// ClassifyString is Classify for a producer path string. Paths that do not
// parse are unchanged.
func ClassifyString(path string, changes *changeset.Index) Classification {
	p, err := diffpath.Parse(path)
	if err != nil {
		return Unchanged
	}
	return Classify(p, changes)
}

// Classify returns the classification of path in the annotator's change-set.
func (a *Annotator) Classify(path diffpath.Path) Classification {
	return Classify(path, a.changes)
}

// Sections returns the displayable top-level keys of doc in document order,
// skipping reserved keys and keys holding callables. A doc that is not an
// object has no sections.
func (a *Annotator) Sections(doc resume.Value) []string {
	m, ok := doc.(resume.Mapping)
	if !ok {
		return nil
	}
	var sections []string
	for _, e := range m.Entries() {
		if a.reserved[e.Key] {
			continue
		}
		if _, callable := e.Value.(resume.Callable); callable {
			continue
		}
		sections = append(sections, e.Key)
	}
	return sections
}

// ChangedSections returns the top-level keys referenced by the change-set,
// in the order they first appear.
func (a *Annotator) ChangedSections() []string {
	seen := make(map[string]bool)
	var sections []string
	for _, p := range a.changes.Paths() {
		section, ok := p.Section()
		if !ok || seen[section] || a.reserved[section] {
			continue
		}
		seen[section] = true
		sections = append(sections, section)
	}
	return sections
}

// Render annotates a single value located at path. Every node is classified
// by looking up its own path; descendants of an added or removed node share
// its classification.
func (a *Annotator) Render(v resume.Value, path diffpath.Path) *Node {
	w := walker{a: a}
	key, label := segmentLabel(path)
	return w.build(slot{opt: v, hasOpt: v != nil}, path, key, label, path.Depth(), Unchanged)
}

// Annotate returns one tree per section of the two documents: the sections
// of original in order, followed by sections that only optimized has. Inside
// each section the union of keys and indexes of both sides is visited, and
// nodes present on only one side are classified added or removed when the
// change-set says nothing more specific. A missing or null document yields
// no trees.
func (a *Annotator) Annotate(original, optimized resume.Value) []*Node {
	if resume.IsNull(original) || resume.IsNull(optimized) {
		return nil
	}

	sections := a.Sections(original)
	seen := make(map[string]bool, len(sections))
	for _, s := range sections {
		seen[s] = true
	}
	for _, s := range a.Sections(optimized) {
		if !seen[s] {
			seen[s] = true
			sections = append(sections, s)
		}
	}

	if a.changedOnly {
		changed := make(map[string]bool)
		for _, s := range a.ChangedSections() {
			changed[s] = true
		}
		filtered := sections[:0]
		for _, s := range sections {
			if changed[s] {
				filtered = append(filtered, s)
			}
		}
		sections = filtered
	}

	origDoc, _ := original.(resume.Mapping)
	optDoc, _ := optimized.(resume.Mapping)
	w := walker{a: a, structural: true}

	nodes := make([]*Node, 0, len(sections))
	for _, section := range sections {
		orig, hasOrig := origDoc.Get(section)
		opt, hasOpt := optDoc.Get(section)
		s := slot{orig: orig, opt: opt, hasOrig: hasOrig, hasOpt: hasOpt}
		nodes = append(nodes, w.build(s, diffpath.Root().Key(section), section, Label(section), 1, Unchanged))
	}
	return nodes
}

// slot holds the values found at one path on each side.
type slot struct {
	orig, opt       resume.Value
	hasOrig, hasOpt bool
}

// primary picks the value whose shape the node takes: the optimized side,
// or the original side for removed nodes, falling back to whichever side is
// not null.
func (s slot) primary(class Classification) resume.Value {
	first, second := s.opt, s.orig
	if class == Removed {
		first, second = s.orig, s.opt
	}
	switch {
	case !resume.IsNull(first):
		return first
	case !resume.IsNull(second):
		return second
	case first != nil:
		return first
	default:
		return second
	}
}

type walker struct {
	a *Annotator
	// structural classifies one-sided nodes as added or removed.
	structural bool
}

func (w walker) classify(s slot, path diffpath.Path, inherited Classification) (Classification, changeset.Change) {
	if c, ok := w.a.changes.Lookup(path); ok {
		return classificationOf(c), c
	}
	switch {
	case inherited != Unchanged:
		return inherited, nil
	case w.structural && s.hasOrig && !s.hasOpt:
		return Removed, nil
	case w.structural && s.hasOpt && !s.hasOrig:
		return Added, nil
	default:
		return Unchanged, nil
	}
}

func (w walker) build(s slot, path diffpath.Path, key, label string, depth int, inherited Classification) *Node {
	class, change := w.classify(s, path, inherited)
	node := &Node{
		Path:           path,
		PathText:       path.String(),
		Key:            key,
		Label:          label,
		Classification: class,
	}
	attachChange(node, change, s)

	if depth > w.a.maxDepth {
		node.Kind = KindTruncated
		node.Text = "..."
		return node
	}

	childInherited := inherited
	if class == Added || class == Removed {
		childInherited = class
	}

	switch v := s.primary(class).(type) {
	case resume.Mapping:
		origMap, _ := s.orig.(resume.Mapping)
		optMap, _ := s.opt.(resume.Mapping)
		keys := unionKeys(origMap, optMap)
		if len(keys) == 0 {
			setEmpty(node, v)
			return node
		}
		node.Kind = KindMapping
		for _, k := range keys {
			orig, hasOrig := origMap.Get(k)
			opt, hasOpt := optMap.Get(k)
			child := slot{orig: orig, opt: opt, hasOrig: hasOrig, hasOpt: hasOpt}
			node.Children = append(node.Children, w.build(child, path.Key(k), k, Label(k), depth+1, childInherited))
		}
	case resume.Sequence:
		origSeq, _ := s.orig.(resume.Sequence)
		optSeq, _ := s.opt.(resume.Sequence)
		n := max(origSeq.Len(), optSeq.Len())
		if n == 0 {
			setEmpty(node, v)
			return node
		}
		node.Kind = KindSequence
		for i := 0; i < n; i++ {
			var child slot
			if i < origSeq.Len() {
				child.orig, child.hasOrig = origSeq.Items[i], true
			}
			if i < optSeq.Len() {
				child.opt, child.hasOpt = optSeq.Items[i], true
			}
			node.Children = append(node.Children, w.build(child, path.Index(i), "", IndexLabel(i), depth+1, childInherited))
		}
	case resume.Primitive:
		if v.Kind == resume.KindNull {
			setEmpty(node, v)
			return node
		}
		node.Kind = KindLeaf
		node.Value = v
		node.Text = resume.Display(v)
	case nil:
		setEmpty(node, nil)
	default:
		node.Kind = KindFallback
		node.Value = v
		node.Text = resume.Display(v)
	}
	return node
}

func setEmpty(node *Node, v resume.Value) {
	node.Kind = KindEmpty
	node.Value = v
	node.Text = "(empty)"
}

// attachChange copies the before/after detail of a change onto node, taking
// values from the documents when the change-set omitted them.
func attachChange(node *Node, change changeset.Change, s slot) {
	switch c := change.(type) {
	case changeset.Modified:
		node.Old = valueOr(c.Old, s.orig)
		node.New = valueOr(c.New, s.opt)
	case changeset.TypeChanged:
		node.Old = valueOr(c.Old, s.orig)
		node.New = valueOr(c.New, s.opt)
		node.OldType = c.OldType
		node.NewType = c.NewType
	case changeset.Added:
		node.New = valueOr(c.Value, s.opt)
	case changeset.Removed:
		node.Old = valueOr(c.Value, s.orig)
	}
}

func valueOr(v, fallback resume.Value) resume.Value {
	if v != nil {
		return v
	}
	return fallback
}

// unionKeys returns the keys of orig followed by keys only opt has.
func unionKeys(orig, opt resume.Mapping) []string {
	keys := orig.Keys()
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		seen[k] = true
	}
	for _, k := range opt.Keys() {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	return keys
}
