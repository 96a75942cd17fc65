// Package annotator pairs every object key of a parsed JSON document with the
// jq-style path that selects it.
package annotator

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/mcncl/jqk/internal/formatter"
	"github.com/mcncl/jqk/internal/models"
)

// RootPath is the path of the document root when it has to be spelled out,
// e.g. as the base of a root array index: .[0]
const RootPath = "."

// Node is an element of the annotated tree. Implementations are *KeyedEntry,
// *TypedScalar and *Container.
type Node interface {
	isNode()
}

// KeyedEntry is an object member. Path is the full accessor path of the key.
type KeyedEntry struct {
	Path  string
	Value Node
}

// TypedScalar is a leaf value tagged with its JSON kind. Scalars carry no
// path of their own.
type TypedScalar struct {
	Kind  models.Kind
	Value models.Value
}

// ContainerKind tells arrays from objects.
type ContainerKind int

const (
	ArrayContainer ContainerKind = iota
	ObjectContainer
)

// Container is an array or an object. Children of an object are always
// *KeyedEntry.
type Container struct {
	Kind     ContainerKind
	Children []Node
}

func (*KeyedEntry) isNode()  {}
func (*TypedScalar) isNode() {}
func (*Container) isNode()   {}

// Options controls how paths are spelled.
type Options struct {
	// QuoteKeys renders keys that are not plain identifiers as ."some key"
	// so that every path is a valid jq accessor.
	QuoteKeys bool
}

// Annotator builds annotated trees.
type Annotator struct {
	opts Options
}

// NewAnnotator creates a new Annotator instance
func NewAnnotator(opts Options) *Annotator {
	return &Annotator{opts: opts}
}

// Annotate walks value from the document root.
func (a *Annotator) Annotate(value models.Value) Node {
	return a.annotate(value, "")
}

// AnnotateFrom walks value as if it were found at parentPath. An empty
// parentPath means the document root.
func (a *Annotator) AnnotateFrom(value models.Value, parentPath string) Node {
	return a.annotate(value, parentPath)
}

// Annotate walks value with default options.
func Annotate(value models.Value, parentPath string) Node {
	return NewAnnotator(Options{}).annotate(value, parentPath)
}

func (a *Annotator) annotate(value models.Value, parentPath string) Node {
	switch v := value.(type) {
	case models.String:
		return &TypedScalar{Kind: models.KindString, Value: v}
	case models.Array:
		base := parentPath
		if base == "" {
			base = RootPath
		}
		children := make([]Node, len(v))
		for i, elem := range v {
			children[i] = a.annotate(elem, base+"["+strconv.Itoa(i)+"]")
		}
		return &Container{Kind: ArrayContainer, Children: children}
	case *models.Object:
		children := make([]Node, v.Len())
		for i, m := range v.Members {
			childPath := parentPath + a.keySegment(m.Key)
			children[i] = &KeyedEntry{
				Path:  childPath,
				Value: a.annotate(m.Value, childPath),
			}
		}
		return &Container{Kind: ObjectContainer, Children: children}
	case models.Number:
		return &TypedScalar{Kind: models.KindNumber, Value: v}
	case models.Bool:
		return &TypedScalar{Kind: models.KindBool, Value: v}
	case models.Null:
		return &TypedScalar{Kind: models.KindNull, Value: v}
	case nil:
		return &TypedScalar{Kind: models.KindNull, Value: models.Null{}}
	default:
		panic(fmt.Sprintf("annotator: unhandled JSON value %T", value))
	}
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func (a *Annotator) keySegment(key string) string {
	if a.opts.QuoteKeys && !identifier.MatchString(key) {
		return "." + formatter.QuoteString(key)
	}
	return "." + key
}

// Paths returns every key path of the tree in document order.
func Paths(node Node) []string {
	var paths []string
	Walk(node, func(entry *KeyedEntry) {
		paths = append(paths, entry.Path)
	})
	return paths
}

// Walk calls fn for every KeyedEntry in document pre-order.
func Walk(node Node, fn func(*KeyedEntry)) {
	switch n := node.(type) {
	case *KeyedEntry:
		fn(n)
		Walk(n.Value, fn)
	case *Container:
		for _, child := range n.Children {
			Walk(child, fn)
		}
	case *TypedScalar:
	default:
		panic(fmt.Sprintf("annotator: unhandled node %T", node))
	}
}

// Stats counts the nodes of a tree.
type Stats struct {
	Keys       int
	Scalars    int
	Containers int
	MaxDepth   int
}

// Count returns node statistics for tree, used for debug logging.
func Count(node Node) Stats {
	var s Stats
	count(node, 0, &s)
	return s
}

func count(node Node, depth int, s *Stats) {
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
	switch n := node.(type) {
	case *KeyedEntry:
		s.Keys++
		count(n.Value, depth, s)
	case *Container:
		s.Containers++
		for _, child := range n.Children {
			count(child, depth+1, s)
		}
	case *TypedScalar:
		s.Scalars++
	default:
		panic(fmt.Sprintf("annotator: unhandled node %T", node))
	}
}
