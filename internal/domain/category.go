package domain

import "strings"

// CategoryNode is one category of the remote tree as known to the current run.
// Children are owned by their parent; there are no back-pointers.
type CategoryNode struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Children []*CategoryNode `json:"children,omitempty"`
}

// CategoryForest holds the top-level categories of the remote store.
type CategoryForest struct {
	Roots []*CategoryNode `json:"roots"`
}

// Find returns the first node with the given name, or nil.
func Find(level []*CategoryNode, name string) *CategoryNode {
	for _, node := range level {
		if node.Name == name {
			return node
		}
	}
	return nil
}

// Size returns the number of nodes in the forest.
func (f *CategoryForest) Size() int {
	return countNodes(f.Roots)
}

func countNodes(level []*CategoryNode) int {
	n := len(level)
	for _, node := range level {
		n += countNodes(node.Children)
	}
	return n
}

// CategoryPath is the ordered list of category names from shallowest to deepest.
type CategoryPath []string

// ParseCategoryPath splits a raw "A/B/C" path. Segments are trimmed and empty
// segments are dropped, so "Engine//Pistons/" yields [Engine Pistons].
func ParseCategoryPath(raw string) CategoryPath {
	parts := strings.Split(raw, "/")
	path := make(CategoryPath, 0, len(parts))
	for _, part := range parts {
		if segment := strings.TrimSpace(part); segment != "" {
			path = append(path, segment)
		}
	}
	return path
}

func (p CategoryPath) String() string {
	return strings.Join(p, "/")
}
