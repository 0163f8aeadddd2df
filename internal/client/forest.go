package client

import (
	"catalog/loader/internal/domain"

	log "github.com/sirupsen/logrus"
)

// buildForest assembles the flat category listing into owned child lists.
// Children keep listing order; a category whose parent is not listed is dropped.
func buildForest(nodes []categoryListNode) *domain.CategoryForest {
	byID := make(map[string]*domain.CategoryNode, len(nodes))
	for _, n := range nodes {
		if _, seen := byID[n.ID]; seen {
			continue
		}
		byID[n.ID] = &domain.CategoryNode{ID: n.ID, Name: n.Name}
	}

	forest := &domain.CategoryForest{Roots: make([]*domain.CategoryNode, 0)}
	attached := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if attached[n.ID] {
			continue
		}
		attached[n.ID] = true
		node := byID[n.ID]

		if n.Parent == nil || n.Parent.ID == "" {
			forest.Roots = append(forest.Roots, node)
			continue
		}

		parent, ok := byID[n.Parent.ID]
		if !ok {
			log.Warnf("⚠️ Category %q (%s) has unknown parent %s, ignoring it", n.Name, n.ID, n.Parent.ID)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return forest
}
