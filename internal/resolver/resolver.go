// Package resolver maps category paths onto the remote category tree,
// creating the categories that are missing.
//
// The forest passed to Resolve doubles as a write-through cache: every
// category created during a run is appended to its parent's children, so
// rows sharing a prefix create each new category exactly once. The forest
// is not safe for concurrent use.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"catalog/loader/internal/domain"
	"catalog/loader/internal/observability"

	log "github.com/sirupsen/logrus"
)

// ErrEmptyPath is returned when Resolve is called without any path segment.
var ErrEmptyPath = errors.New("empty category path")

// CategoryCreator creates one remote category. parentID is empty for top-level categories.
type CategoryCreator interface {
	CreateCategory(ctx context.Context, name, parentID string) (string, error)
}

type Resolver struct {
	creator CategoryCreator
	created int
}

func New(creator CategoryCreator) *Resolver {
	return &Resolver{creator: creator}
}

// Created returns how many categories this resolver has created.
func (r *Resolver) Created() int {
	return r.created
}

// Resolve returns the id of the deepest category named by path, creating every
// missing segment under the deepest existing match. Existing categories are
// never renamed, moved or removed.
func (r *Resolver) Resolve(ctx context.Context, path domain.CategoryPath, forest *domain.CategoryForest) (string, error) {
	if len(path) == 0 {
		return "", ErrEmptyPath
	}
	return r.resolve(ctx, path, &forest.Roots, "")
}

// resolve descends one segment per call. level points at the candidate list
// (the forest roots or a node's children) so appends are visible to the caller.
func (r *Resolver) resolve(ctx context.Context, path domain.CategoryPath, level *[]*domain.CategoryNode, parentID string) (string, error) {
	if len(path) == 0 {
		return parentID, nil
	}

	name := path[0]
	if node := domain.Find(*level, name); node != nil {
		return r.resolve(ctx, path[1:], &node.Children, node.ID)
	}

	log.Infof("➕ No category %q under %s, creating it", name, describeParent(parentID))
	id, err := r.creator.CreateCategory(ctx, name, parentID)
	if err != nil {
		return "", fmt.Errorf("failed to create category %q: %w", name, err)
	}
	r.created++
	observability.CategoriesCreated.Inc()

	node := &domain.CategoryNode{ID: id, Name: name}
	*level = append(*level, node)

	return r.resolve(ctx, path[1:], &node.Children, id)
}

func describeParent(parentID string) string {
	if parentID == "" {
		return "the root"
	}
	return "parent " + parentID
}
