package resolver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"catalog/loader/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createCall struct {
	Name     string
	ParentID string
}

type fakeCreator struct {
	calls  []createCall
	failOn string
}

func (f *fakeCreator) CreateCategory(_ context.Context, name, parentID string) (string, error) {
	f.calls = append(f.calls, createCall{Name: name, ParentID: parentID})
	if name == f.failOn {
		return "", errors.New("rejected")
	}
	return fmt.Sprintf("new-%d", len(f.calls)), nil
}

func engineForest() *domain.CategoryForest {
	return &domain.CategoryForest{
		Roots: []*domain.CategoryNode{
			{
				ID:   "engine",
				Name: "Engine",
				Children: []*domain.CategoryNode{
					{ID: "pistons", Name: "Pistons"},
				},
			},
			{ID: "brakes", Name: "Brakes"},
		},
	}
}

func TestResolveExistingPath(t *testing.T) {
	creator := &fakeCreator{}
	r := New(creator)

	id, err := r.Resolve(context.Background(), domain.CategoryPath{"Engine", "Pistons"}, engineForest())
	require.NoError(t, err)
	assert.Equal(t, "pistons", id)
	assert.Empty(t, creator.calls)
	assert.Equal(t, 0, r.Created())
}

func TestResolveCreatesUnderDeepestMatch(t *testing.T) {
	creator := &fakeCreator{}
	r := New(creator)
	forest := engineForest()

	id, err := r.Resolve(context.Background(), domain.CategoryPath{"Engine", "Pistons", "Rings"}, forest)
	require.NoError(t, err)

	assert.Equal(t, []createCall{{Name: "Rings", ParentID: "pistons"}}, creator.calls)
	assert.Equal(t, "new-1", id)

	pistons := forest.Roots[0].Children[0]
	require.Len(t, pistons.Children, 1)
	assert.Equal(t, "Rings", pistons.Children[0].Name)
	assert.Equal(t, "new-1", pistons.Children[0].ID)
}

func TestResolveCreatesSiblingWithoutTouchingOthers(t *testing.T) {
	creator := &fakeCreator{}
	r := New(creator)
	forest := engineForest()

	id, err := r.Resolve(context.Background(), domain.CategoryPath{"Engine", "Turbo"}, forest)
	require.NoError(t, err)

	assert.Equal(t, []createCall{{Name: "Turbo", ParentID: "engine"}}, creator.calls)
	assert.Equal(t, "new-1", id)

	engine := forest.Roots[0]
	require.Len(t, engine.Children, 2)
	assert.Equal(t, "Pistons", engine.Children[0].Name)
	assert.Empty(t, engine.Children[0].Children)
	assert.Equal(t, "Turbo", engine.Children[1].Name)
}

func TestResolveSharedPrefixCreatesOnce(t *testing.T) {
	creator := &fakeCreator{}
	r := New(creator)
	forest := &domain.CategoryForest{}

	pistonsID, err := r.Resolve(context.Background(), domain.CategoryPath{"Engine", "Pistons"}, forest)
	require.NoError(t, err)
	gasketsID, err := r.Resolve(context.Background(), domain.CategoryPath{"Engine", "Gaskets"}, forest)
	require.NoError(t, err)
	againID, err := r.Resolve(context.Background(), domain.CategoryPath{"Engine", "Pistons"}, forest)
	require.NoError(t, err)

	assert.Equal(t, []createCall{
		{Name: "Engine", ParentID: ""},
		{Name: "Pistons", ParentID: "new-1"},
		{Name: "Gaskets", ParentID: "new-1"},
	}, creator.calls)
	assert.Equal(t, pistonsID, againID)
	assert.NotEqual(t, pistonsID, gasketsID)
	assert.Equal(t, 3, r.Created())

	require.Len(t, forest.Roots, 1)
	require.Len(t, forest.Roots[0].Children, 2)
	assert.Equal(t, 3, forest.Size())
}

func TestResolveIsCaseSensitive(t *testing.T) {
	creator := &fakeCreator{}
	r := New(creator)
	forest := engineForest()

	_, err := r.Resolve(context.Background(), domain.CategoryPath{"engine"}, forest)
	require.NoError(t, err)

	assert.Equal(t, []createCall{{Name: "engine", ParentID: ""}}, creator.calls)
	assert.Len(t, forest.Roots, 3)
}

func TestResolveEmptyPath(t *testing.T) {
	r := New(&fakeCreator{})
	_, err := r.Resolve(context.Background(), nil, engineForest())
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestResolveCreationFailureKeepsCreatedAncestors(t *testing.T) {
	creator := &fakeCreator{failOn: "Valves"}
	r := New(creator)
	forest := &domain.CategoryForest{}

	_, err := r.Resolve(context.Background(), domain.CategoryPath{"Head", "Valves"}, forest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Valves"`)

	require.Len(t, forest.Roots, 1)
	assert.Equal(t, "Head", forest.Roots[0].Name)
	assert.Empty(t, forest.Roots[0].Children)

	_, err = r.Resolve(context.Background(), domain.CategoryPath{"Head"}, forest)
	require.NoError(t, err)
	assert.Len(t, creator.calls, 2)
}
