package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategoryPath(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want CategoryPath
	}{
		{name: "three levels", raw: "Engine/Pistons/Rings", want: CategoryPath{"Engine", "Pistons", "Rings"}},
		{name: "single", raw: "Brakes", want: CategoryPath{"Brakes"}},
		{name: "trims segments", raw: " Engine / Pistons ", want: CategoryPath{"Engine", "Pistons"}},
		{name: "drops empty segments", raw: "Engine//Pistons/", want: CategoryPath{"Engine", "Pistons"}},
		{name: "only slashes", raw: "//", want: CategoryPath{}},
		{name: "empty", raw: "", want: CategoryPath{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCategoryPath(tt.raw))
		})
	}
}

func TestCategoryPathString(t *testing.T) {
	assert.Equal(t, "Engine/Pistons", ParseCategoryPath(" Engine /Pistons/").String())
}

func TestFindIsExactAndFirstMatch(t *testing.T) {
	first := &CategoryNode{ID: "1", Name: "Engine"}
	level := []*CategoryNode{
		{ID: "0", Name: "engine"},
		first,
		{ID: "2", Name: "Engine"},
	}

	assert.Same(t, first, Find(level, "Engine"))
	assert.Nil(t, Find(level, "Engine "))
	assert.Nil(t, Find(nil, "Engine"))
}

func TestForestSize(t *testing.T) {
	forest := &CategoryForest{Roots: []*CategoryNode{
		{ID: "1", Name: "Engine", Children: []*CategoryNode{
			{ID: "2", Name: "Pistons", Children: []*CategoryNode{{ID: "3", Name: "Rings"}}},
		}},
		{ID: "4", Name: "Brakes"},
	}}

	assert.Equal(t, 4, forest.Size())
	assert.Equal(t, 0, (&CategoryForest{}).Size())
}
