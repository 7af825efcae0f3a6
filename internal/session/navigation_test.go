package session

import (
	"testing"

	"quill/internal/domain/models/workspace"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigation_HistoryRoundTrip(t *testing.T) {
	a := &workspace.Folder{ID: "a", Name: "A"}
	b := &workspace.Folder{ID: "b", Name: "B"}
	var nav Navigation

	// Root → A → B
	nav.SelectFolder(a)
	nav.SelectFolder(b)
	require.Equal(t, b, nav.Current())
	assert.Equal(t, 1, nav.BackDepth())

	// Back to A, back to Root.
	nav.GoBack()
	assert.Equal(t, a, nav.Current())
	nav.GoBack()
	assert.Nil(t, nav.Current(), "second back must reach project root")
	assert.Equal(t, 2, nav.ForwardDepth())

	// Forward twice returns to B.
	nav.GoForward()
	assert.Equal(t, a, nav.Current())
	nav.GoForward()
	assert.Equal(t, b, nav.Current())
	assert.False(t, nav.CanGoForward())
}

func TestNavigation_SelectFolderClearsForward(t *testing.T) {
	a := &workspace.Folder{ID: "a"}
	b := &workspace.Folder{ID: "b"}
	c := &workspace.Folder{ID: "c"}
	var nav Navigation

	nav.SelectFolder(a)
	nav.SelectFolder(b)
	nav.GoBack()
	require.True(t, nav.CanGoForward())

	nav.SelectFolder(c)
	assert.False(t, nav.CanGoForward(), "new navigation discards forward history")
	assert.Equal(t, c, nav.Current())

	nav.GoBack()
	assert.Equal(t, a, nav.Current())
}

func TestNavigation_NoOpsAtBoundaries(t *testing.T) {
	var nav Navigation

	nav.GoBack()
	nav.GoForward()
	assert.Nil(t, nav.Current())
	assert.False(t, nav.CanGoBack())
	assert.False(t, nav.CanGoForward())

	a := &workspace.Folder{ID: "a"}
	nav.SelectFolder(a)
	nav.GoForward() // nothing to go forward to
	assert.Equal(t, a, nav.Current())
	assert.True(t, nav.CanGoBack(), "below root there is always a way back")
}

func TestNavigation_GoHomeClearsStacks(t *testing.T) {
	a := &workspace.Folder{ID: "a"}
	b := &workspace.Folder{ID: "b"}
	var nav Navigation

	nav.SelectFolder(a)
	nav.SelectFolder(b)
	nav.GoBack()
	nav.GoHome()

	assert.Nil(t, nav.Current())
	assert.False(t, nav.CanGoBack())
	assert.False(t, nav.CanGoForward())
}
