package session

import (
	"quill/internal/domain/models/workspace"
)

// Navigation tracks the current folder with browser-history semantics: a new
// navigation pushes the current folder onto the back stack and clears the
// forward stack. A folder lives in exactly one of {current, back, forward} at
// any instant.
type Navigation struct {
	current *workspace.Folder
	back    []*workspace.Folder
	forward []*workspace.Folder
}

// Current returns the folder being viewed, nil at project root.
func (n *Navigation) Current() *workspace.Folder {
	return n.current
}

// SelectFolder enters a folder. Any current folder moves to the back stack;
// the forward stack is discarded.
func (n *Navigation) SelectFolder(f *workspace.Folder) {
	if n.current != nil {
		n.back = append(n.back, n.current)
	}
	n.current = f
	n.forward = nil
}

// GoBack pops the back stack into current. With an empty back stack it
// returns to project root; at root it is a no-op.
func (n *Navigation) GoBack() {
	if len(n.back) == 0 && n.current == nil {
		return
	}
	if n.current != nil {
		n.forward = append(n.forward, n.current)
	}
	if len(n.back) == 0 {
		n.current = nil
		return
	}
	n.current = n.back[len(n.back)-1]
	n.back = n.back[:len(n.back)-1]
}

// GoForward pops the forward stack into current. No-op when empty.
func (n *Navigation) GoForward() {
	if len(n.forward) == 0 {
		return
	}
	if n.current != nil {
		n.back = append(n.back, n.current)
	}
	n.current = n.forward[len(n.forward)-1]
	n.forward = n.forward[:len(n.forward)-1]
}

// GoHome returns to project root and clears both stacks.
func (n *Navigation) GoHome() {
	n.current = nil
	n.back = nil
	n.forward = nil
}

// CanGoBack reports whether GoBack would move: anywhere below project root
// there is always somewhere to go back to.
func (n *Navigation) CanGoBack() bool { return len(n.back) > 0 || n.current != nil }

// CanGoForward reports whether forward history exists.
func (n *Navigation) CanGoForward() bool { return len(n.forward) > 0 }

// BackDepth returns the back stack size.
func (n *Navigation) BackDepth() int { return len(n.back) }

// ForwardDepth returns the forward stack size.
func (n *Navigation) ForwardDepth() int { return len(n.forward) }
