package workspace

// ContentTreeNode wraps a folder with its nested children. The tree is
// derived state: it is rebuilt wholesale from the flat folder/document/text
// lists on every refresh and never partially patched.
type ContentTreeNode struct {
	Folder     Folder             `json:"folder"`
	Folders    []*ContentTreeNode `json:"folders"` // Pointers for proper nesting
	Documents  []Document         `json:"documents"`
	Texts      []UserText         `json:"texts"`
	IsExpanded bool               `json:"is_expanded"`
}
