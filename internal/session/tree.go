package session

import (
	"log/slog"

	"quill/internal/domain/models/workspace"
)

// BuildTree nests a flat folder list into content tree nodes using a
// two-pass algorithm: create every node first, then connect children to
// parents. This keeps construction O(n) and independent of input order (a
// child folder may appear before its parent in the fetched list). A folder
// referencing a parent missing from the list stays out of the tree until the
// next refresh (logged at debug level, never guessed to root), the same
// policy AttachItems applies to items.
func BuildTree(folders []workspace.Folder, logger *slog.Logger) []*workspace.ContentTreeNode {
	nodeMap := make(map[string]*workspace.ContentTreeNode, len(folders))

	// First pass: wrap every folder in a node with empty child collections
	for _, folder := range folders {
		nodeMap[folder.ID] = &workspace.ContentTreeNode{
			Folder:    folder,
			Folders:   []*workspace.ContentTreeNode{},
			Documents: []workspace.Document{},
			Texts:     []workspace.UserText{},
		}
	}

	// Second pass: connect children to parents, collecting roots
	roots := make([]*workspace.ContentTreeNode, 0)
	for _, folder := range folders {
		node := nodeMap[folder.ID]
		if folder.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, exists := nodeMap[*folder.ParentID]
		if !exists {
			logger.Debug("folder references unknown parent, dropped from tree",
				"folder_id", folder.ID,
				"parent_id", *folder.ParentID,
			)
			continue
		}
		parent.Folders = append(parent.Folders, node)
	}

	return roots
}

// AttachItems places documents and texts into their owning folders. The pass
// is idempotent: every node's item collections are cleared first, so calling
// it repeatedly with fresh lists never duplicates entries. Items with a nil
// folder id belong at project root and are rendered from the flat lists;
// items referencing an unknown folder are dropped from folder placement until
// the next refresh (logged at debug level, never guessed to root).
func AttachItems(tree []*workspace.ContentTreeNode, documents []workspace.Document, texts []workspace.UserText, logger *slog.Logger) {
	nodeMap := make(map[string]*workspace.ContentTreeNode)
	walkTree(tree, func(node *workspace.ContentTreeNode) {
		node.Documents = node.Documents[:0]
		node.Texts = node.Texts[:0]
		nodeMap[node.Folder.ID] = node
	})

	for _, doc := range documents {
		if doc.FolderID == nil {
			continue
		}
		node, exists := nodeMap[*doc.FolderID]
		if !exists {
			logger.Debug("document references unknown folder, dropped from tree",
				"document_id", doc.ID,
				"folder_id", *doc.FolderID,
			)
			continue
		}
		node.Documents = append(node.Documents, doc)
	}

	for _, text := range texts {
		if text.FolderID == nil {
			continue
		}
		node, exists := nodeMap[*text.FolderID]
		if !exists {
			logger.Debug("text references unknown folder, dropped from tree",
				"text_id", text.ID,
				"folder_id", *text.FolderID,
			)
			continue
		}
		node.Texts = append(node.Texts, text)
	}
}

// FindFolderByID performs a depth-first search over the tree. The tree is
// acyclic by construction, so the walk terminates.
func FindFolderByID(tree []*workspace.ContentTreeNode, id string) *workspace.ContentTreeNode {
	for _, node := range tree {
		if node.Folder.ID == id {
			return node
		}
		if found := FindFolderByID(node.Folders, id); found != nil {
			return found
		}
	}
	return nil
}

func walkTree(nodes []*workspace.ContentTreeNode, visit func(*workspace.ContentTreeNode)) {
	for _, node := range nodes {
		visit(node)
		walkTree(node.Folders, visit)
	}
}
