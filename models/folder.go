package models

// FolderType distinguishes the kinds of nodes in the vault folder tree.
type FolderType string

const (
	RootFolder         FolderType = "/"
	UserFolder         FolderType = "user_folder"
	SharedFolder       FolderType = "shared_folder"
	SharedFolderFolder FolderType = "shared_folder_folder"
)

// Folder is a node of the vault folder tree. Folders are owned by the
// session folder cache; other references to them are non-owning.
type Folder struct {
	UID       string     `json:"uid"`
	ParentUID string     `json:"parent_uid,omitempty"`
	Name      string     `json:"name"`
	Type      FolderType `json:"type"`

	// Subfolders lists child folder UIDs in display order.
	Subfolders []string `json:"subfolders,omitempty"`
}

// NewRootFolder returns the synthetic "My Vault" root node. The root node
// has no UID and is never stored in the folder cache.
func NewRootFolder() *Folder {
	return &Folder{Name: "My Vault", Type: RootFolder}
}
