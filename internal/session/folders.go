package session

import (
	"fmt"

	"github.com/MKhiriev/keeper-commander/models"
)

// SetCurrentFolder moves the current folder pointer. An empty uid selects the
// root folder. The folder must already be in FolderCache.
func (st *Store) SetCurrentFolder(uid string) error {
	if uid == "" {
		if st.RootFolder == nil {
			st.RootFolder = models.NewRootFolder()
		}
		st.CurrentFolder = st.RootFolder
		return nil
	}

	f, ok := st.FolderCache[uid]
	if !ok {
		return fmt.Errorf("%w: %s", ErrFolderNotFound, uid)
	}

	st.CurrentFolder = f
	return nil
}

// CurrentFolderUID returns the UID of the current folder, or "" for the root.
func (st *Store) CurrentFolderUID() string {
	if st.CurrentFolder == nil {
		return ""
	}
	return st.CurrentFolder.UID
}
