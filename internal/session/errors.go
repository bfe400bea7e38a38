package session

import "errors"

// ErrFolderNotFound is returned when a folder UID is not in the folder cache.
var ErrFolderNotFound = errors.New("folder not found")
