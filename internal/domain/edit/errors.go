package edit

import "errors"

// ErrNotEditing indicates a commit for an entity that has no open session.
var ErrNotEditing = errors.New("entity is not being edited")
