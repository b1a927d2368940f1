package tag

import (
	"github.com/google/uuid"
)

// Tag is the charging credential presented by a user. VisualID is the
// human-facing identifier printed on the badge; ID is what the charge
// point authorizes against.
type Tag struct {
	ID       string
	VisualID string
	UserID   *uuid.UUID
	Active   bool
}
