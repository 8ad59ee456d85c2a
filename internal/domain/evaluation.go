package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultGroupID is assigned to evaluations created without an explicit
// group. Runs sharing a group id are rendered side by side in comparison
// views.
const DefaultGroupID = "default"

// Evaluation is a single scoring run over a set of datapoints.
type Evaluation struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProjectID uuid.UUID `json:"projectId" db:"project_id"`
	GroupID   string    `json:"groupId" db:"group_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
