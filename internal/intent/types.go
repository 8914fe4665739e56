// Package intent implements the Policy Store: the single reader of the
// workspace's declarative intent file and ignore file, and the glob
// scope matcher that authorizes (or refuses) tool calls against them.
//
// Unlike the teacher's change-pipeline package (a fixed stage flow
// driven by type/size), an Intent here carries no stage sequence at
// all — it is pure authorization state: an owned scope, constraints,
// and a status. This package follows the same design principles as
// the teacher's changes package:
// - SRP: types, store, scope matching, and status transitions in separate files
// - DIP: Store is an interface; hooks depend on the abstraction
// - No caching: every public read re-parses the file from disk (§4.A)
package intent

import "fmt"

// Status tracks the lifecycle of an Intent.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusBlocked    Status = "BLOCKED"
	StatusComplete   Status = "COMPLETE"
)

var validStatuses = map[Status]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusBlocked:    true,
	StatusComplete:   true,
}

// ValidateStatus returns an error if the status is not recognized.
func ValidateStatus(s Status) error {
	if !validStatuses[s] {
		return fmt.Errorf("invalid intent status %q: must be one of: PENDING, IN_PROGRESS, BLOCKED, COMPLETE", s)
	}
	return nil
}

// EntityType distinguishes an AI contributor from a human one.
type EntityType string

const (
	EntityAI    EntityType = "AI"
	EntityHuman EntityType = "HUMAN"
)

// Contributor records one entity that has worked under an Intent.
type Contributor struct {
	EntityType      EntityType `yaml:"entity_type" json:"entity_type"`
	ModelIdentifier string     `yaml:"model_identifier,omitempty" json:"model_identifier,omitempty"`
	SessionID       string     `yaml:"session_id,omitempty" json:"session_id,omitempty"`
	LastActive      string     `yaml:"last_active,omitempty" json:"last_active,omitempty"`
}

// Intent is the declarative policy record from active_intents.yaml.
type Intent struct {
	ID                 string        `yaml:"id" json:"id"`
	Name               string        `yaml:"name" json:"name"`
	Status             Status        `yaml:"status" json:"status"`
	OwnedScope         []string      `yaml:"owned_scope" json:"owned_scope"`
	Constraints        []string      `yaml:"constraints,omitempty" json:"constraints,omitempty"`
	AcceptanceCriteria []string      `yaml:"acceptance_criteria,omitempty" json:"acceptance_criteria,omitempty"`
	DependsOn          []string      `yaml:"depends_on,omitempty" json:"depends_on,omitempty"`
	Contributors       []Contributor `yaml:"contributors,omitempty" json:"contributors,omitempty"`
	CreatedAt          string        `yaml:"created_at" json:"created_at"`
	UpdatedAt          string        `yaml:"updated_at" json:"updated_at"`
	BlockedReason      string        `yaml:"blocked_reason,omitempty" json:"blocked_reason,omitempty"`
}

// intentsFile is the root YAML document shape for active_intents.yaml.
type intentsFile struct {
	ActiveIntents []Intent `yaml:"active_intents"`
}
