package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Status is a defect lifecycle state as defined by the tracker backend
type Status string

const (
	StatusNew        Status = "NOVO"
	StatusOpen       Status = "ABERTO"
	StatusInProgress Status = "EM_ANDAMENTO"
	StatusReopened   Status = "REABERTO"
	StatusInvalid    Status = "INVALIDO"
	StatusResolved   Status = "RESOLVIDO"
	StatusClosed     Status = "FECHADO"
)

// DefaultTerminalStatuses are the states after which a defect is no longer
// actionable inside its own project
var DefaultTerminalStatuses = []Status{StatusResolved, StatusClosed}

// NormalizeStatus maps free-form status strings ("em andamento", "Resolvido")
// onto the backend's constant form
func NormalizeStatus(s string) Status {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return Status(s)
}

// Defect is an existing defect evaluated as a duplicate candidate
type Defect struct {
	ID          string `json:"id" yaml:"id"`
	ProjectID   string `json:"projectId" yaml:"project_id"`
	Summary     string `json:"summary" yaml:"summary"`
	Description string `json:"description" yaml:"description"`
	Status      Status `json:"status" yaml:"status"`
}

// UUID generates a deterministic UUID based on project and defect ID
func (d *Defect) UUID() string {
	return DefectUUID(d.ProjectID, d.ID)
}

// TextHash returns a SHA256 hash of summary and description for change detection
func (d *Defect) TextHash() string {
	h := sha256.Sum256([]byte(d.Summary + "\x00" + d.Description))
	return hex.EncodeToString(h[:])
}

// DefectUUID generates a deterministic UUID from defect identity
func DefectUUID(projectID, id string) string {
	data := fmt.Sprintf("%s#%s", projectID, id)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(data)).String()
}

// Draft is a defect report that has not been submitted yet
type Draft struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
	ProjectID   string `json:"projectId"`
}

// IsBlank reports whether neither summary nor description carry any text
func (d Draft) IsBlank() bool {
	return strings.TrimSpace(d.Summary) == "" && strings.TrimSpace(d.Description) == ""
}
