package models

import (
	"encoding/json"

	"github.com/uptrace/bun"
)

// QualificationPointTemplate stores a series-specific position→points map
// as JSON. It is parsed into a typed table at load time, not per lookup.
type QualificationPointTemplate struct {
	bun.BaseModel `bun:"table:qualification_point_templates,alias:qt"`

	TemplateID int             `bun:"template_id,pk,autoincrement" json:"templateID"`
	Name       string          `bun:"name,notnull,unique" json:"name"`
	Mapping    json.RawMessage `bun:"mapping,notnull,type:jsonb" json:"mapping"`
}
