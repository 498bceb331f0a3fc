package points

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ECABBIKE/TheHUB-sub012/models"
)

// Template is a qualification point template parsed into a typed
// position→points table. Lookups saturate like scale tables.
type Template struct {
	TemplateID int
	table      *ScaleTable
}

// ParseTemplate decodes the JSON position→points mapping of a
// qualification template. Keys must be positive integer positions.
func ParseTemplate(t *models.QualificationPointTemplate) (*Template, error) {
	var raw map[string]float64
	if err := json.Unmarshal(t.Mapping, &raw); err != nil {
		return nil, fmt.Errorf("template %d: %w", t.TemplateID, err)
	}

	values := make([]models.PointScaleValue, 0, len(raw))
	for key, pts := range raw {
		pos, err := strconv.Atoi(key)
		if err != nil || pos < 1 {
			return nil, fmt.Errorf("template %d: bad position %q", t.TemplateID, key)
		}
		values = append(values, models.PointScaleValue{Position: pos, Points: pts})
	}

	return &Template{TemplateID: t.TemplateID, table: NewScaleTable(values)}, nil
}

// PointsFor returns the template's point value for a finishing position
// and status, zero for non-finishers.
func (t *Template) PointsFor(position int, status string) float64 {
	if t == nil {
		return 0
	}
	return t.table.PointsFor(position, status)
}
