package points

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ECABBIKE/TheHUB-sub012/models"
)

func tenPositionScale() *ScaleTable {
	values := make([]models.PointScaleValue, 0, 10)
	for pos := 1; pos <= 10; pos++ {
		values = append(values, models.PointScaleValue{
			Position: pos,
			Points:   float64(50 - (pos-1)*5),
		})
	}
	return NewScaleTable(values)
}

func TestScaleTablePointsFor(t *testing.T) {
	scale := tenPositionScale()

	tests := []struct {
		name     string
		position int
		status   string
		want     float64
	}{
		{"winner", 1, models.StatusFinished, 50},
		{"mid field", 5, models.StatusFinished, 30},
		{"last configured position", 10, models.StatusFinished, 5},
		{"beyond scale saturates to last value", 15, models.StatusFinished, 5},
		{"far beyond scale", 500, models.StatusFinished, 5},
		{"dnf scores zero regardless of position", 1, models.StatusDNF, 0},
		{"dns scores zero", 2, models.StatusDNS, 0},
		{"dq scores zero", 3, models.StatusDQ, 0},
		{"position zero", 0, models.StatusFinished, 0},
		{"negative position", -4, models.StatusFinished, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scale.PointsFor(tt.position, tt.status))
		})
	}
}

func TestScaleTableGaps(t *testing.T) {
	// Only positions 1 and 5 configured: unconfigured positions, whether
	// an interior gap or beyond the scale, take the last configured value.
	scale := NewScaleTable([]models.PointScaleValue{
		{Position: 1, Points: 25},
		{Position: 5, Points: 10},
	})

	assert.Equal(t, 25.0, scale.PointsFor(1, models.StatusFinished))
	assert.Equal(t, 10.0, scale.PointsFor(3, models.StatusFinished))
	assert.Equal(t, 10.0, scale.PointsFor(5, models.StatusFinished))
	assert.Equal(t, 10.0, scale.PointsFor(9, models.StatusFinished))
}

func TestScaleTableEmpty(t *testing.T) {
	empty := NewScaleTable(nil)
	assert.True(t, empty.Empty())
	assert.Equal(t, 0.0, empty.PointsFor(1, models.StatusFinished))

	var nilTable *ScaleTable
	assert.True(t, nilTable.Empty())
	assert.Equal(t, 0.0, nilTable.PointsFor(1, models.StatusFinished))
}

func TestScaleTableSkipsInvalidPositions(t *testing.T) {
	scale := NewScaleTable([]models.PointScaleValue{
		{Position: 0, Points: 99},
		{Position: 1, Points: 20},
	})
	assert.Equal(t, 20.0, scale.PointsFor(1, models.StatusFinished))
	assert.Equal(t, 20.0, scale.PointsFor(2, models.StatusFinished))
}
