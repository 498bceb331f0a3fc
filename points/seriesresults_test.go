package points

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ECABBIKE/TheHUB-sub012/models"
)

func TestSeriesResultChanged(t *testing.T) {
	tmplA, tmplB := 3, 4
	base := models.SeriesResult{
		SeriesID: 1, EventID: 2, RiderID: 5, ClassID: 7,
		Position: 1, Status: models.StatusFinished, Points: 25,
		TemplateID: &tmplA,
	}

	tests := []struct {
		name   string
		mutate func(r *models.SeriesResult)
		want   bool
	}{
		{"identical", func(r *models.SeriesResult) {}, false},
		{"points differ", func(r *models.SeriesResult) { r.Points = 20 }, true},
		{"position differs", func(r *models.SeriesResult) { r.Position = 2 }, true},
		{"status differs", func(r *models.SeriesResult) { r.Status = models.StatusDNF }, true},
		// A template swap must trigger an update even when the new
		// template happens to award the same points.
		{"template differs, points equal", func(r *models.SeriesResult) { r.TemplateID = &tmplB }, true},
		{"template removed", func(r *models.SeriesResult) { r.TemplateID = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := base
			tt.mutate(&want)
			assert.Equal(t, tt.want, seriesResultChanged(base, want))
		})
	}
}

func TestSeriesResultChangedEqualTemplatePointers(t *testing.T) {
	// Equal template IDs behind distinct pointers are not a change.
	a, b := 9, 9
	old := models.SeriesResult{Points: 10, Position: 3, Status: models.StatusFinished, TemplateID: &a}
	want := old
	want.TemplateID = &b
	assert.False(t, seriesResultChanged(old, want))

	old.TemplateID = nil
	want.TemplateID = nil
	assert.False(t, seriesResultChanged(old, want))
}
