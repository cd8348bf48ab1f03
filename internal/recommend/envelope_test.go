// internal/recommend/envelope_test.go
package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "bookrec/internal/common/errors"
	"bookrec/internal/models"
)

func TestValidateEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		env     *Envelope
		wantErr bool
	}{
		{
			name: "valid with recommendations",
			env: &Envelope{
				BasedOn:    "El Nombre del Viento",
				TotalFound: 1,
				Message:    "Because you read 'El Nombre del Viento' by Patrick Rothfuss",
				Recommendations: []models.Recommendation{
					{ID: "c1", Title: "La Musica del Silencio", Author: "Patrick Rothfuss"},
				},
			},
		},
		{
			name: "valid empty result",
			env: &Envelope{
				BasedOn:         "algo",
				TotalFound:      0,
				Message:         "No recommendations found for 'algo'",
				Recommendations: []models.Recommendation{},
			},
		},
		{
			name: "recommendation without id fails",
			env: &Envelope{
				BasedOn:    "algo",
				TotalFound: 1,
				Recommendations: []models.Recommendation{
					{Title: "Sin Identificador", Author: "Alguien"},
				},
			},
			wantErr: true,
		},
		{
			name: "recommendation without title fails",
			env: &Envelope{
				BasedOn:    "algo",
				TotalFound: 1,
				Recommendations: []models.Recommendation{
					{ID: "c1", Author: "Alguien"},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEnvelope(tt.env)
			if tt.wantErr {
				assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeEnvelopeInvalid))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
