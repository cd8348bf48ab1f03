// internal/recommend/envelope.go
package recommend

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "bookrec/internal/common/errors"
	"bookrec/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// Envelope is the response returned to the entry-point layer. Scores never
// appear here: they are an internal annotation stripped before this point.
type Envelope struct {
	BasedOn         string                  `json:"based_on"`
	TotalFound      int                     `json:"total_found"`
	Message         string                  `json:"message,omitempty"`
	Recommendations []models.Recommendation `json:"recommendations"`
}

// envelopeSchema pins the outward contract. additionalProperties=false on the
// recommendation items guarantees no internal field (score included) leaks.
const envelopeSchema = `{
	"type": "object",
	"required": ["based_on", "total_found", "recommendations"],
	"properties": {
		"based_on": {"type": "string"},
		"total_found": {"type": "integer", "minimum": 0},
		"message": {"type": "string"},
		"recommendations": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "title", "author"],
				"additionalProperties": false,
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"title": {"type": "string", "minLength": 1},
					"author": {"type": "string"},
					"description": {"type": "string"},
					"image": {"type": ["string", "null"]},
					"rating": {"type": "number", "minimum": 0},
					"ratingsCount": {"type": "integer", "minimum": 0},
					"publishedYear": {"type": "string"},
					"categories": {
						"type": ["array", "null"],
						"items": {"type": "string"}
					}
				}
			}
		}
	}
}`

// ValidateEnvelope checks the envelope against the embedded schema before it
// crosses the process boundary.
func ValidateEnvelope(env *Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return apperrors.NewEnvelopeInvalidError(err.Error())
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(envelopeSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return apperrors.NewEnvelopeInvalidError(err.Error())
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return apperrors.NewEnvelopeInvalidError(strings.Join(details, "; "))
	}
	return nil
}
