// internal/recommend/filter_test.go
package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookrec/internal/common/config"
	"bookrec/internal/models"
	"bookrec/internal/textutil"
)

func TestFilter_Apply(t *testing.T) {
	filter := NewFilter(config.Default().Pipeline)
	seed := &models.SeedBook{Title: "El Nombre del Viento"}

	pool := []models.Candidate{
		{ID: "keep", Title: "La Musica del Silencio", Language: "es"},
		{ID: "wrong-lang", Title: "The Name of the Wind", Language: "en"},
		{ID: "", Title: "Sin Identificador", Language: "es"},
		{ID: "no-title", Title: "", Language: "es"},
		{ID: "self", Title: "El Nombre del Viento", Language: "es"},
		{ID: "self-accented", Title: "EL NOMBRE DEL VIENTO", Language: "es"},
		{ID: "keep", Title: "Duplicado", Language: "es"},
	}

	out := filter.Apply(pool, seed, textutil.Fold("El Nombre del Viento"), true)

	require.Len(t, out, 1)
	assert.Equal(t, "keep", out[0].ID)
	assert.Equal(t, "La Musica del Silencio", out[0].Title)
}

func TestFilter_Apply_EchoGuard(t *testing.T) {
	filter := NewFilter(config.Default().Pipeline)
	seed := &models.SeedBook{Title: "Dune"}

	pool := []models.Candidate{
		{ID: "echo", Title: "El Nombre del Viento: Edicion Ilustrada", Language: "es"},
		{ID: "other", Title: "Otra Novela", Language: "es"},
	}

	// Title-seeded with a long query: the echoing title is dropped.
	out := filter.Apply(pool, seed, textutil.Fold("El Nombre del Viento"), true)
	require.Len(t, out, 1)
	assert.Equal(t, "other", out[0].ID)

	// Topic mode skips the guard entirely.
	out = filter.Apply(pool, seed, textutil.Fold("El Nombre del Viento"), false)
	assert.Len(t, out, 2)
}

func TestFilter_Apply_ShortQuerySkipsEchoGuard(t *testing.T) {
	filter := NewFilter(config.Default().Pipeline)
	seed := &models.SeedBook{Title: "Otra Cosa"}

	// "dune" folds to 4 characters, below the echo minimum, so a containing
	// title survives.
	pool := []models.Candidate{
		{ID: "c1", Title: "Dune Messiah en Espanol", Language: "es"},
	}
	out := filter.Apply(pool, seed, textutil.Fold("Dune"), true)
	assert.Len(t, out, 1)
}

func TestFilter_Apply_PreservesOrder(t *testing.T) {
	filter := NewFilter(config.Default().Pipeline)
	seed := &models.SeedBook{Title: "Semilla"}

	pool := []models.Candidate{
		{ID: "c3", Title: "Tercero", Language: "es"},
		{ID: "c1", Title: "Primero", Language: "es"},
		{ID: "c2", Title: "Segundo", Language: "es"},
	}
	out := filter.Apply(pool, seed, "semilla", true)

	require.Len(t, out, 3)
	assert.Equal(t, "c3", out[0].ID)
	assert.Equal(t, "c1", out[1].ID)
	assert.Equal(t, "c2", out[2].ID)
}
