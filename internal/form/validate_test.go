package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsMessagesAreSpanish(t *testing.T) {
	var v Errors
	v.Required("nombre", "  ")
	require.Error(t, v.Err())
	assert.Equal(t, "nombre: es obligatorio", v.Err().Error())

	v = Errors{}
	v.Selected("categoría", 0)
	assert.Equal(t, "categoría: debe seleccionarse", v.Err().Error())

	v = Errors{}
	v.PositiveInt("capacidad", 0)
	assert.Equal(t, "capacidad: debe ser mayor que cero", v.Err().Error())

	v = Errors{}
	v.PositiveFloat("precio", -1)
	assert.Equal(t, "precio: debe ser mayor que cero", v.Err().Error())
}

func TestErrorsReportFirstFailureOnly(t *testing.T) {
	var v Errors
	v.Required("nombre", "")
	v.Selected("categoría", 0)

	var ve *ValidationError
	require.ErrorAs(t, v.Err(), &ve)
	assert.Equal(t, "nombre", ve.Field)
}

func TestErrorsPassWithValidInput(t *testing.T) {
	var v Errors
	v.Required("nombre", "Perla")
	v.Selected("categoría", 3)
	v.PositiveInt("capacidad", 8)
	v.PositiveFloat("precio", 4500)
	assert.NoError(t, v.Err())
}

func TestParseHelpersCoerceInvalidInputToZero(t *testing.T) {
	assert.Equal(t, 12, ParseInt(" 12 "))
	assert.Equal(t, 0, ParseInt("doce"))
	assert.Equal(t, 99.5, ParseFloat("99.5"))
	assert.Equal(t, 0.0, ParseFloat(""))
}
