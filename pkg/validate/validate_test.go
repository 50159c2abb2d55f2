package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkxdv/pim-api/pkg/validate"
)

type sampleBody struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Type      string `json:"type" validate:"required,oneof=in out adjust"`
	Notes     string `json:"notes" validate:"max=10"`
}

func TestStruct_SinErroresDevuelveNil(t *testing.T) {
	errs := validate.Struct(sampleBody{
		ProductID: "11111111-1111-4111-8111-111111111111",
		Type:      "in",
	})
	assert.Nil(t, errs)
}

func TestStruct_ReportaNombresDeCampoJSON(t *testing.T) {
	errs := validate.Struct(sampleBody{Type: "in"})

	require.Len(t, errs, 1)
	assert.Equal(t, "product_id", errs[0].Field, "el campo se reporta con su nombre json")
	assert.Equal(t, "required", errs[0].Rule)
}

func TestStruct_AcumulaVariosErrores(t *testing.T) {
	errs := validate.Struct(sampleBody{
		ProductID: "no-es-uuid",
		Type:      "transfer",
		Notes:     "esta nota excede el máximo",
	})

	require.Len(t, errs, 3)
	fields := map[string]string{}
	for _, e := range errs {
		fields[e.Field] = e.Rule
	}
	assert.Equal(t, "uuid4", fields["product_id"])
	assert.Equal(t, "oneof", fields["type"])
	assert.Equal(t, "max", fields["notes"])
}

func TestFieldError_MensajesLegibles(t *testing.T) {
	cases := []struct {
		fe   validate.FieldError
		want string
	}{
		{validate.FieldError{Field: "sku", Rule: "required"}, "sku es requerido"},
		{validate.FieldError{Field: "notes", Rule: "max", Param: "500"}, "notes excede el máximo de 500"},
		{validate.FieldError{Field: "type", Rule: "oneof", Param: "in out adjust"}, "type debe ser uno de: in out adjust"},
		{validate.FieldError{Field: "product_id", Rule: "uuid4"}, "product_id debe ser un UUID válido"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.fe.Message())
	}
}
