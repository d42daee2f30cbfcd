package contact

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestValidateField(t *testing.T) {
	tests := []struct {
		field   Field
		value   string
		wantMsg string
	}{
		{FieldName, "Ada", ""},
		{FieldName, "", "name is required"},
		{FieldName, "   ", ""},
		{FieldEmail, "", "email is required"},
		{FieldEmail, "ada@example.com", ""},
		{FieldEmail, "ada@mail.example.co.uk", ""},
		{FieldEmail, "ada", "Please enter a valid email address"},
		{FieldEmail, "ada@example", "Please enter a valid email address"},
		{FieldEmail, "@example.com", "Please enter a valid email address"},
		{FieldMessage, "", "message is required"},
		{FieldMessage, "Hi", ""},
		{Field("unknown"), "", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.field)+"/"+tt.value, func(t *testing.T) {
			err := ValidateField(tt.field, tt.value)
			if tt.wantMsg == "" {
				require.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			require.Equal(t, tt.field, err.Field)
			require.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidate_OnlyNameFilled(t *testing.T) {
	errs := Validate(Values{Name: "Ada"})
	require.Len(t, errs, 2)
	require.Equal(t, FieldEmail, errs[0].Field)
	require.Equal(t, FieldMessage, errs[1].Field)
}

func TestValidate_AllValid(t *testing.T) {
	require.Empty(t, Validate(ada))
}

func TestValidate_EmailShapeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		local := rapid.StringMatching(`[a-z0-9._+]{1,12}`).Draw(t, "local")
		domain := rapid.StringMatching(`[a-z0-9-]{1,12}`).Draw(t, "domain")
		tld := rapid.StringMatching(`[a-z]{1,6}`).Draw(t, "tld")

		require.Nil(t, ValidateField(FieldEmail, local+"@"+domain+"."+tld))
		// Without the dot after the domain the shape no longer matches
		require.NotNil(t, ValidateField(FieldEmail, local+"@"+domain))
	})
}

func TestValues_GetWith(t *testing.T) {
	v := Values{}
	require.True(t, v.IsZero())

	for _, f := range Fields {
		v = v.With(f, "x-"+string(f))
	}
	require.Equal(t, Values{Name: "x-name", Email: "x-email", Message: "x-message"}, v)
	require.Equal(t, "x-email", v.Get(FieldEmail))
	require.Equal(t, "", v.Get(Field("other")))
	require.False(t, v.IsZero())
	require.Equal(t, "Email", FieldEmail.Label())
}
