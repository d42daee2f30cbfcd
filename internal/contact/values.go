// Package contact holds the contact form's data model, its field rules and the
// client that submits a contact to the backend.
package contact

// Field identifies one input of the contact form.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists the form's fields in display order.
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

// Label returns the human label for f.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldEmail:
		return "Email"
	case FieldMessage:
		return "Message"
	default:
		return string(f)
	}
}

// Values is the content of the contact form.
type Values struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Get returns the value of field f.
func (v Values) Get(f Field) string {
	switch f {
	case FieldName:
		return v.Name
	case FieldEmail:
		return v.Email
	case FieldMessage:
		return v.Message
	default:
		return ""
	}
}

// With returns a copy of v with field f set to value.
func (v Values) With(f Field, value string) Values {
	switch f {
	case FieldName:
		v.Name = value
	case FieldEmail:
		v.Email = value
	case FieldMessage:
		v.Message = value
	}
	return v
}

// IsZero reports whether every field is empty.
func (v Values) IsZero() bool {
	return v == Values{}
}
