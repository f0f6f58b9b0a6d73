package config

type FieldType string

const (
	FieldString   FieldType = "string"
	FieldPassword FieldType = "password"
	FieldCheckbox FieldType = "checkbox"
)

type Scope string

const (
	ScopeProd   Scope = "prod"
	ScopeTest   Scope = "test"
	ScopeGlobal Scope = "global"
)

type Field struct {
	Scope Scope
	Name  string
	Type  FieldType
}

var credentialFields = []struct {
	name string
	typ  FieldType
}{
	{"merchant_id", FieldString},
	{"merchant_account_id", FieldString},
	{"public_key", FieldPassword},
	{"private_key", FieldPassword},
}

// Fields lists the settings shown on the admin form, in display order.
func Fields() []Field {
	fields := make([]Field, 0, 2*len(credentialFields)+1)
	for _, scope := range []Scope{ScopeProd, ScopeTest} {
		for _, f := range credentialFields {
			fields = append(fields, Field{Scope: scope, Name: f.name, Type: f.typ})
		}
	}
	return append(fields, Field{Scope: ScopeGlobal, Name: "test_mode", Type: FieldCheckbox})
}

// Value returns the configured value of a declared field. Password fields are
// masked unless reveal is set.
func (b Braintree) Value(f Field, reveal bool) string {
	var c Credentials
	switch f.Scope {
	case ScopeGlobal:
		if f.Name == "test_mode" {
			if b.TestMode {
				return "1"
			}
			return "0"
		}
		return ""
	case ScopeProd:
		c = b.Prod
	case ScopeTest:
		c = b.Test
	}

	var v string
	switch f.Name {
	case "merchant_id":
		v = c.MerchantID
	case "merchant_account_id":
		v = c.MerchantAccountID
	case "public_key":
		v = c.PublicKey
	case "private_key":
		v = c.PrivateKey
	}
	if f.Type == FieldPassword && !reveal && v != "" {
		return "********"
	}
	return v
}
