package ui

import (
	"fmt"
	"strings"
)

// Mode selects which remote operation the form submits to.
type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
)

// ParseMode accepts "login" or "register" in any case.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLogin:
		return ModeLogin, nil
	case ModeRegister:
		return ModeRegister, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Form field names.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldPhone    = "phone"
	FieldAddress  = "address"
)

// FieldNames lists the form fields in display order.
var FieldNames = []string{FieldName, FieldEmail, FieldPassword, FieldPhone, FieldAddress}

// Fields holds the raw form input. Name, Phone and Address are only sent in
// register mode.
type Fields struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

func (f *Fields) set(name, value string) error {
	switch name {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldPassword:
		f.Password = value
	case FieldPhone:
		f.Phone = value
	case FieldAddress:
		f.Address = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// Get returns the value of the named field.
func (f Fields) Get(name string) (string, error) {
	switch name {
	case FieldName:
		return f.Name, nil
	case FieldEmail:
		return f.Email, nil
	case FieldPassword:
		return f.Password, nil
	case FieldPhone:
		return f.Phone, nil
	case FieldAddress:
		return f.Address, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
}
