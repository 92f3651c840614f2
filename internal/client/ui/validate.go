package ui

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"

	"github.com/dmitrijs2005/headerauth/internal/common"
)

type fieldCheck struct {
	name  string
	value string
	rules []validation.Rule
}

// validateFields checks the form in a fixed order and reports the first
// failure. The password length is always checked first.
func validateFields(mode Mode, f Fields, phoneRegion string) error {
	checks := []fieldCheck{
		{FieldPassword, f.Password, []validation.Rule{
			validation.Required,
			validation.RuneLength(common.MinPasswordLength, 0),
		}},
		{FieldEmail, f.Email, []validation.Rule{
			validation.Required,
			is.Email,
		}},
	}
	if mode == ModeRegister {
		checks = append(checks,
			fieldCheck{FieldName, f.Name, []validation.Rule{validation.Required}},
			fieldCheck{FieldPhone, f.Phone, []validation.Rule{
				validation.Required,
				validation.By(phoneRule(phoneRegion)),
			}},
			fieldCheck{FieldAddress, f.Address, []validation.Rule{validation.Required}},
		)
	}

	for _, c := range checks {
		if err := validation.Validate(c.value, c.rules...); err != nil {
			return &ValidationError{Field: c.name, Reason: err.Error()}
		}
	}
	return nil
}

func phoneRule(region string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if _, err := phonenumbers.Parse(s, region); err != nil {
			return errors.New("must be a valid phone number")
		}
		return nil
	}
}

// validationMessage is the notification text for a validation failure.
func validationMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) && ve.Field == FieldPassword {
		return common.MsgPasswordTooShort
	}
	return common.MsgErrorPrefix + err.Error()
}
