package console

import (
	"errors"
	"regexp"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Validation is a precondition enforced at the dispatch boundary: the stores
// trust their callers and perform no validation themselves. A payload that
// fails Validate must never reach a store.

var nameRule = regexp.MustCompile(`^[a-zA-Z\s]{4,}$`)

// Credentials is the login payload for both portals.
type Credentials struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(
			&c.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&c.Password,
			validation.Required,
		),
	)
}

// SignupPayload is the registration form payload.
type SignupPayload struct {
	Name            string `form:"name" json:"name"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

// Validate will validate the payload
func (p SignupPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(
			&p.Name,
			validation.Required,
			validation.Match(nameRule).Error("name should be at least 4 characters long and contain only letters"),
		),
		validation.Field(&p.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(
			&p.Password,
			validation.Required,
			validation.By(ValidatePasswordComplexity),
		),
		validation.Field(
			&p.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(p.Password)),
		),
	)
}

// CreateUserPayload is the admin "new user" form payload.
type CreateUserPayload struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will validate the payload
func (p CreateUserPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(
			&p.Name,
			validation.Required,
			validation.Match(nameRule).Error("name should be at least 4 characters long and contain only letters"),
		),
		validation.Field(&p.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(
			&p.Password,
			validation.Required,
			validation.By(ValidatePasswordComplexity),
		),
	)
}

// UpdateUserPayload carries the subset of fields an edit submits; empty
// fields are left untouched by the server.
type UpdateUserPayload struct {
	Name            string `form:"name" json:"name,omitempty"`
	Email           string `form:"email" json:"email,omitempty"`
	ProfileImageURL string `form:"profile_image_url" json:"profile_image_url,omitempty"`
}

// Validate will validate the payload
func (p UpdateUserPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(
			&p.Name,
			validation.Match(nameRule).Error("name should be at least 4 characters long and contain only letters"),
		),
		validation.Field(&p.Email, is.Email),
		validation.Field(&p.ProfileImageURL, is.URL),
	)
}

// ValidateStringEquals will check that both values match
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return errors.New("passwords do not match")
		}
		return nil
	}
}

// ValidatePasswordComplexity enforces the signup password policy: at least 6
// characters with uppercase, lowercase, digit, and special character.
func ValidatePasswordComplexity(value any) error {
	s, _ := value.(string)
	if len(s) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	var upper, lower, digit, special bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return errors.New("password must include uppercase, lowercase, number, and special character")
	}
	return nil
}
