package console_test

import (
	"testing"

	console "github.com/goliatone/go-console"
	"github.com/stretchr/testify/assert"
)

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name    string
		creds   console.Credentials
		wantErr bool
	}{
		{"valid", console.Credentials{Email: "a@b.com", Password: "Secret1!"}, false},
		{"missing email", console.Credentials{Password: "Secret1!"}, true},
		{"malformed email", console.Credentials{Email: "not-an-email", Password: "Secret1!"}, true},
		{"missing password", console.Credentials{Email: "a@b.com"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSignupPayloadValidate(t *testing.T) {
	valid := console.SignupPayload{
		Name:            "Ann Smith",
		Email:           "a@b.com",
		Password:        "Secret1!",
		ConfirmPassword: "Secret1!",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(p *console.SignupPayload)
	}{
		{"name too short", func(p *console.SignupPayload) { p.Name = "Al" }},
		{"name with digits", func(p *console.SignupPayload) { p.Name = "Ann1234" }},
		{"mismatched confirmation", func(p *console.SignupPayload) { p.ConfirmPassword = "Other1!" }},
		{"weak password", func(p *console.SignupPayload) {
			p.Password = "password"
			p.ConfirmPassword = "password"
		}},
		{"short email", func(p *console.SignupPayload) { p.Email = "a@b.c" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestCreateUserPayloadValidate(t *testing.T) {
	valid := console.CreateUserPayload{Name: "Ann Smith", Email: "a@b.com", Password: "Secret1!"}
	assert.NoError(t, valid.Validate())

	weak := valid
	weak.Password = "secret"
	assert.Error(t, weak.Validate())

	unnamed := valid
	unnamed.Name = ""
	assert.Error(t, unnamed.Validate())
}

func TestUpdateUserPayloadValidate(t *testing.T) {
	// Partial updates: empty fields pass, present fields must be well formed.
	assert.NoError(t, console.UpdateUserPayload{}.Validate())
	assert.NoError(t, console.UpdateUserPayload{Name: "Anna Lee"}.Validate())
	assert.NoError(t, console.UpdateUserPayload{ProfileImageURL: "https://cdn.example.com/a.png"}.Validate())

	assert.Error(t, console.UpdateUserPayload{Name: "Al"}.Validate())
	assert.Error(t, console.UpdateUserPayload{Email: "nope"}.Validate())
	assert.Error(t, console.UpdateUserPayload{ProfileImageURL: "::not-a-url"}.Validate())
}

func TestValidatePasswordComplexity(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"Secret1!", false},
		{"Aa1!xx", false},
		{"Aa1!", true},
		{"secret1!", true},
		{"SECRET1!", true},
		{"Secrets!", true},
		{"Secret11", true},
	}

	for _, tt := range tests {
		err := console.ValidatePasswordComplexity(tt.password)
		if tt.wantErr {
			assert.Error(t, err, "password %q", tt.password)
		} else {
			assert.NoError(t, err, "password %q", tt.password)
		}
	}
}

func TestValidateStringEquals(t *testing.T) {
	rule := console.ValidateStringEquals("Secret1!")
	assert.NoError(t, rule("Secret1!"))
	assert.Error(t, rule("Other1!"))
}
