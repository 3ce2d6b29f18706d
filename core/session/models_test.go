package session

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/santarita/portal/core"
)

func TestChangePasswordInputValidation(t *testing.T) {
	valid := ChangePasswordInput{
		CurrentPassword: "old-pass",
		NewPassword:     "new-pass",
		PasswordConfirm: "new-pass",
	}

	tests := []struct {
		name      string
		mutate    func(in *ChangePasswordInput)
		wantField string
	}{
		{"valid", func(*ChangePasswordInput) {}, ""},
		{"missing current password", func(in *ChangePasswordInput) { in.CurrentPassword = "" }, "currentPassword"},
		{"short new password", func(in *ChangePasswordInput) { in.NewPassword = "abc"; in.PasswordConfirm = "abc" }, "newPassword"},
		{"mismatched confirmation", func(in *ChangePasswordInput) { in.PasswordConfirm = "other" }, "passwordConfirm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *core.ValidationError
			if !assert.True(t, errors.As(err, &vErr)) {
				return
			}
			fields := make([]string, 0, len(vErr.Fields))
			for _, f := range vErr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestProfileInputValidation(t *testing.T) {
	in := ProfileInput{Name: "  Ana Silva ", Email: " ANA@santarita.edu.br "}
	if err := in.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	// inputs are normalized in place
	assert.Equal(t, "Ana Silva", in.Name)
	assert.Equal(t, "ana@santarita.edu.br", in.Email)

	in = ProfileInput{Name: "Ana Silva", Email: "not-an-email"}
	assert.Error(t, in.Validate())
}
