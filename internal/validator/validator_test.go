package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type alertInput struct {
	Type   string `json:"type" validate:"required,is-alert-type"`
	Status string `json:"status" validate:"omitempty,is-listing-status"`
	Kind   string `json:"kind" validate:"is-announcement-type"`
	Email  string `json:"email" validate:"omitempty,email"`
}

func TestValidate_CustomRules(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&alertInput{Type: "sender", Status: "matched", Kind: "shopping"}))

	err := v.Validate(&alertInput{Type: "buyer", Status: "lost", Kind: "letter", Email: "nope"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Must be one of: sender, shipper", vErr.Errors["type"])
	assert.Equal(t, "Must be one of: active, matched, completed, cancelled", vErr.Errors["status"])
	assert.Equal(t, "Must be one of: package, shopping", vErr.Errors["kind"])
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
}

func TestValidate_Required(t *testing.T) {
	err := New().Validate(&alertInput{})
	require.Error(t, err)
	assert.Equal(t, "This field is required", err.(*ValidationError).Errors["type"])
}
