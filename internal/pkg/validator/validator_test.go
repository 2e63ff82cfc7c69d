package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Email  string `validate:"required,email"`
	Role   string `validate:"omitempty,user_role"`
	Status string `validate:"omitempty,mine_status"`
}

func TestValidateMessages(t *testing.T) {
	require.Nil(t, Validate(sample{Email: "a@b.com", Role: "investor", Status: "Active"}))

	details := Validate(sample{Email: "not-an-email", Role: "wizard", Status: "Closed"})
	require.Equal(t, "Must be a valid email address", details["Email"])
	require.Equal(t, "Unknown role", details["Role"])
	require.Equal(t, "Unknown mine status", details["Status"])

	details = Validate(sample{})
	require.Equal(t, "This field is required", details["Email"])
}
