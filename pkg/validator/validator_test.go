package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestValidateChannel(t *testing.T) {
	require.False(t, ValidateChannel("general", "public", nil).HasErrors())
	require.False(t, ValidateChannel("vault", "private", strptr("xyz")).HasErrors())

	errs := ValidateChannel("  ", "", nil)
	require.Contains(t, errs, "name")

	errs = ValidateChannel("general", "dm", nil)
	require.Contains(t, errs, "type")

	// Asked for a password, left it blank.
	errs = ValidateChannel("vault", "private", strptr(" "))
	require.Contains(t, errs, "password")
}

func TestValidateJoinPrivate(t *testing.T) {
	require.False(t, ValidateJoinPrivate("secret", "xyz").HasErrors())

	errs := ValidateJoinPrivate("", "")
	require.Contains(t, errs, "name")
	require.Contains(t, errs, "password")
}

func TestValidateDMTarget(t *testing.T) {
	require.False(t, ValidateDMTarget("anonymous 0002", "anonymous 0001").HasErrors())

	errs := ValidateDMTarget("", "anonymous 0001")
	require.Contains(t, errs, "username")

	errs = ValidateDMTarget("anonymous 0001", "anonymous 0001")
	require.Equal(t, "You cannot message yourself", errs["username"])
}

func TestValidateAnnouncement(t *testing.T) {
	require.False(t, ValidateAnnouncement("Maintenance").HasErrors())
	require.Contains(t, ValidateAnnouncement("  "), "title")
}
