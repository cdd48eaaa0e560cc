package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	require.True(t, IsValidEmail("a@x.com"))
	require.True(t, IsValidEmail("first.last@sub.example.org"))

	require.False(t, IsValidEmail("not-an-email"))
	require.False(t, IsValidEmail("missing@tld"))
	require.False(t, IsValidEmail("spaces in@x.com"))
	require.False(t, IsValidEmail(""))
}

func TestIsBlank(t *testing.T) {
	require.True(t, IsBlank(""))
	require.True(t, IsBlank("   "))
	require.True(t, IsBlank("\t\n"))

	require.False(t, IsBlank("title"))
	require.False(t, IsBlank("  title  "))
}
