package urlnorm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	require.True(t, Valid("http://example.com"))
	require.True(t, Valid("https://example.com/path"))
	require.False(t, Valid(""))
	require.False(t, Valid("ftp://example.com"))
	require.False(t, Valid("example.com"))
}

func TestNormalizeStripsFragmentAndLowercases(t *testing.T) {
	got, err := Normalize("HTTP://Example.COM/Foo#bar")
	require.NoError(t, err)

	want, err := Normalize("http://example.com/Foo")
	require.NoError(t, err)

	require.Equal(t, want, got)
}

func TestNormalizeStripsBareHostTrailingSlash(t *testing.T) {
	got, err := Normalize("http://example.com/")
	require.NoError(t, err)
	require.Equal(t, "http://example.com", got, "bare-host trailing slash must be removed")
}

func TestNormalizeKeepsNonBareTrailingSlash(t *testing.T) {
	got, err := Normalize("http://example.com/foo/")
	require.NoError(t, err)
	require.Contains(t, got, "/foo/")
}

func TestDomainStripsWWWAndLowercases(t *testing.T) {
	d, err := Domain("http://WWW.Example.com/path")
	require.NoError(t, err)
	require.Equal(t, "example.com", d)
}

func TestDomainNoWWW(t *testing.T) {
	d, err := Domain("https://sub.example.com")
	require.NoError(t, err)
	require.Equal(t, "sub.example.com", d)
}
