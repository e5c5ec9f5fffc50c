package sniff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateJSON(t *testing.T) {
	cases := []struct {
		name    string
		content string
		valid   bool
	}{
		{"object", `{"a": 1, "b": [true, null]}`, true},
		{"array", `[1, 2, 3]`, true},
		{"trailing comma", `{"a": 1,}`, false},
		{"bare text", `hello`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Validate(tc.content, "json")
			require.Equal(t, tc.valid, res.Valid)
			require.Equal(t, "json", res.Format)
			require.NotEmpty(t, res.Details)
		})
	}
}

func TestValidateMarkdown(t *testing.T) {
	res := Validate("# Title\n\nSome *emphasis* here.", "markdown")
	require.True(t, res.Valid)
	require.Contains(t, res.Details, "markdown indicators")

	// Plain prose is still acceptable markdown.
	res = Validate("just a sentence", "markdown")
	require.True(t, res.Valid)
	require.Contains(t, res.Details, "Plain text")

	res = Validate("   ", "markdown")
	require.False(t, res.Valid)
}

func TestValidatePython(t *testing.T) {
	res := Validate("def add(a, b):\n    return a + b\n", "python")
	require.True(t, res.Valid)

	res = Validate("SELECT 1", "python")
	require.False(t, res.Valid)
}

func TestValidateCSharp(t *testing.T) {
	res := Validate("namespace Demo { public class A { } }", "csharp")
	require.True(t, res.Valid)

	res = Validate("plain words only", "csharp")
	require.False(t, res.Valid)
}

func TestValidateUnknownFormat(t *testing.T) {
	res := Validate("anything", "yaml")
	require.False(t, res.Valid)
	require.Contains(t, res.Details, "Unknown format type")
	require.Contains(t, res.Details, "json")
}
