package token

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cypheri-lang/cypheri/errors"
)

func locAt(line, column uint32) errors.SourceLocation {
	return errors.SourceLocation{Line: line, Column: column}
}

func TestLookupIdentifier(t *testing.T) {
	testCases := []struct {
		input    string
		expected Type
	}{
		{"Function", FUNCTION},
		{"Declare", DECLARE},
		{"If", IF},
		{"ElseIf", ELSEIF},
		{"Else", ELSE},
		{"End", END},
		{"Return", RETURN},
		{"Then", THEN},
		{"TRUE", TRUE},
		{"FALSE", FALSE},
		{"NULL", NULL},
		{"_Yield", YIELD},
		// keywords are case sensitive
		{"function", IDENT},
		{"true", IDENT},
		{"null", IDENT},
		{"end", IDENT},
		// ordinary identifiers
		{"x", IDENT},
		{"Functions", IDENT},
		{"_private", IDENT},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, LookupIdentifier(tc.input), tc.input)
	}
}

func TestTypeNames(t *testing.T) {
	testCases := []struct {
		typ      Type
		expected string
	}{
		{EOF, "(eof)"},
		{IDENT, "(identifier)"},
		{INT, "(integer)"},
		{NUMBER, "(number)"},
		{STRING, "(string)"},
		{POW_EQUALS, "**="},
		{SLASH_SLASH, "//"},
		{LT_LT_EQUALS, "<<="},
		{COLON_COLON, "::"},
		{FUNCTION, "Function"},
		{ELSEIF, "ElseIf"},
		{YIELD, "_Yield"},
		{BUILTIN_POPCNT, "BuiltinPopcnt"},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, tc.typ.String())
	}
}

func TestEveryTypeHasName(t *testing.T) {
	for typ := Type(0); typ < TypeCount; typ++ {
		require.NotEmpty(t, typ.String(), "type %d has no name", typ)
	}
}

func TestConstructors(t *testing.T) {
	loc := locAt(2, 4)

	tk := FromInteger(loc, 42)
	require.Equal(t, INT, tk.Type)
	require.Equal(t, uint64(42), tk.Integer)
	require.Equal(t, loc, tk.Loc)

	tk = FromNumber(loc, 1.5)
	require.Equal(t, NUMBER, tk.Type)
	require.Equal(t, 1.5, tk.Num)

	tk = FromIdentifier(loc, 7)
	require.Equal(t, IDENT, tk.Type)
	require.Equal(t, uint32(7), uint32(tk.ID))

	tk = FromString(loc, 3)
	require.Equal(t, STRING, tk.Type)
	require.Equal(t, 3, tk.StrIdx)

	tk = New(SEMICOLON, loc)
	require.Equal(t, SEMICOLON, tk.Type)
}
