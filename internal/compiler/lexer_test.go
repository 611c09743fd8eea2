package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex_Keywords(t *testing.T) {
	tokens, errs := Lex([]byte("class if else while"), "t.java")
	require.Empty(t, errs)
	types := tokenTypes(tokens)
	assert.Equal(t, []TokenType{TClass, TIf, TElse, TWhile, TEOF}, types)
}

func TestLex_SystemOutPrintlnIsOneToken(t *testing.T) {
	tokens, errs := Lex([]byte("System.out.println(1);"), "t.java")
	require.Empty(t, errs)
	assert.Equal(t, TPrintln, tokens[0].Type)
	assert.Equal(t, "System.out.println", tokens[0].Text)
}

func TestLex_LeadingZerosAreOneIntegerToken(t *testing.T) {
	tokens, errs := Lex([]byte("022"), "t.java")
	require.Empty(t, errs)
	require.Len(t, tokens, 2) // integer, eof
	assert.Equal(t, TInteger, tokens[0].Type)
	assert.Equal(t, "022", tokens[0].Text)
}

func TestLex_LeadingUnderscoreRejected(t *testing.T) {
	_, errs := Lex([]byte("_foo"), "t.java")
	require.Len(t, errs, 1)
	assert.Equal(t, LexError, errs[0].Kind)
}

func TestLex_BlockCommentsDoNotNest(t *testing.T) {
	// The inner "/*" does not open a second level; the first "*/" closes
	// the whole comment, so "bar();" is real source, not still inside it.
	tokens, errs := Lex([]byte("/* foo /* nested */ bar();"), "t.java")
	require.Empty(t, errs)
	types := tokenTypes(tokens)
	assert.Equal(t, []TokenType{TIdentifier, TLParen, TRParen, TSemicolon, TEOF}, types)
}

func TestLex_Operators(t *testing.T) {
	tokens, errs := Lex([]byte("&& || == != <= >= < > = + - *"), "t.java")
	require.Empty(t, errs)
	types := tokenTypes(tokens)
	assert.Equal(t, []TokenType{
		TAnd, TOr, TEqual, TNotEqual, TLessEqual, TGreaterEqual,
		TLessThan, TGreaterThan, TAssign, TPlus, TMinus, TStar, TEOF,
	}, types)
}

func TestLex_IdentifierWithUnderscoreInMiddle(t *testing.T) {
	tokens, errs := Lex([]byte("foo_bar"), "t.java")
	require.Empty(t, errs)
	assert.Equal(t, TIdentifier, tokens[0].Type)
	assert.Equal(t, "foo_bar", tokens[0].Text)
}

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}
