package tokenizer

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTokenIterator(t *testing.T) {
	src := "x = 10 + 5;"
	tok := NewScadTokenizer(src, TokenizerOptions{SkipWhitespace: true})

	expectedTypes := []TokenType{IDENTIFIER, ASSIGN, NUMBER, PLUS, NUMBER, SEMICOLON, EOF}

	var actualTypes []TokenType
	for token, err := range tok.Tokens() {
		assert.NoError(t, err)
		actualTypes = append(actualTypes, token.Type)
		if token.Type == EOF {
			break
		}
	}

	assert.Equal(t, expectedTypes, actualTypes)
}

func TestTokenIteratorKeepsWhitespaceAndComments(t *testing.T) {
	src := "module box() { // hi\ncube(1);\n}"
	tok := NewScadTokenizer(src)

	tokens, err := tok.AllTokens()
	assert.NoError(t, err)

	var sawComment bool
	for _, tk := range tokens {
		if tk.Type == LINE_COMMENT {
			sawComment = true
		}
	}
	assert.True(t, sawComment)
}

func TestReservedWords(t *testing.T) {
	src := "module function if else for let assert echo each true false undef use include intersection_for"
	tok := NewScadTokenizer(src, TokenizerOptions{SkipWhitespace: true})

	expected := []TokenType{
		MODULE, FUNCTION, IF, ELSE, FOR, LET, ASSERT, ECHO, EACH,
		TRUE, FALSE, UNDEF, USE, INCLUDE, INTERSECTION_FOR, EOF,
	}

	var actual []TokenType
	for token, err := range tok.Tokens() {
		assert.NoError(t, err)
		actual = append(actual, token.Type)
		if token.Type == EOF {
			break
		}
	}

	assert.Equal(t, expected, actual)
}

func TestIncludePathLexing(t *testing.T) {
	src := "include <utils/math.scad>\nuse <lib.scad>"
	tok := NewScadTokenizer(src, TokenizerOptions{SkipWhitespace: true})

	var values []string
	var types []TokenType
	for token, err := range tok.Tokens() {
		assert.NoError(t, err)
		types = append(types, token.Type)
		values = append(values, token.Value)
		if token.Type == EOF {
			break
		}
	}

	assert.Equal(t, []TokenType{INCLUDE, PATH, USE, PATH, EOF}, types)
	assert.Equal(t, "utils/math.scad", values[1])
	assert.Equal(t, "lib.scad", values[3])
}

func TestNumberWithExponent(t *testing.T) {
	src := "1.5e-3"
	tok := NewScadTokenizer(src)
	tokens, err := tok.AllTokens()
	assert.NoError(t, err)
	assert.Equal(t, NUMBER, tokens[0].Type)
	assert.Equal(t, "1.5e-3", tokens[0].Value)
}

func TestStringEscapes(t *testing.T) {
	src := `"line1\nline2A"`
	tok := NewScadTokenizer(src)
	tokens, err := tok.AllTokens()
	assert.NoError(t, err)
	assert.Equal(t, STRING, tokens[0].Type)
}

func TestUnterminatedStringError(t *testing.T) {
	src := `"unterminated`
	tok := NewScadTokenizer(src)
	_, err := tok.AllTokens()
	assert.Error(t, err)
}

func TestOperators(t *testing.T) {
	src := "== != <= >= && || << >>"
	tok := NewScadTokenizer(src, TokenizerOptions{SkipWhitespace: true})
	expected := []TokenType{EQ, NE, LE, GE, AND, OR, SHL, SHR, EOF}

	var actual []TokenType
	for token, err := range tok.Tokens() {
		assert.NoError(t, err)
		actual = append(actual, token.Type)
		if token.Type == EOF {
			break
		}
	}
	assert.Equal(t, expected, actual)
}
