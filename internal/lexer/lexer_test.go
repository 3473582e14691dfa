package lexer

import (
	"testing"

	"github.com/nyxlang/nyxc/internal/token"
)

func collect(input string) []token.Token {
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

func TestNextTokenPunctuationAndKeywords(t *testing.T) {
	input := `func add<T>(T a, T b) pure => a + b;`
	expected := []token.Type{
		token.FUNC, token.IDENT, token.LT, token.IDENT, token.GT,
		token.LPAREN, token.IDENT, token.IDENT, token.COMMA, token.IDENT, token.IDENT, token.RPAREN,
		token.PURE, token.FATARROW, token.IDENT, token.PLUS, token.IDENT, token.SEMICOLON, token.EOF,
	}
	toks := collect(input)
	if len(toks) != len(expected) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(expected), toks)
	}
	for i, want := range expected {
		if toks[i].Type != want {
			t.Errorf("token %d: got %s, want %s (literal %q)", i, toks[i].Type, want, toks[i].Literal)
		}
	}
}

func TestNextTokenArrowReturnType(t *testing.T) {
	toks := collect(`extern func printf(i32 fmt) -> void;`)
	want := []token.Type{
		token.EXTERN, token.FUNC, token.IDENT, token.LPAREN, token.IDENT, token.IDENT, token.RPAREN,
		token.ARROW, token.IDENT, token.SEMICOLON, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
}

func TestNextTokenNumberSuffixes(t *testing.T) {
	cases := []string{"0", "1u32", "1i64", "1iz", "1uz", "1.5f32", "0x1Fu8", "0b101", "0o17", "1f128"}
	for _, c := range cases {
		toks := collect(c)
		if len(toks) != 2 || toks[0].Type != token.NUMBER || toks[0].Literal != c || toks[1].Type != token.EOF {
			t.Errorf("collect(%q) = %+v, want single NUMBER token with full literal", c, toks)
		}
	}
}

func TestNextTokenComments(t *testing.T) {
	toks := collect("// line comment\nfoo /* block\ncomment */ bar")
	want := []token.Type{token.IDENT, token.IDENT, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	if toks[0].Literal != "foo" || toks[1].Literal != "bar" {
		t.Errorf("got literals %q, %q", toks[0].Literal, toks[1].Literal)
	}
}

func TestNextTokenCharAndString(t *testing.T) {
	toks := collect(`'a' "hello\"world"`)
	if toks[0].Type != token.CHAR || toks[0].Literal != "a" {
		t.Errorf("char literal: got %+v", toks[0])
	}
	if toks[1].Type != token.STRING || toks[1].Literal != `hello\"world` {
		t.Errorf("string literal: got %+v", toks[1])
	}
}

func TestNextTokenDiscardIdent(t *testing.T) {
	toks := collect(`_`)
	if toks[0].Type != token.DISCARD {
		t.Errorf("got %s, want DISCARD", toks[0].Type)
	}
}

func TestNextTokenIllegalByte(t *testing.T) {
	toks := collect(`#`)
	if toks[0].Type != token.ILLEGAL {
		t.Errorf("got %s, want ILLEGAL", toks[0].Type)
	}
}
