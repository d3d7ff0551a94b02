package exprsyntax

import (
	"bytes"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// RewriteKeywordArgs turns keyword-argument calls such as
// `Powerlaw(alpha = 2)` into calls with a single object argument,
// `Powerlaw({alpha = 2})`, which HCL's expression grammar accepts. All other
// source bytes are left untouched, so diagnostics keep pointing at the
// original lines.
func RewriteKeywordArgs(src []byte, filename string) ([]byte, hcl.Diagnostics) {
	tokens, diags := hclsyntax.LexExpression(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}

	type insertion struct {
		at   int
		text string
	}
	var inserts []insertion
	// One entry per open paren: whether it starts a keyword argument list.
	var open []bool

	for i, tok := range tokens {
		switch tok.Type {
		case hclsyntax.TokenOParen:
			keyword := i > 0 && tokens[i-1].Type == hclsyntax.TokenIdent && startsKeywordArg(tokens[i+1:])
			if keyword {
				inserts = append(inserts, insertion{at: tok.Range.End.Byte, text: "{"})
			}
			open = append(open, keyword)
		case hclsyntax.TokenCParen:
			if len(open) == 0 {
				// Unbalanced; left for the parser to report.
				continue
			}
			keyword := open[len(open)-1]
			open = open[:len(open)-1]
			if keyword {
				inserts = append(inserts, insertion{at: tok.Range.Start.Byte, text: "}"})
			}
		}
	}
	if len(inserts) == 0 {
		return src, diags
	}

	var buf bytes.Buffer
	buf.Grow(len(src) + len(inserts))
	last := 0
	for _, ins := range inserts {
		buf.Write(src[last:ins.at])
		buf.WriteString(ins.text)
		last = ins.at
	}
	buf.Write(src[last:])
	return buf.Bytes(), diags
}

// startsKeywordArg reports whether the tokens begin with `ident =`.
func startsKeywordArg(rest hclsyntax.Tokens) bool {
	rest = skipNewlines(rest)
	if len(rest) == 0 || rest[0].Type != hclsyntax.TokenIdent {
		return false
	}
	rest = skipNewlines(rest[1:])
	return len(rest) > 0 && rest[0].Type == hclsyntax.TokenEqual
}

func skipNewlines(tokens hclsyntax.Tokens) hclsyntax.Tokens {
	for len(tokens) > 0 && tokens[0].Type == hclsyntax.TokenNewline {
		tokens = tokens[1:]
	}
	return tokens
}

// ParseExpression rewrites keyword arguments and parses src as a single HCL
// expression.
func ParseExpression(src []byte, filename string) (hclsyntax.Expression, hcl.Diagnostics) {
	rewritten, diags := RewriteKeywordArgs(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	expr, parseDiags := hclsyntax.ParseExpression(rewritten, filename, hcl.InitialPos)
	diags = append(diags, parseDiags...)
	return expr, diags
}
