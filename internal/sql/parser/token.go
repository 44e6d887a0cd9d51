package parser

import "unicode"

// tokenize splits a SQL statement into tokens. Quoted strings become a single
// token that keeps its surrounding quotes (the value coercion step strips
// them); commas, parens and semicolons are tokens of their own; the two-char
// operators !=, <=, >=, <> are kept whole.
func tokenize(sql string) []string {
	var tokens []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			tokens = append(tokens, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(sql)
	inQuotes := false
	var quoteChar rune

	for i := 0; i < len(runes); i++ {
		c := runes[i]

		switch {
		case c == '\'' || c == '"':
			if !inQuotes {
				flush()
				inQuotes = true
				quoteChar = c
				cur = append(cur, c)
			} else if c == quoteChar {
				cur = append(cur, c)
				flush()
				inQuotes = false
			} else {
				cur = append(cur, c)
			}

		case inQuotes:
			cur = append(cur, c)

		case unicode.IsSpace(c):
			flush()

		case c == ',' || c == '(' || c == ')' || c == ';':
			flush()
			tokens = append(tokens, string(c))

		case c == '=' || c == '<' || c == '>' || c == '!':
			flush()
			if i+1 < len(runes) && (runes[i+1] == '=' || (c == '<' && runes[i+1] == '>')) {
				tokens = append(tokens, string(runes[i:i+2]))
				i++
			} else {
				tokens = append(tokens, string(c))
			}

		default:
			cur = append(cur, c)
		}
	}
	flush()

	return tokens
}
