package assembler

import "strings"

// rawLine is one preprocessed source line: comment-stripped,
// whitespace-trimmed, tagged with its one-based position in the
// original source file.
type rawLine struct {
	Line int
	Text string
}

// lex splits source text into preprocessed lines, dropping everything
// from the first ';' or '#' to end of line, trimming ASCII whitespace
// at both ends, and discarding lines that become blank.
func lex(source string) []rawLine {
	var out []rawLine
	for i, text := range strings.Split(source, "\n") {
		if idx := strings.IndexAny(text, ";#"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		out = append(out, rawLine{Line: i + 1, Text: text})
	}
	return out
}

// splitFields splits an instruction line into its mnemonic and raw,
// comma-separated operand tokens. Operand tokens are trimmed but
// otherwise unparsed; operand-type inference happens in the parser.
func splitFields(text string) (mnemonic string, operands []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", nil
	}
	mnemonic = fields[0]
	rest := strings.TrimSpace(strings.TrimPrefix(text, mnemonic))
	if rest == "" {
		return mnemonic, nil
	}
	for _, tok := range strings.Split(rest, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			operands = append(operands, tok)
		}
	}
	return mnemonic, operands
}
