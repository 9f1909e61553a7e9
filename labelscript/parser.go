package labelscript

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

const (
	TOKEN_LABEL = iota
	TOKEN_NUMBER
	TOKEN_NEWLINE
	TOKEN_COMMENT
)

var lexer *lexmachine.Lexer

func init() {
	lexer = lexmachine.NewLexer()
	lexer.Add([]byte(`\$[a-zA-Z_][a-zA-Z0-9_\.]*`), getToken(TOKEN_LABEL))
	lexer.Add([]byte(`[0-9]+`), getToken(TOKEN_NUMBER))
	lexer.Add([]byte(`(\n|\r|\n\r)+`), getToken(TOKEN_NEWLINE))
	lexer.Add([]byte(`//[^\n]*`), getToken(TOKEN_COMMENT))
	// \s would swallow the newline after trailing blanks and starve the
	// NEWLINE token
	lexer.Add([]byte(`[ \t]+`), skip)
}

func getToken(tokenType int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(tokenType, string(m.Bytes), m), nil
	}
}

func skip(scan *lexmachine.Scanner, match *machines.Match) (interface{}, error) {
	return nil, nil
}

// Parse reads a label track script: one "$name frame" pair per line,
// frame numbers 1-based, optional // comments.
func Parse(text []byte) ([]*Label, error) {
	scanner, err := lexer.Scanner(text)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to create lexer scanner")
	}

	result := make([]*Label, 0, 8)

	var current *Label
	for Itok, err, eos := scanner.Next(); !eos; Itok, err, eos = scanner.Next() {
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to parse token")
		}
		tok := Itok.(*lexmachine.Token)

		switch tok.Type {
		case TOKEN_LABEL:
			if current != nil {
				return nil, errors.Errorf("Multiple labels on line %v (%q)", tok.StartLine, tok.Lexeme)
			}
			current = &Label{Name: string(tok.Lexeme[1:])}
			result = append(result, current)
		case TOKEN_NUMBER:
			if current == nil {
				return nil, errors.Errorf("Missed label on line %v (%q)", tok.StartLine, tok.Lexeme)
			}
			if current.Frame != 0 {
				return nil, errors.Errorf("Multiple frame numbers on line %v (%q)", tok.StartLine, tok.Lexeme)
			}
			frame, err := strconv.ParseInt(string(tok.Lexeme), 10, 0)
			if err != nil {
				return nil, errors.Errorf("Unknown number format on line %v (%q)", tok.StartLine, tok.Lexeme)
			}
			current.Frame = int(frame)
		case TOKEN_COMMENT:
			comment := strings.TrimSpace(string(tok.Lexeme[2:]))
			if current != nil {
				current.Comment = comment
			}
		case TOKEN_NEWLINE:
			if current != nil && current.Frame == 0 {
				return nil, errors.Errorf("Label %q without frame number on line %v", current.Name, tok.StartLine)
			}
			current = nil
		}
	}
	if current != nil && current.Frame == 0 {
		return nil, errors.Errorf("Label %q without frame number", current.Name)
	}

	return result, nil
}
