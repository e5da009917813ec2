package articles

import (
	"bytes"

	"github.com/adrg/frontmatter"
)

var (
	delimOpen  = []byte("---\n")
	delimClose = []byte("\n---")
)

// ParseError reports a document whose frontmatter block could not be
// decoded. Documents failing this way are skipped, never fatal.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return "parse frontmatter: " + e.Reason + ": " + e.Err.Error()
	}
	return "parse frontmatter: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseDocument splits a raw document into its frontmatter fields and the
// Markdown body. A document without a frontmatter block yields an empty
// field map and the full input as body. Malformed or unterminated
// frontmatter yields a *ParseError.
func ParseDocument(raw []byte) (map[string]any, []byte, error) {
	if openedButUnterminated(raw) {
		return nil, nil, &ParseError{Reason: "unterminated frontmatter block"}
	}
	fields := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fields)
	if err != nil {
		return nil, nil, &ParseError{Reason: "invalid frontmatter", Err: err}
	}
	return fields, body, nil
}

// openedButUnterminated reports a document that starts with the frontmatter
// delimiter but never closes it.
func openedButUnterminated(raw []byte) bool {
	trimmed := bytes.TrimLeft(raw, "\r\n")
	if !bytes.HasPrefix(trimmed, delimOpen) {
		return false
	}
	rest := trimmed[len(delimOpen):]
	// An empty block closes on the very next line, so its close
	// delimiter is not preceded by a newline.
	if bytes.HasPrefix(rest, delimOpen) || bytes.Equal(rest, []byte("---")) {
		return false
	}
	return !bytes.Contains(rest, delimClose)
}
