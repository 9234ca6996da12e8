package ucd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
)

// ParseError reports a malformed UnicodeData.txt line. Parsing stops at
// the first malformed line; no partial record set is returned.
type ParseError struct {
	Line int // 1-based
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unicode data line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// pendingRange tracks a "<tag, First>" line awaiting its "<tag, Last>"
// partner.
type pendingRange struct {
	tag    string
	line   int
	record Character
}

// Parse reads a UnicodeData.txt-format table and returns one Character
// per codepoint, with compressed First/Last range pairs expanded. Every
// expanded record copies the fields of the First line; the name is
// rewritten per codepoint using the Unicode name derivation rules where
// one applies, and kept as the bracketed range tag otherwise.
// Codepoints in the surrogate range are never materialized.
func Parse(r io.Reader) ([]Character, error) {
	var (
		chars   []Character
		pending *pendingRange
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ";")
		if len(fields) != numFields {
			return nil, &ParseError{lineno, fmt.Errorf("want %d fields, got %d", numFields, len(fields))}
		}
		rec, err := parseRecord(fields)
		if err != nil {
			return nil, &ParseError{lineno, err}
		}

		switch tag, kind := rangeMarker(rec.Name); kind {
		case markerFirst:
			if pending != nil {
				return nil, &ParseError{pending.line, fmt.Errorf("range %q has no matching Last line", pending.tag)}
			}
			pending = &pendingRange{tag: tag, line: lineno, record: rec}
		case markerLast:
			if pending == nil || pending.tag != tag {
				return nil, &ParseError{lineno, fmt.Errorf("Last line for range %q has no matching First line", tag)}
			}
			if rec.Codepoint < pending.record.Codepoint {
				return nil, &ParseError{lineno, fmt.Errorf("range %q ends before it starts", tag)}
			}
			chars = append(chars, expandRange(pending.record, rec.Codepoint, tag)...)
			pending = nil
		default:
			if pending != nil {
				return nil, &ParseError{pending.line, fmt.Errorf("range %q has no matching Last line", pending.tag)}
			}
			chars = append(chars, rec)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, &ParseError{pending.line, fmt.Errorf("range %q has no matching Last line", pending.tag)}
	}
	return chars, nil
}

type marker int

const (
	markerNone marker = iota
	markerFirst
	markerLast
)

// rangeMarker recognizes the reserved "<tag, First>" / "<tag, Last>"
// name patterns and extracts the shared tag.
func rangeMarker(name string) (string, marker) {
	if !strings.HasPrefix(name, "<") || !strings.HasSuffix(name, ">") {
		return "", markerNone
	}
	inner := name[1 : len(name)-1]
	if tag, ok := strings.CutSuffix(inner, ", First"); ok {
		return tag, markerFirst
	}
	if tag, ok := strings.CutSuffix(inner, ", Last"); ok {
		return tag, markerLast
	}
	return "", markerNone
}

// expandRange materializes one record per codepoint in [first.Codepoint,
// last], sharing every field of the First record except the codepoint
// and the per-codepoint name.
func expandRange(first Character, last rune, tag string) []Character {
	out := make([]Character, 0, last-first.Codepoint+1)
	for cp := first.Codepoint; cp <= last; cp++ {
		if utf16.IsSurrogate(cp) {
			continue
		}
		rec := first
		rec.Codepoint = cp
		if name, ok := derivedName(cp); ok {
			rec.Name = name
		} else {
			rec.Name = "<" + tag + ">"
		}
		out = append(out, rec)
	}
	return out
}
