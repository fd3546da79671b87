// Pattern compilation and positional matching for route dispatch.

package router

import (
	"fmt"
	"strings"
)

type segmentKind int

const (
	segLiteral segmentKind = iota
	segParam
	segOptional
	segCatchAll
)

type segment struct {
	kind    segmentKind
	literal string // segLiteral only
	name    string // parameter name
	def     string // default binding for segOptional, may be empty
}

// pattern is a compiled route pattern: an ordered list of segments plus the
// literal count used for specificity ranking.
type pattern struct {
	raw      string
	segments []segment
	literals int
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, "/")
	segs := parts[:0]
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}

func parseSegment(s string) (segment, error) {
	if !strings.HasPrefix(s, "{") {
		if strings.ContainsAny(s, "{}") {
			return segment{}, fmt.Errorf("literal segment %q contains braces", s)
		}
		return segment{kind: segLiteral, literal: s}, nil
	}

	if !strings.HasSuffix(s, "}") {
		return segment{}, fmt.Errorf("unterminated parameter segment %q", s)
	}
	inner := s[1 : len(s)-1]

	switch {
	case strings.HasSuffix(inner, "..."):
		name := strings.TrimSuffix(inner, "...")
		if name == "" {
			return segment{}, fmt.Errorf("catch-all segment %q has no name", s)
		}
		return segment{kind: segCatchAll, name: name}, nil

	case strings.HasSuffix(inner, "?"):
		name := strings.TrimSuffix(inner, "?")
		if name == "" {
			return segment{}, fmt.Errorf("optional segment %q has no name", s)
		}
		return segment{kind: segOptional, name: name}, nil

	case strings.Contains(inner, "="):
		name, def, _ := strings.Cut(inner, "=")
		if name == "" {
			return segment{}, fmt.Errorf("defaulted segment %q has no name", s)
		}
		return segment{kind: segOptional, name: name, def: def}, nil

	default:
		if inner == "" {
			return segment{}, fmt.Errorf("parameter segment %q has no name", s)
		}
		return segment{kind: segParam, name: inner}, nil
	}
}

func compilePattern(raw string) (*pattern, error) {
	p := &pattern{raw: raw}
	for _, part := range splitPath(raw) {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, err
		}
		p.segments = append(p.segments, seg)
		if seg.kind == segLiteral {
			p.literals++
		}
	}

	for i, seg := range p.segments {
		if (seg.kind == segOptional || seg.kind == segCatchAll) && i != len(p.segments)-1 {
			return nil, fmt.Errorf("segment %d of %q: optional and catch-all segments must be trailing", i, raw)
		}
	}
	return p, nil
}

// match compares path segments positionally against the pattern, binding
// parameter values. Returns nil, false when the path does not match.
func (p *pattern) match(pathSegs []string) (map[string]string, bool) {
	params := make(map[string]string)
	n := len(pathSegs)

	for i, seg := range p.segments {
		switch seg.kind {
		case segCatchAll:
			if i < n {
				params[seg.name] = strings.Join(pathSegs[i:], "/")
			}
			return params, true

		case segOptional:
			if i < n {
				if i != n-1 {
					return nil, false
				}
				params[seg.name] = pathSegs[i]
			} else if seg.def != "" {
				params[seg.name] = seg.def
			}
			return params, true

		case segParam:
			if i >= n {
				return nil, false
			}
			params[seg.name] = pathSegs[i]

		case segLiteral:
			if i >= n || pathSegs[i] != seg.literal {
				return nil, false
			}
		}
	}

	if n != len(p.segments) {
		return nil, false
	}
	return params, true
}
