// This file is part of pomme.
//
// Copyright the pomme authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compiler

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/pommeJedusor/pomme/internal/ident"
)

// Edge is a declared link between two identifiers, prior to resolution
// against the node symbol table. The compiler only ever emits LogicBlock
// nodes (spec.md §6: StoringBlock lines are produced by tooling outside
// this spec), so every Edge connects two LogicBlocks.
type Edge struct {
	From, To string
}

// analyseLinks runs the recursive indentation-scoped expansion of
// spec.md §4.4 over a links-section body and returns the ordered edge list,
// duplicates preserved.
func analyseLinks(body []rawLine) ([]Edge, error) {
	var edges []Edge
	next, err := analyse(body, 0, 0, env{}, &edges)
	if err != nil {
		return nil, err
	}
	if next != len(body) {
		return nil, errors.Errorf("links: unexpected indentation at line %q", body[next].text)
	}
	return edges, nil
}

func cloneEnv(e env) env {
	c := make(env, len(e))
	for k, v := range e {
		c[k] = v
	}
	return c
}

// analyse processes lines[start:] at exactly minIndent, recursing into
// compound heads (for/if) at their body's deeper indent, and returns the
// index of the first line that terminates the current scope.
func analyse(lines []rawLine, start, minIndent int, e env, out *[]Edge) (int, error) {
	for start < len(lines) {
		ln := lines[start]
		if ln.indent < minIndent {
			return start, nil
		}
		if ln.indent > minIndent {
			return start, errors.Errorf("unexpected indentation in links section: %q", ln.text)
		}

		switch {
		case strings.HasPrefix(ln.text, "for "):
			fields := strings.Fields(ln.text)
			if len(fields) != 4 || fields[1][0] != '$' {
				return start, errors.Errorf("malformed for-loop %q", ln.text)
			}
			varName := fields[1][1:]
			ids, err := ident.Range(fields[2], fields[3])
			if err != nil {
				return start, errors.Wrapf(err, "for-loop %q", ln.text)
			}
			bodyStart := start + 1
			if bodyStart >= len(lines) || lines[bodyStart].indent <= minIndent {
				start = bodyStart
				continue
			}
			nestedIndent := lines[bodyStart].indent
			end := bodyStart
			for _, v := range ids {
				child := cloneEnv(e)
				child[varName] = v
				var iterEnd int
				iterEnd, err = analyse(lines, bodyStart, nestedIndent, child, out)
				if err != nil {
					return start, err
				}
				end = iterEnd
			}
			start = end

		case strings.HasPrefix(ln.text, "if "):
			cond := ln.text[3:]
			ok, err := evalCond(cond, e)
			if err != nil {
				return start, errors.Wrapf(err, "if-condition %q", ln.text)
			}
			bodyStart := start + 1
			if bodyStart >= len(lines) || lines[bodyStart].indent <= minIndent {
				start = bodyStart
				continue
			}
			nestedIndent := lines[bodyStart].indent
			var end int
			if ok {
				end, err = analyse(lines, bodyStart, nestedIndent, e, out)
			} else {
				var discard []Edge
				end, err = analyse(lines, bodyStart, nestedIndent, e, &discard)
			}
			if err != nil {
				return start, err
			}
			start = end

		default:
			arrow := strings.Index(ln.text, "->")
			if arrow < 0 {
				return start, errors.Errorf("malformed links declaration %q", ln.text)
			}
			lhs, err := evalExprList(ln.text[:arrow], e)
			if err != nil {
				return start, errors.Wrapf(err, "links declaration %q", ln.text)
			}
			rhs, err := evalExprList(ln.text[arrow+2:], e)
			if err != nil {
				return start, errors.Wrapf(err, "links declaration %q", ln.text)
			}
			for _, from := range lhs {
				for _, to := range rhs {
					*out = append(*out, Edge{From: from, To: to})
				}
			}
			start++
		}
	}
	return start, nil
}

func evalExprList(s string, e env) ([]string, error) {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		v, err := evalExpr(p, e)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
