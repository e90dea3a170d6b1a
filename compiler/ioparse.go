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
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/pommeJedusor/pomme/internal/ident"
)

// nodeTable holds the flattened inputs/outputs/def declarations (spec.md
// §4.3): the node queue in declaration order, each node's requirements
// mask, and the identifier -> 1-based index symbol table the links analyser
// resolves edges against.
type nodeTable struct {
	ids          []string
	requirements map[string]byte
	index        map[string]int
}

func newNodeTable() *nodeTable {
	return &nodeTable{requirements: map[string]byte{}, index: map[string]int{}}
}

func (t *nodeTable) add(id string, mask byte) error {
	if _, dup := t.index[id]; dup {
		return errors.Errorf("duplicate node identifier %q", id)
	}
	t.ids = append(t.ids, id)
	t.requirements[id] = mask
	t.index[id] = len(t.ids) // 1-based
	return nil
}

// buildNodeTable processes the inputs, outputs and def sections in that
// order, per spec.md §3's "inputs, then outputs, then defs" id-assignment
// rule.
func buildNodeTable(sections []section) (*nodeTable, error) {
	t := newNodeTable()
	errs := &SchemaError{}

	kinds := []struct {
		name            string
		fixedMaskZero   bool
		requireTrailing bool
	}{
		{"inputs", true, false},
		{"outputs", false, true},
		{"def", false, true},
	}
	for _, k := range kinds {
		sec, _ := findSection(sections, k.name)
		for _, line := range sec.body {
			ids, mask, err := parseIOLine(line.text, k.fixedMaskZero, k.requireTrailing)
			if err != nil {
				errs.Add(errors.Wrapf(err, "section %q", k.name))
				continue
			}
			for _, id := range ids {
				if err := t.add(id, mask); err != nil {
					errs.Add(errors.Wrapf(err, "section %q", k.name))
				}
			}
		}
	}
	if errs.HasErrors() {
		return nil, errs
	}
	return t, nil
}

// parseIOLine parses one inputs/outputs/def line (spec.md §4.3):
// "ID" or "ID1 -> ID2 trailing", per the EBNF io_line ::= ID ("->" ID trailing)?.
func parseIOLine(line string, fixedMaskZero, requireTrailing bool) ([]string, byte, error) {
	arrow := strings.Index(line, "->")
	if arrow < 0 {
		id := strings.TrimSpace(line)
		if !ident.Valid(id) {
			return nil, 0, errors.Errorf("invalid identifier %q", id)
		}
		if requireTrailing {
			return nil, 0, errors.Errorf("line %q requires a trailing mask specification", line)
		}
		return []string{id}, 0, nil
	}

	lhs := strings.TrimSpace(line[:arrow])
	rhs := strings.TrimSpace(line[arrow+2:])
	if !ident.Valid(lhs) {
		return nil, 0, errors.Errorf("invalid range start %q", lhs)
	}
	fields := strings.SplitN(rhs, " ", 2)
	rhsID := strings.TrimSpace(fields[0])
	if !ident.Valid(rhsID) {
		return nil, 0, errors.Errorf("invalid range end %q", rhsID)
	}
	ids, err := ident.Range(lhs, rhsID)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "range %q..%q", lhs, rhsID)
	}

	var mask byte
	if !fixedMaskZero {
		var trailing string
		if len(fields) == 2 {
			trailing = strings.TrimSpace(fields[1])
		}
		if trailing == "" {
			if requireTrailing {
				return nil, 0, errors.Errorf("line %q requires a trailing mask specification", line)
			}
		} else {
			mask, err = parseTrailingMask(trailing)
			if err != nil {
				return nil, 0, errors.Wrapf(err, "line %q", line)
			}
		}
	}
	return ids, mask, nil
}

// parseTrailingMask parses a comma-separated list of bit positions
// (spec.md §4.3) into a requirements mask.
func parseTrailingMask(s string) (byte, error) {
	var mask byte
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		k, err := strconv.Atoi(tok)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid bit position %q", tok)
		}
		if k < 0 || k > 4 {
			return 0, errors.Errorf("bit position %d out of range 0..4", k)
		}
		mask |= 1 << uint(k)
	}
	return mask, nil
}
