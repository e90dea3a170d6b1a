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

package vm

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Load reads an object file (spec.md §6) and returns the Graph it describes,
// fully initialised (spec.md §4.7's "initial fan-in seeding" has already
// run). Lines beginning with '^' produce StoringBlocks; all others produce
// LogicBlocks. An unparseable line is returned as an error carrying its line
// number; a child id that no line declares is an invariant violation once
// edges are wired.
func Load(r io.Reader, opts ...Option) (*Graph, error) {
	g, err := New(opts...)
	if err != nil {
		return nil, err
	}
	type pendingEdges struct {
		from     ID
		children []ID
	}
	var edges []pendingEdges

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if strings.HasPrefix(fields[0], "^") {
			id, button, source, children, err := parseStoringLine(fields)
			if err != nil {
				return nil, errors.Wrapf(err, "object file line %d", lineNo)
			}
			if err := g.InsertNode(id, NewStoringBlock(false, source, button)); err != nil {
				return nil, errors.Wrapf(err, "object file line %d", lineNo)
			}
			edges = append(edges, pendingEdges{from: id, children: children})
			continue
		}
		id, mask, children, err := parseLogicLine(fields)
		if err != nil {
			return nil, errors.Wrapf(err, "object file line %d", lineNo)
		}
		n, err := NewLogicBlock(mask)
		if err != nil {
			return nil, errors.Wrapf(err, "object file line %d", lineNo)
		}
		if err := g.InsertNode(id, n); err != nil {
			return nil, errors.Wrapf(err, "object file line %d", lineNo)
		}
		edges = append(edges, pendingEdges{from: id, children: children})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading object file")
	}

	// StoringBlock source/button edges were recorded directly on the node
	// (NewStoringBlock) and are not re-derived from the adjacency list: the
	// object file's own children column for a StoringBlock line is its
	// forward fan-out, identical in shape to a LogicBlock's.
	for _, pe := range edges {
		from, err := g.GetNode(pe.from)
		if err != nil {
			return nil, err
		}
		for _, to := range pe.children {
			if _, err := g.GetNode(to); err != nil {
				return nil, errors.Wrapf(err, "edge %d -> %d", pe.from, to)
			}
			from.children = append(from.children, to)
		}
	}

	if err := g.Init(); err != nil {
		return nil, err
	}
	return g, nil
}

// parseLogicLine parses "<index> <b4b3b2b1b0> [<child-index>...]".
func parseLogicLine(fields []string) (ID, byte, []ID, error) {
	if len(fields) < 2 {
		return 0, 0, nil, errors.Errorf("malformed LogicBlock line %q", strings.Join(fields, " "))
	}
	idx, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, nil, errors.Wrapf(err, "invalid node index %q", fields[0])
	}
	mask, err := parseMask(fields[1])
	if err != nil {
		return 0, 0, nil, err
	}
	children, err := parseChildren(fields[2:])
	if err != nil {
		return 0, 0, nil, err
	}
	return ID(idx), mask, children, nil
}

// parseStoringLine parses "^<index> <button-id> <source-id> [<child-index>...]".
func parseStoringLine(fields []string) (id, button, source ID, children []ID, err error) {
	if len(fields) < 3 {
		return 0, 0, 0, nil, errors.Errorf("malformed StoringBlock line %q", strings.Join(fields, " "))
	}
	idxStr := strings.TrimPrefix(fields[0], "^")
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		return 0, 0, 0, nil, errors.Wrapf(err, "invalid StoringBlock index %q", fields[0])
	}
	btn, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, 0, nil, errors.Wrapf(err, "invalid button id %q", fields[1])
	}
	src, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0, 0, nil, errors.Wrapf(err, "invalid source id %q", fields[2])
	}
	children, err = parseChildren(fields[3:])
	if err != nil {
		return 0, 0, 0, nil, err
	}
	return ID(idx), ID(btn), ID(src), children, nil
}

func parseMask(s string) (byte, error) {
	if len(s) != 5 {
		return 0, errors.Errorf("mask %q must be exactly 5 characters", s)
	}
	v, err := strconv.ParseUint(s, 2, 8)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid mask %q", s)
	}
	return byte(v), nil
}

func parseChildren(fields []string) ([]ID, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	out := make([]ID, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid child id %q", f)
		}
		out = append(out, ID(n))
	}
	return out, nil
}
