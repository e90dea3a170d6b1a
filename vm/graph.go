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

// Package vm implements the node store, action queue and propagator that
// simulate a compiled pomme circuit (spec.md §4.6-4.7), plus the
// object-file Loader (spec.md §6).
//
// The engine is single-threaded and synchronous (spec.md §5): Graph methods
// either complete their full observable effect before returning, or, for
// input toggles, enqueue the resulting actions for a subsequent
// ApplyChanges. ApplyChanges is not re-entrant.
package vm

import "github.com/golang/glog"

// Option configures a Graph at construction time, following the same
// functional-options shape as the teacher's vm.Option/vm.New.
type Option func(*Graph) error

// PropagateStoringBlockWrites controls spec.md §9's open question: whether
// a StoringBlock transition enqueues Increase/Decrease actions for its own
// children. Defaults to true (option (a) of the spec, the recommended
// choice for correctness).
func PropagateStoringBlockWrites(enabled bool) Option {
	return func(g *Graph) error { g.propagateStoring = enabled; return nil }
}

// Verbose enables glog.V(1) diagnostics for every action the propagator
// drains.
func Verbose(enabled bool) Option {
	return func(g *Graph) error { g.verbose = enabled; return nil }
}

// Graph owns every node for its lifetime (spec.md §3 Ownership and
// lifecycle): nodes are created once and never destroyed, and edges are
// immutable once propagation begins.
type Graph struct {
	nodes map[ID]*Node
	order []ID // insertion order, for deterministic Init seeding

	queue            []action
	propagateStoring bool
	verbose          bool
}

// New returns an empty Graph ready for node/edge insertion.
func New(opts ...Option) (*Graph, error) {
	g := &Graph{
		nodes:            make(map[ID]*Node),
		propagateStoring: true,
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// InsertNode adds n to the store under id. It is a schema error to reuse an
// id (spec.md §4.8).
func (g *Graph) InsertNode(id ID, n *Node) error {
	if _, exists := g.nodes[id]; exists {
		return schemaErrorf("duplicate node id %d", id)
	}
	g.nodes[id] = n
	g.order = append(g.order, id)
	return nil
}

// GetNode returns the node stored under id.
func (g *Graph) GetNode(id ID) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, invariantErrorf("node %d not found", id)
	}
	return n, nil
}

// Len returns the number of nodes in the store.
func (g *Graph) Len() int { return len(g.nodes) }

// Each calls fn once per node, in insertion order, for tooling that needs
// to walk the whole graph (dumping, debugging).
func (g *Graph) Each(fn func(id ID, n *Node)) {
	for _, id := range g.order {
		fn(id, g.nodes[id])
	}
}

// InsertEdge inserts a plain edge from -> to (spec.md §4.6). from always
// gains to as a child; if from is a LogicBlock and to a StoringBlock, to's
// Source is additionally set to from. Linking two StoringBlocks directly is
// a schema error.
func (g *Graph) InsertEdge(from, to ID) error {
	a, err := g.GetNode(from)
	if err != nil {
		return err
	}
	b, err := g.GetNode(to)
	if err != nil {
		return err
	}
	if a.Kind == KindStoring && b.Kind == KindStoring {
		return schemaErrorf("cannot link StoringBlock %d directly to StoringBlock %d", from, to)
	}
	a.children = append(a.children, to)
	if a.Kind == KindLogic && b.Kind == KindStoring {
		b.Source = from
	}
	return nil
}

// InsertButtonEdge wires a StoringBlock to the LogicBlock that gates its
// latching (spec.md §4.6). Exactly one of from/to must be a StoringBlock;
// the LogicBlock gains the StoringBlock as a child, and the StoringBlock's
// Button is set to the LogicBlock's id.
func (g *Graph) InsertButtonEdge(from, to ID) error {
	a, err := g.GetNode(from)
	if err != nil {
		return err
	}
	b, err := g.GetNode(to)
	if err != nil {
		return err
	}
	var logic *Node
	var logicID, storingID ID
	switch {
	case a.Kind == KindLogic && b.Kind == KindStoring:
		logic = a
		logicID, storingID = from, to
	case a.Kind == KindStoring && b.Kind == KindLogic:
		logic = b
		logicID, storingID = to, from
	default:
		return schemaErrorf("button edge %d-%d must have exactly one LogicBlock and one StoringBlock", from, to)
	}
	g.nodes[storingID].Button = logicID
	logic.children = append(logic.children, storingID)
	return nil
}

func (g *Graph) logAction(tag actionTag, id ID) {
	if g.verbose {
		glog.V(1).Infof("vm: %s(%d)", tag, id)
	}
}
