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

// actionTag discriminates the three events the propagator's FIFO queue
// carries (spec.md §4.7).
type actionTag uint8

const (
	// actionInit fires once per node at graph startup: if the node is
	// already on (a permanently-lit LogicBlock, or a StoringBlock whose
	// initial state is on), it notifies its children as if it had just
	// turned on.
	actionInit actionTag = iota
	// actionIncrease notifies a node that one of its parents just turned on.
	actionIncrease
	// actionDecrease notifies a node that one of its parents just turned off.
	actionDecrease
)

func (t actionTag) String() string {
	switch t {
	case actionInit:
		return "init"
	case actionIncrease:
		return "increase"
	case actionDecrease:
		return "decrease"
	default:
		return "unknown"
	}
}

type action struct {
	tag actionTag
	id  ID
}

func (g *Graph) enqueue(tag actionTag, id ID) {
	g.logAction(tag, id)
	g.queue = append(g.queue, action{tag: tag, id: id})
}

// Init seeds the action queue with an actionInit for every node, in
// insertion order, and drains it. Call it once after loading a graph and
// before any TurnOn/TurnOff, to establish the initial fan-in counts implied
// by permanently-lit LogicBlocks and StoringBlocks created already on
// (spec.md §4.7).
func (g *Graph) Init() error {
	for _, id := range g.order {
		g.enqueue(actionInit, id)
	}
	return g.ApplyChanges()
}

// ApplyChanges drains the action queue to a fixed point. It is not
// re-entrant: actions enqueued while draining are processed in the same
// call, breadth-first.
func (g *Graph) ApplyChanges() error {
	for len(g.queue) > 0 {
		a := g.queue[0]
		g.queue = g.queue[1:]
		if err := g.doAction(a); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) doAction(a action) error {
	n, err := g.GetNode(a.id)
	if err != nil {
		return err
	}
	if a.tag == actionInit {
		if n.IsOn() {
			g.notifyChildren(n, actionIncrease)
		}
		return nil
	}
	switch n.Kind {
	case KindLogic:
		if a.tag == actionIncrease {
			return g.applyDelta(n, +1)
		}
		return g.applyDelta(n, -1)
	case KindStoring:
		g.latch(n)
		return nil
	default:
		return invariantErrorf("unknown node kind for node %d", a.id)
	}
}

// applyDelta adjusts a LogicBlock's fan-in count by delta and, if the
// adjustment flips its on/off state, notifies its children. Calling it on a
// StoringBlock is an invariant violation: doAction routes Increase/Decrease
// actions aimed at a StoringBlock to latch instead.
func (g *Graph) applyDelta(n *Node, delta int) error {
	if n.Kind != KindLogic {
		return invariantErrorf("increase/decrease delivered to non-LogicBlock node")
	}
	before := n.IsOn()
	v := int(n.Value()) + delta
	if v < 0 {
		return invariantErrorf("value underflow on LogicBlock (delta %d)", delta)
	}
	if err := n.SetValue(byte(v)); err != nil {
		return err
	}
	after := n.IsOn()
	if before == after {
		return nil
	}
	if after {
		g.notifyChildren(n, actionIncrease)
	} else {
		g.notifyChildren(n, actionDecrease)
	}
	return nil
}

// notifyChildren propagates a parent's on/off transition to its children
// (spec.md §4.6-4.7). Every child, LogicBlock or StoringBlock alike, is
// queued with the same action; doAction dispatches on the child's own kind
// (a StoringBlock re-reads both its Source and Button rather than trusting
// the direction it was queued with, per spec.md §4.7).
func (g *Graph) notifyChildren(parent *Node, direction actionTag) {
	for _, id := range parent.children {
		g.enqueue(direction, id)
	}
}

// latch re-reads a StoringBlock's Source and Button and, if the Button is
// currently on, overwrites the StoringBlock's latched state with the
// Source's current on-state (spec.md §4.7). If that changes the latched
// value, it notifies the StoringBlock's own children in turn (spec.md §9,
// resolved as option (a): propagate StoringBlock writes by default, see
// PropagateStoringBlockWrites).
func (g *Graph) latch(s *Node) {
	button, ok := g.nodes[s.Button]
	if !ok || !button.IsOn() {
		return
	}
	source, ok := g.nodes[s.Source]
	if !ok {
		return
	}
	newState := source.IsOn()
	if newState == s.isOn {
		return
	}
	s.isOn = newState
	if !g.propagateStoring {
		return
	}
	dir := actionDecrease
	if newState {
		dir = actionIncrease
	}
	for _, childID := range s.children {
		g.enqueue(dir, childID)
	}
}

// TurnOn turns an input LogicBlock on: it must currently be a rock (mask
// 0b00000). It is a misuse error to call TurnOn on anything else. Like the
// propagator itself, TurnOn only enqueues the resulting actions; callers
// batch toggles and call ApplyChanges when ready to observe their effect
// (spec.md §5).
func (g *Graph) TurnOn(id ID) error {
	n, err := g.GetNode(id)
	if err != nil {
		return err
	}
	if n.Kind != KindLogic {
		return misuseErrorf("node %d is not a LogicBlock", id)
	}
	if !n.IsRock() {
		return misuseErrorf("node %d is not an input in the off state", id)
	}
	n.TurnToLamp()
	g.notifyChildren(n, actionIncrease)
	return nil
}

// TurnOff turns an input LogicBlock off: it must currently be a lamp (mask
// 0b11111). It is a misuse error to call TurnOff on anything else. See
// TurnOn for the batching contract.
func (g *Graph) TurnOff(id ID) error {
	n, err := g.GetNode(id)
	if err != nil {
		return err
	}
	if n.Kind != KindLogic {
		return misuseErrorf("node %d is not a LogicBlock", id)
	}
	if !n.IsLamp() {
		return misuseErrorf("node %d is not an input in the on state", id)
	}
	n.TurnToRock()
	g.notifyChildren(n, actionDecrease)
	return nil
}
