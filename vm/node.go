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
	"fmt"

	"github.com/pkg/errors"
)

// ID identifies a node within a Graph. The compiler assigns ids as 1-based
// sequential integers in declaration order; the loader accepts whatever ids
// the object file names.
type ID int

// Kind discriminates the two node variants of spec.md §3. Node is a sealed
// tagged struct rather than an interface: there are exactly two variants,
// the distinction is observable state rather than behavior, and a single
// switch in the propagator avoids virtual dispatch for what is a hot path.
type Kind uint8

const (
	// KindLogic is a LogicBlock: value/requirements pair driving a 5-bit
	// truth table.
	KindLogic Kind = iota
	// KindStoring is a StoringBlock: a latch gated by a button node.
	KindStoring
)

// requirementsMask is the set of low 5 bits of a LogicBlock's packed byte.
const requirementsMask = 0b00011111

// maxValue is the largest fan-in count a LogicBlock can hold; the mask never
// consults bits above this position.
const maxValue = 4

// Node is either a LogicBlock or a StoringBlock, selected by Kind.
//
// LogicBlock state is packed into a single byte: value occupies the high 3
// bits, requirements the low 5, matching spec.md §3's packing
// recommendation and the original implementation's layout
// (data>>5, data&0b11111).
type Node struct {
	Kind Kind

	// LogicBlock fields.
	data byte

	// StoringBlock fields.
	isOn   bool
	Source ID
	Button ID

	children []ID
}

// NewLogicBlock returns a LogicBlock with the given 5-bit requirements mask
// and no children.
func NewLogicBlock(requirements byte) (*Node, error) {
	if requirements&^requirementsMask != 0 {
		return nil, errors.Errorf("vm: requirements mask %#b out of range", requirements)
	}
	return &Node{Kind: KindLogic, data: requirements}, nil
}

// NewStoringBlock returns a StoringBlock with the given initial state,
// source and button node ids, and no children.
func NewStoringBlock(isOn bool, source, button ID) *Node {
	return &Node{Kind: KindStoring, isOn: isOn, Source: source, Button: button}
}

// Children returns the node's ordered child id list.
func (n *Node) Children() []ID {
	return n.children
}

// IsOn reports the node's current on-state: for a LogicBlock, whether bit
// Value() of Requirements() is set; for a StoringBlock, its latched value.
func (n *Node) IsOn() bool {
	switch n.Kind {
	case KindLogic:
		return 1<<n.Value()&n.Requirements() != 0
	case KindStoring:
		return n.isOn
	default:
		panic("vm: unknown node kind")
	}
}

// Value returns a LogicBlock's current fan-in count (0..4). Calling it on a
// StoringBlock returns 0.
func (n *Node) Value() byte {
	return n.data >> 5
}

// Requirements returns a LogicBlock's 5-bit threshold mask. Calling it on a
// StoringBlock returns 0.
func (n *Node) Requirements() byte {
	return n.data & requirementsMask
}

// SetValue sets a LogicBlock's fan-in count. It is an invariant-violation
// (spec.md §4.8) to push the count past the hardware model's bound.
func (n *Node) SetValue(v byte) error {
	if v > maxValue {
		return &InvariantError{Msg: fmt.Sprintf("value %d exceeds the 4-parent hardware bound", v)}
	}
	n.data = n.data&requirementsMask | v<<5
	return nil
}

// SetRequirements replaces a LogicBlock's 5-bit threshold mask.
func (n *Node) SetRequirements(v byte) error {
	if v&^requirementsMask != 0 {
		return errors.Errorf("vm: requirements mask %#b out of range", v)
	}
	n.data = n.data&(^byte(requirementsMask)) | v
	return nil
}

// TurnToLamp sets a LogicBlock's mask to the permanent-on pattern 0b11111.
func (n *Node) TurnToLamp() {
	n.data = n.data&(^byte(requirementsMask)) | 0b11111
}

// TurnToRock sets a LogicBlock's mask to the permanent-off pattern 0b00000.
func (n *Node) TurnToRock() {
	n.data = n.data & (^byte(requirementsMask))
}

// IsRock reports whether a LogicBlock's mask is the passive 0b00000 pattern.
func (n *Node) IsRock() bool {
	return n.Requirements() == 0
}

// IsLamp reports whether a LogicBlock's mask is the permanent-on 0b11111
// pattern.
func (n *Node) IsLamp() bool {
	return n.Requirements() == 0b11111
}
