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

import "fmt"

// SchemaError reports a violation of the node-store's structural rules
// (spec.md §4.8): duplicate node ids, or a direct link between two
// StoringBlocks.
type SchemaError struct {
	Msg string
}

func (e *SchemaError) Error() string { return "vm: schema: " + e.Msg }

// MisuseError reports an API call that violated a documented precondition:
// toggling a LogicBlock that isn't currently a rock/lamp.
type MisuseError struct {
	Msg string
}

func (e *MisuseError) Error() string { return "vm: misuse: " + e.Msg }

// InvariantError reports an internal consistency break during propagation:
// a fan-in count pushed past the hardware model's bound, or a reference to
// a node id that doesn't exist. Per spec.md §7, callers must treat any
// InvariantError as unrecoverable for that Graph instance.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string { return "vm: invariant violation: " + e.Msg }

func schemaErrorf(format string, args ...interface{}) error {
	return &SchemaError{Msg: fmt.Sprintf(format, args...)}
}

func misuseErrorf(format string, args ...interface{}) error {
	return &MisuseError{Msg: fmt.Sprintf(format, args...)}
}

func invariantErrorf(format string, args ...interface{}) error {
	return &InvariantError{Msg: fmt.Sprintf(format, args...)}
}
