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

// Package compiler turns pomme source text into the line-oriented object
// file the vm package loads (spec.md §4).
package compiler

import "strings"

// SchemaError accumulates every schema violation found while compiling a
// source file, rather than failing on the first one, modeled on the
// teacher's multi-error assembler diagnostics.
type SchemaError struct {
	Errs []error
}

func (e *SchemaError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return "compiler: schema errors:\n" + strings.Join(msgs, "\n")
}

// Add appends err to the accumulated error list. err may be nil, in which
// case it is ignored.
func (e *SchemaError) Add(err error) {
	if err != nil {
		e.Errs = append(e.Errs, err)
	}
}

// HasErrors reports whether any error has been accumulated.
func (e *SchemaError) HasErrors() bool {
	return len(e.Errs) > 0
}

// AsError returns e if it holds any errors, or nil otherwise. This lets
// callers build a SchemaError incrementally and return it idiomatically at
// the end of a function.
func (e *SchemaError) AsError() error {
	if e.HasErrors() {
		return e
	}
	return nil
}
