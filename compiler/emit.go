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
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/pommeJedusor/pomme/internal/objio"
)

// emit writes the object file (spec.md §4.5): one line per node in queue
// order, "INDEX MASK CHILDREN*", MASK rendered MSB-first over 5 characters.
// Edges are resolved against the symbol table and appended to each source
// node's child list in declaration order, duplicates preserved.
func emit(w io.Writer, t *nodeTable, edges []Edge) error {
	children := make([][]int, len(t.ids)+1) // 1-based
	for _, e := range edges {
		from, ok := t.index[e.From]
		if !ok {
			return errors.Errorf("links: undeclared identifier %q", e.From)
		}
		to, ok := t.index[e.To]
		if !ok {
			return errors.Errorf("links: undeclared identifier %q", e.To)
		}
		children[from] = append(children[from], to)
	}

	ew := objio.NewErrWriter(w)
	for i, id := range t.ids {
		idx := i + 1
		fmt.Fprintf(ew, "%d %05b", idx, t.requirements[id])
		for _, c := range children[idx] {
			fmt.Fprintf(ew, " %d", c)
		}
		fmt.Fprint(ew, "\n")
	}
	return ew.Err
}
