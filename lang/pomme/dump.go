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

// Package pomme provides human-readable debugging views over a vm.Graph,
// for the dump CLI subcommand and interactive REPL inspection.
package pomme

import (
	"io"
	"strconv"

	"github.com/pommeJedusor/pomme/vm"
)

func appendChildren(b []byte, children []vm.ID) []byte {
	for _, c := range children {
		b = append(b, ' ')
		b = strconv.AppendInt(b, int64(c), 10)
	}
	return b
}

// DumpGraph writes one line per node to w: id, kind, on-state and, for a
// LogicBlock, its value/requirements, or for a StoringBlock its
// source/button, followed by its child id list.
func DumpGraph(g *vm.Graph, w io.Writer) error {
	b := make([]byte, 0, 64)
	var writeErr error
	g.Each(func(id vm.ID, n *vm.Node) {
		if writeErr != nil {
			return
		}
		b = b[:0]
		b = strconv.AppendInt(b, int64(id), 10)
		switch n.Kind {
		case vm.KindLogic:
			b = append(b, " logic value="...)
			b = strconv.AppendInt(b, int64(n.Value()), 10)
			b = append(b, " mask="...)
			b = appendBinary5(b, n.Requirements())
		case vm.KindStoring:
			b = append(b, " storing source="...)
			b = strconv.AppendInt(b, int64(n.Source), 10)
			b = append(b, " button="...)
			b = strconv.AppendInt(b, int64(n.Button), 10)
		}
		if n.IsOn() {
			b = append(b, " on"...)
		} else {
			b = append(b, " off"...)
		}
		b = appendChildren(b, n.Children())
		b = append(b, '\n')
		if _, err := w.Write(b); err != nil {
			writeErr = err
		}
	})
	return writeErr
}

func appendBinary5(b []byte, mask byte) []byte {
	for i := 4; i >= 0; i-- {
		if mask&(1<<uint(i)) != 0 {
			b = append(b, '1')
		} else {
			b = append(b, '0')
		}
	}
	return b
}
