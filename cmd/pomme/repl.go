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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/pommeJedusor/pomme/internal/ident"
	pommedump "github.com/pommeJedusor/pomme/lang/pomme"
	"github.com/pommeJedusor/pomme/vm"
)

// runREPL drives an interactive single-keystroke session: pressing a letter
// key A-Z toggles the LogicBlock input whose id is ident.Decode of that
// letter (the natural id for a circuit whose inputs were declared A, B, C…
// in that order). 'd' dumps the graph, 'q' or Ctrl-C quits.
//
// This convention only reaches inputs with single-letter ids; circuits with
// more than 26 declared inputs, or whose inputs aren't first in declaration
// order, need the batch script runner (-script) or dump/edit the object
// file directly.
func runREPL(g *vm.Graph, out io.Writer) error {
	fmt.Fprintln(out, "pomme REPL: press a letter to toggle that input, 'd' to dump, 'q' to quit")
	rawtty, teardown := setupIO()
	if teardown != nil {
		defer teardown()
	}
	if !rawtty {
		glog.Warningf("cmd/pomme: raw tty unavailable, falling back to line-buffered input")
		return runLineREPL(g, os.Stdin, out)
	}

	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.Wrap(err, "reading keystroke")
		}
		switch c := buf[0]; {
		case c == 'q', c == 3: // 'q' or Ctrl-C
			return nil
		case c == 'd':
			if err := pommedump.DumpGraph(g, out); err != nil {
				return err
			}
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
			if err := toggleLetter(g, out, c); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		}
	}
}

func toggleLetter(g *vm.Graph, out io.Writer, key byte) error {
	letter := strings.ToUpper(string(key))
	n, err := ident.Decode(letter)
	if err != nil {
		return err
	}
	id := vm.ID(n)
	node, err := g.GetNode(id)
	if err != nil {
		return err
	}
	switch {
	case node.IsRock():
		err = g.TurnOn(id)
	case node.IsLamp():
		err = g.TurnOff(id)
	default:
		return errors.Errorf("node %d (%s) is not a toggleable input", id, letter)
	}
	if err != nil {
		return err
	}
	if err := g.ApplyChanges(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s (node %d) -> %v\n", letter, id, node.IsOn())
	return nil
}

func setupIO() (raw bool, teardown func()) {
	teardown, err := setRawIO()
	if err != nil {
		return false, nil
	}
	return true, teardown
}

// runLineREPL is the line-buffered fallback used when raw tty mode isn't
// available: it accepts the same command syntax as the batch script runner.
func runLineREPL(g *vm.Graph, in io.Reader, out io.Writer) error {
	return runScript(g, in, out)
}
