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
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"

	pommedump "github.com/pommeJedusor/pomme/lang/pomme"
	"github.com/pommeJedusor/pomme/vm"
)

// runScript replays turn_on/turn_off/apply/dump commands from r against g,
// one shell-tokenized command per line, writing dump output to w. It is the
// non-interactive counterpart of the REPL's raw keystroke mode, meant for
// regression fixtures and CI.
func runScript(g *vm.Graph, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens, err := shellquote.Split(line)
		if err != nil {
			return errors.Wrapf(err, "script line %d", lineNo)
		}
		if len(tokens) == 0 {
			continue
		}
		if err := runToken(g, w, tokens); err != nil {
			return errors.Wrapf(err, "script line %d: %q", lineNo, line)
		}
	}
	return scanner.Err()
}

func runToken(g *vm.Graph, w io.Writer, tokens []string) error {
	cmd := tokens[0]
	args := tokens[1:]
	switch cmd {
	case "turn_on", "turn_off":
		if len(args) != 1 {
			return errors.Errorf("%s takes exactly one node id", cmd)
		}
		id, err := parseNodeID(args[0])
		if err != nil {
			return err
		}
		if cmd == "turn_on" {
			return g.TurnOn(id)
		}
		return g.TurnOff(id)
	case "apply":
		return g.ApplyChanges()
	case "dump":
		return pommedump.DumpGraph(g, w)
	default:
		glog.Warningf("cmd/pomme: ignoring unknown script command %q", cmd)
		return nil
	}
}

func parseNodeID(s string) (vm.ID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid node id %q", s)
	}
	return vm.ID(n), nil
}
