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

// Command pomme compiles and simulates pomme logic-circuit descriptions.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/pommeJedusor/pomme/compiler"
	pommedump "github.com/pommeJedusor/pomme/lang/pomme"
	"github.com/pommeJedusor/pomme/vm"
)

var debug bool

func atExit(err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "pomme: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "pomme: %+v\n", err)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, `pomme: compile and simulate logic-circuit descriptions

Usage:
  pomme compile <source.pomme>
  pomme [-script file] run <object-file>
  pomme dump <object-file>

`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.BoolVar(&debug, "debug", false, "print full error context (stack-wrapped causes)")
	scriptPath := flag.String("script", "", "replay commands from `file` instead of reading the keyboard")
	propagateStoring := flag.Bool("propagate-storing-writes", true, "enqueue Increase/Decrease on a StoringBlock's own children when it latches")
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, path := args[0], args[1]
	var err error
	switch cmd {
	case "compile":
		err = compiler.Compile(path)
	case "run":
		err = runCommand(path, *scriptPath, *propagateStoring)
	case "dump":
		err = dumpCommand(path)
	default:
		usage()
		os.Exit(2)
	}
	atExit(err)
}

func loadGraph(path string, propagateStoring bool) (*vm.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	g, err := vm.Load(f, vm.PropagateStoringBlockWrites(propagateStoring))
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	glog.Infof("cmd/pomme: loaded %d nodes from %s", g.Len(), path)
	return g, nil
}

func runCommand(path, scriptPath string, propagateStoring bool) error {
	g, err := loadGraph(path, propagateStoring)
	if err != nil {
		return err
	}
	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			return errors.Wrapf(err, "opening %s", scriptPath)
		}
		defer f.Close()
		return runScript(g, f, os.Stdout)
	}
	return runREPL(g, os.Stdout)
}

func dumpCommand(path string) error {
	g, err := loadGraph(path, true)
	if err != nil {
		return err
	}
	return pommedump.DumpGraph(g, os.Stdout)
}
