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
	"strings"

	"github.com/pkg/errors"
)

var recognisedSections = map[string]bool{
	"inputs":  true,
	"outputs": true,
	"def":     true,
	"links":   true,
	"imports": true,
}

// rawLine is one surviving body line, with its original leading-space count
// preserved for the links analyser (spec.md §4.4).
type rawLine struct {
	indent int
	text   string // with leading spaces stripped
}

// section is one labelled chunk of source text (spec.md §4.1).
type section struct {
	name string
	body []rawLine
}

// splitSections implements the source sectioner (spec.md §4.1): split on
// three consecutive newlines (two blank lines), drop blank/comment lines,
// and require the first surviving line of each chunk to end with ':'.
func splitSections(src string) ([]section, error) {
	var out []section
	errs := &SchemaError{}
	chunks := strings.Split(src, "\n\n\n")
	for _, chunk := range chunks {
		lines := strings.Split(chunk, "\n")
		var surviving []rawLine
		for _, line := range lines {
			trimmed := strings.TrimLeft(line, " ")
			if trimmed == "" {
				continue
			}
			if trimmed[0] == '#' {
				continue
			}
			surviving = append(surviving, rawLine{
				indent: len(line) - len(trimmed),
				text:   trimmed,
			})
		}
		if len(surviving) == 0 {
			continue
		}
		header := surviving[0].text
		if !strings.HasSuffix(header, ":") {
			errs.Add(errors.Errorf("section header %q must end with ':'", header))
			continue
		}
		name := strings.TrimSuffix(header, ":")
		if !recognisedSections[name] {
			errs.Add(errors.Errorf("unknown section name %q", name))
			continue
		}
		out = append(out, section{name: name, body: surviving[1:]})
	}
	if errs.HasErrors() {
		return nil, errs
	}

	seen := map[string]bool{}
	for _, s := range out {
		if seen[s.name] {
			errs.Add(errors.Errorf("duplicate section %q", s.name))
		}
		seen[s.name] = true
	}
	for _, required := range []string{"inputs", "outputs", "def", "links"} {
		if !seen[required] {
			errs.Add(errors.Errorf("missing required section %q", required))
		}
	}
	return out, errs.AsError()
}

func findSection(sections []section, name string) (section, bool) {
	for _, s := range sections {
		if s.name == name {
			return s, true
		}
	}
	return section{}, false
}
