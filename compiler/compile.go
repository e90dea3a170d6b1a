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
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

var extensionMap = map[string]string{
	".pomme": ".pc",
	".bw":    ".bwc",
}

// OutputPath computes the object-file path for a source path by replacing
// its extension (spec.md §4.5): ".pomme" -> ".pc", ".bw" -> ".bwc". Any
// other extension is rejected.
func OutputPath(sourcePath string) (string, error) {
	for ext, out := range extensionMap {
		if strings.HasSuffix(sourcePath, ext) {
			return strings.TrimSuffix(sourcePath, ext) + out, nil
		}
	}
	return "", errors.Errorf("compiler: %q has no recognised source extension (.pomme, .bw)", sourcePath)
}

// CompileSource compiles source text into object-file text (spec.md §4),
// without touching the filesystem.
func CompileSource(src string) (string, error) {
	sections, err := splitSections(src)
	if err != nil {
		return "", err
	}
	table, err := buildNodeTable(sections)
	if err != nil {
		return "", err
	}
	linksSection, _ := findSection(sections, "links")
	edges, err := analyseLinks(linksSection.body)
	if err != nil {
		return "", err
	}
	glog.V(1).Infof("compiler: %d nodes, %d edges", len(table.ids), len(edges))

	var sb strings.Builder
	if err := emit(&sb, table, edges); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Compile reads the source file at path, compiles it, and writes the
// resulting object file alongside it with the extension rewritten
// (spec.md §6's `compile(path)` entry point).
func Compile(path string) error {
	out, err := OutputPath(path)
	if err != nil {
		return err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	object, err := CompileSource(string(src))
	if err != nil {
		return errors.Wrapf(err, "compiling %s", path)
	}
	if err := os.WriteFile(out, []byte(object), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", out)
	}
	glog.Infof("compiler: wrote %s", out)
	return nil
}
