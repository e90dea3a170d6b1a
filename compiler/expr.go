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

	"github.com/pommeJedusor/pomme/internal/ident"
)

// env is the variable binding stack maintained by the links analyser's loop
// expansion: variable name (without '$') -> currently bound identifier.
type env map[string]string

// evalExpr evaluates a links-section expression (spec.md §3): a bare
// identifier, a variable reference "$x", or a summation "$x(a+b+...)".
func evalExpr(expr string, e env) (string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", errors.New("empty expression")
	}
	if expr[0] == '$' {
		if open := strings.IndexByte(expr, '('); open >= 0 {
			if !strings.HasSuffix(expr, ")") {
				return "", errors.Errorf("malformed summation expression %q", expr)
			}
			sum := expr[open+1 : len(expr)-1]
			return evalSum(sum, e)
		}
		name := expr[1:]
		v, ok := e[name]
		if !ok {
			return "", errors.Errorf("unbound variable %q", expr)
		}
		return v, nil
	}
	if !ident.Valid(expr) {
		return "", errors.Errorf("invalid identifier %q", expr)
	}
	return expr, nil
}

// evalSum evaluates the body of a summation expression: each '+'-separated
// term is resolved to an identifier, decoded, summed, and the total
// re-encoded (spec.md §4.2's eval_sum).
func evalSum(sum string, e env) (string, error) {
	terms := strings.Split(sum, "+")
	total := 0
	for _, raw := range terms {
		term := strings.TrimSpace(raw)
		if term == "" {
			return "", errors.Errorf("empty term in summation %q", sum)
		}
		resolved, err := evalTerm(term, e)
		if err != nil {
			return "", errors.Wrapf(err, "summation %q", sum)
		}
		n, err := ident.Decode(resolved)
		if err != nil {
			return "", errors.Wrapf(err, "summation %q", sum)
		}
		total += n
	}
	return ident.Encode(total), nil
}

// evalTerm resolves one summation term to a concrete identifier: a bare ID,
// a "$var" reference, or — per spec.md §9's documented sugar — a bare
// lowercase token that case-insensitively names a currently bound variable
// (scenario 5's "$i(i+B)" writes "i" in place of "$i").
func evalTerm(term string, e env) (string, error) {
	if term[0] == '$' {
		name := term[1:]
		v, ok := e[name]
		if !ok {
			return "", errors.Errorf("unbound variable %q", term)
		}
		return v, nil
	}
	if ident.Valid(term) {
		return term, nil
	}
	for name, v := range e {
		if strings.EqualFold(name, term) {
			return v, nil
		}
	}
	return "", errors.Errorf("term %q is neither a valid identifier nor a bound variable", term)
}

// evalCond evaluates a links-section condition (spec.md §4.4): "not COND",
// or "A == B" with A and B expressions compared as identifier strings.
func evalCond(cond string, e env) (bool, error) {
	cond = strings.TrimSpace(cond)
	if len(cond) >= 3 && strings.EqualFold(cond[:3], "not") && (len(cond) == 3 || cond[3] == ' ') {
		inner, err := evalCond(cond[3:], e)
		if err != nil {
			return false, err
		}
		return !inner, nil
	}
	idx := strings.Index(cond, "==")
	if idx < 0 {
		return false, errors.Errorf("malformed condition %q", cond)
	}
	lhs, err := evalExpr(cond[:idx], e)
	if err != nil {
		return false, errors.Wrapf(err, "condition %q", cond)
	}
	rhs, err := evalExpr(cond[idx+2:], e)
	if err != nil {
		return false, errors.Wrapf(err, "condition %q", cond)
	}
	return lhs == rhs, nil
}
