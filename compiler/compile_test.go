package compiler

import (
	"strings"
	"testing"
)

func TestCompileSourceOrOfTwoInputs(t *testing.T) {
	src := `inputs:
A
B


outputs:
C -> C 1,2


def:


links:
A -> C
B -> C
`
	out, err := CompileSource(src)
	if err != nil {
		t.Fatalf("CompileSource: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 object lines, got %d: %q", len(lines), out)
	}
	if lines[2] != "3 00110 " && lines[2] != "3 00110" {
		// node C has no outgoing children, so no trailing children tokens
		if !strings.HasPrefix(lines[2], "3 00110") {
			t.Errorf("line 3 = %q, want prefix \"3 00110\"", lines[2])
		}
	}
	if lines[0] != "1 00000 3" {
		t.Errorf("line 1 = %q, want \"1 00000 3\"", lines[0])
	}
	if lines[1] != "2 00000 3" {
		t.Errorf("line 2 = %q, want \"2 00000 3\"", lines[1])
	}
}

func TestCompileSourceRejectsUnknownSection(t *testing.T) {
	src := `inputs:
A


outputs:
B -> B 0


def:


bogus:
X


links:
A -> B
`
	if _, err := CompileSource(src); err == nil {
		t.Fatal("expected a schema error for an unknown section")
	}
}

func TestCompileSourceConditionalInclusion(t *testing.T) {
	src := `inputs:
A
B
C


outputs:
D -> D 0


def:


links:
for $x A C
    if $x == A
        $x -> D
`
	out, err := CompileSource(src)
	if err != nil {
		t.Fatalf("CompileSource: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// node A (index 1) should list D (index 4) exactly once.
	if !strings.HasPrefix(lines[0], "1 00000 4") {
		t.Errorf("line 1 = %q, want node A linking to D once", lines[0])
	}
	if strings.HasPrefix(lines[1], "2 00000 4") || strings.Contains(lines[1], " 4") {
		t.Errorf("line 2 (node B) should not link to D: %q", lines[1])
	}
}

func TestOutputPath(t *testing.T) {
	cases := map[string]string{
		"circuit.pomme": "circuit.pc",
		"a/b/c.bw":      "a/b/c.bwc",
	}
	for in, want := range cases {
		got, err := OutputPath(in)
		if err != nil {
			t.Fatalf("OutputPath(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("OutputPath(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := OutputPath("noext"); err == nil {
		t.Error("OutputPath should reject an unrecognised extension")
	}
}
