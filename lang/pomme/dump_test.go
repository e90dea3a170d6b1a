package pomme

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pommeJedusor/pomme/vm"
)

func TestDumpGraph(t *testing.T) {
	g, err := vm.Load(strings.NewReader("1 11111 3\n2 11111 3\n3 00110\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var buf bytes.Buffer
	if err := DumpGraph(g, &buf); err != nil {
		t.Fatalf("DumpGraph: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[2], "value=2") || !strings.Contains(lines[2], "on") {
		t.Errorf("line for node 3 = %q, want value=2 and on", lines[2])
	}
}
