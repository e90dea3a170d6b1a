package vm

import (
	"strings"
	"testing"
)

func TestLoadLogicBlocksAndEdges(t *testing.T) {
	src := "1 11111 3\n2 11111 3\n3 00110\n"
	g, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	n3, err := g.GetNode(3)
	if err != nil {
		t.Fatal(err)
	}
	if !n3.IsOn() {
		t.Errorf("node 3 should be on after load")
	}
	if n3.Value() != 2 {
		t.Errorf("node 3 value = %d, want 2", n3.Value())
	}
}

func TestLoadStoringBlockLine(t *testing.T) {
	src := "1 00000\n2 11111\n3 00100 1 2\n4 11111\n^5 4 3\n"
	g, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	n5, err := g.GetNode(5)
	if err != nil {
		t.Fatal(err)
	}
	if n5.Kind != KindStoring {
		t.Fatalf("node 5 kind = %v, want KindStoring", n5.Kind)
	}
	if n5.Source != 3 || n5.Button != 4 {
		t.Errorf("node 5 source/button = %d/%d, want 3/4", n5.Source, n5.Button)
	}
}

func TestLoadRejectsUnparseableLine(t *testing.T) {
	if _, err := Load(strings.NewReader("not a valid line at all ???\n")); err == nil {
		t.Fatal("Load should reject an unparseable line")
	}
}

func TestLoadRejectsBadMaskWidth(t *testing.T) {
	if _, err := Load(strings.NewReader("1 111\n")); err == nil {
		t.Fatal("Load should reject a mask that isn't 5 characters")
	}
}

func TestLoadRejectsDanglingChildReference(t *testing.T) {
	if _, err := Load(strings.NewReader("1 11111 7\n")); err == nil {
		t.Fatal("Load should reject a child id that was never declared")
	}
}
