package vm

import "testing"

func mustLogic(t *testing.T, mask byte) *Node {
	t.Helper()
	n, err := NewLogicBlock(mask)
	if err != nil {
		t.Fatalf("NewLogicBlock(%#b): %v", mask, err)
	}
	return n
}

// TestOrOfTwoInputs covers scenario 1: two lamps feeding an OR gate.
func TestOrOfTwoInputs(t *testing.T) {
	g, err := New()
	if err != nil {
		t.Fatal(err)
	}
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(g.InsertNode(1, mustLogic(t, 0b11111)))
	must(g.InsertNode(2, mustLogic(t, 0b11111)))
	must(g.InsertNode(3, mustLogic(t, 0b00110)))
	must(g.InsertEdge(1, 3))
	must(g.InsertEdge(2, 3))
	must(g.Init())

	n3, err := g.GetNode(3)
	must(err)
	if !n3.IsOn() {
		t.Errorf("node 3 should be on")
	}
	if n3.Value() != 2 {
		t.Errorf("node 3 value = %d, want 2", n3.Value())
	}
}

// TestAndOfTwoInputsOneOff covers scenario 2.
func TestAndOfTwoInputsOneOff(t *testing.T) {
	g, err := New()
	if err != nil {
		t.Fatal(err)
	}
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(g.InsertNode(1, mustLogic(t, 0b11111)))
	must(g.InsertNode(2, mustLogic(t, 0b00000)))
	must(g.InsertNode(3, mustLogic(t, 0b00100)))
	must(g.InsertEdge(1, 3))
	must(g.InsertEdge(2, 3))
	must(g.Init())

	n3, err := g.GetNode(3)
	must(err)
	if n3.IsOn() {
		t.Errorf("node 3 should be off")
	}
	if n3.Value() != 1 {
		t.Errorf("node 3 value = %d, want 1", n3.Value())
	}
}

// TestLatchedStoringBlock covers scenario 3.
func TestLatchedStoringBlock(t *testing.T) {
	g, err := New()
	if err != nil {
		t.Fatal(err)
	}
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(g.InsertNode(1, mustLogic(t, 0b00000))) // rock, toggled as input
	must(g.InsertNode(2, mustLogic(t, 0b11111)))
	must(g.InsertNode(3, mustLogic(t, 0b00100))) // AND of 1,2
	must(g.InsertNode(4, mustLogic(t, 0b11111))) // button, starts on... but scenario needs it toggled too.
	must(g.InsertNode(5, NewStoringBlock(false, 3, 4)))
	must(g.InsertEdge(1, 3))
	must(g.InsertEdge(2, 3))
	must(g.InsertEdge(3, 5))
	must(g.InsertButtonEdge(4, 5))
	must(g.Init())

	get := func(id ID) *Node {
		n, err := g.GetNode(id)
		must(err)
		return n
	}

	if get(5).IsOn() {
		t.Fatalf("node 5 should start off")
	}

	must(g.TurnOn(1))
	must(g.ApplyChanges())
	if !get(5).IsOn() {
		t.Errorf("after turn_on(1), node 5 should latch on")
	}

	must(g.TurnOff(1))
	must(g.TurnOff(4))
	must(g.ApplyChanges())
	if !get(5).IsOn() {
		t.Errorf("with button off, node 5 should hold its value")
	}

	must(g.TurnOn(4))
	must(g.ApplyChanges())
	if get(5).IsOn() {
		t.Errorf("after turn_on(4) resamples source (now off), node 5 should be off")
	}
}

func TestTurnOnMisuseOnNonRock(t *testing.T) {
	g, err := New()
	if err != nil {
		t.Fatal(err)
	}
	n := mustLogic(t, 0b11111)
	if err := g.InsertNode(1, n); err != nil {
		t.Fatal(err)
	}
	if err := g.Init(); err != nil {
		t.Fatal(err)
	}
	if err := g.TurnOn(1); err == nil {
		t.Fatal("TurnOn on a lamp should be a misuse error")
	} else if _, ok := err.(*MisuseError); !ok {
		t.Errorf("expected *MisuseError, got %T", err)
	}
}

func TestInsertEdgeRejectsStoringToStoring(t *testing.T) {
	g, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if err := g.InsertNode(1, mustLogic(t, 0b11111)); err != nil {
		t.Fatal(err)
	}
	if err := g.InsertNode(2, NewStoringBlock(false, 1, 1)); err != nil {
		t.Fatal(err)
	}
	if err := g.InsertNode(3, NewStoringBlock(false, 1, 1)); err != nil {
		t.Fatal(err)
	}
	if err := g.InsertEdge(2, 3); err == nil {
		t.Fatal("linking two StoringBlocks should be a schema error")
	} else if _, ok := err.(*SchemaError); !ok {
		t.Errorf("expected *SchemaError, got %T", err)
	}
}

func TestInsertNodeRejectsDuplicateID(t *testing.T) {
	g, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if err := g.InsertNode(1, mustLogic(t, 0)); err != nil {
		t.Fatal(err)
	}
	if err := g.InsertNode(1, mustLogic(t, 0)); err == nil {
		t.Fatal("duplicate node id should be a schema error")
	}
}
