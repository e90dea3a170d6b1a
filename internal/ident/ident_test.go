package ident

import "testing"

func TestDecodeEncodeRoundTrip(t *testing.T) {
	cases := []struct {
		id string
		n  int
	}{
		{"A", 1},
		{"Z", 26},
		{"AA", 27},
		{"AZ", 1 + 26*26},
		{"BA", 28},
	}
	for _, c := range cases {
		n, err := Decode(c.id)
		if err != nil {
			t.Fatalf("Decode(%q): %v", c.id, err)
		}
		if n != c.n {
			t.Errorf("Decode(%q) = %d, want %d", c.id, n, c.n)
		}
		id := Encode(c.n)
		if id != c.id {
			t.Errorf("Encode(%d) = %q, want %q", c.n, id, c.id)
		}
	}
}

func TestEncodeDecodeIdentity(t *testing.T) {
	for n := 1; n < 2000; n++ {
		id := Encode(n)
		got, err := Decode(id)
		if err != nil {
			t.Fatalf("Decode(Encode(%d)=%q): %v", n, id, err)
		}
		if got != n {
			t.Errorf("Decode(Encode(%d)) = %d", n, got)
		}
	}
}

func TestEncodeZero(t *testing.T) {
	if got := Encode(0); got != "" {
		t.Errorf("Encode(0) = %q, want empty", got)
	}
}

func TestIncr(t *testing.T) {
	cases := []struct{ in, out string }{
		{"A", "B"},
		{"Y", "Z"},
		{"Z", "AA"},
		{"AA", "BA"},
		{"BZ", "CZ"},
	}
	for _, c := range cases {
		got, err := Incr(c.in)
		if err != nil {
			t.Fatalf("Incr(%q): %v", c.in, err)
		}
		if got != c.out {
			t.Errorf("Incr(%q) = %q, want %q", c.in, got, c.out)
		}
	}
}

func TestIncrIteratedReachesEnd(t *testing.T) {
	a, b := "A", "Z"
	na, _ := Decode(a)
	nb, _ := Decode(b)
	cur := a
	for i := 0; i < nb-na; i++ {
		var err error
		cur, err = Incr(cur)
		if err != nil {
			t.Fatalf("Incr: %v", err)
		}
	}
	if cur != b {
		t.Errorf("iterated Incr from %q %d times = %q, want %q", a, nb-na, cur, b)
	}
}

func TestRange(t *testing.T) {
	got, err := Range("A", "E")
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	want := []string{"A", "B", "C", "D", "E"}
	if len(got) != len(want) {
		t.Fatalf("Range(A,E) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Range(A,E)[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRangeSingleton(t *testing.T) {
	got, err := Range("C", "C")
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if len(got) != 1 || got[0] != "C" {
		t.Errorf("Range(C,C) = %v, want [C]", got)
	}
}

func TestRangeUnreachableRejected(t *testing.T) {
	_, err := Range("B", "A")
	if err == nil {
		t.Fatal("Range(B,A) should be rejected, not loop forever")
	}
}

func TestValid(t *testing.T) {
	for _, id := range []string{"A", "ZZZ", "ABCDEF"} {
		if !Valid(id) {
			t.Errorf("Valid(%q) = false, want true", id)
		}
	}
	for _, id := range []string{"", "a", "A1", "$X", "A B"} {
		if Valid(id) {
			t.Errorf("Valid(%q) = true, want false", id)
		}
	}
}
