package secd

import (
	"bytes"
	"strings"
	"testing"
)

func TestWritei(t *testing.T) {
	var out bytes.Buffer
	m, err := New(Output(&out))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Load([]Value{OpLdc, int64(42), OpWritei, OpStop}, nil); err != nil {
		t.Fatal(err)
	}
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "42\n" {
		t.Fatalf("output = %q, want %q", got, "42\n")
	}
}

func TestWritec(t *testing.T) {
	var out bytes.Buffer
	m, err := New(Output(&out))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Load([]Value{OpLdc, int64('A'), OpWritec, OpStop}, nil); err != nil {
		t.Fatal(err)
	}
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "A\n" {
		t.Fatalf("output = %q, want %q", got, "A\n")
	}
}

func TestReadi(t *testing.T) {
	in := strings.NewReader("  123  \n")
	m, err := New(Input(in))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Load([]Value{OpReadi, OpStop}, nil); err != nil {
		t.Fatal(err)
	}
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if got := top(t, m); got != int64(123) {
		t.Fatalf("top = %#v, want 123", got)
	}
}

func TestReadiMalformed(t *testing.T) {
	in := strings.NewReader("not a number\n")
	m, err := New(Input(in))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Load([]Value{OpReadi, OpStop}, nil); err != nil {
		t.Fatal(err)
	}
	if err := m.Run(); err == nil {
		t.Fatal("expected a malformed-integer error, got nil")
	}
}

func TestDebugTraceDoesNotAffectSemantics(t *testing.T) {
	var trace bytes.Buffer
	m, err := New(Debug(&trace))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Load([]Value{OpLdc, int64(5), OpLdc, int64(7), OpAdd, OpStop}, nil); err != nil {
		t.Fatal(err)
	}
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if got := top(t, m); got != int64(12) {
		t.Fatalf("top = %#v, want 12", got)
	}
	if trace.Len() == 0 {
		t.Fatal("expected trace output, got none")
	}
}
