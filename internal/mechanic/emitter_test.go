package mechanic

import (
	"errors"
	"testing"
)

func TestBufferPreservesEmitOrder(t *testing.T) {
	buf := NewBuffer[int]()
	for i := 0; i < 10; i++ {
		buf.Emit(i)
	}

	drained := buf.Drain()
	if len(drained) != 10 {
		t.Fatalf("expected 10 events, got %d", len(drained))
	}
	for i, v := range drained {
		if v != i {
			t.Fatalf("expected event %d at position %d, got %d", i, i, v)
		}
	}
}

func TestBufferDrainResets(t *testing.T) {
	buf := NewBuffer[string]()
	buf.Emit("a")

	if got := buf.Drain(); len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got := buf.Drain(); got != nil {
		t.Fatalf("expected nil after drain, got %v", got)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected empty buffer, got %d", buf.Len())
	}
}

func TestBufferDiscard(t *testing.T) {
	buf := NewBuffer[string]()
	buf.Emit("a")
	buf.Emit("b")
	buf.Discard()

	if buf.Len() != 0 {
		t.Fatalf("expected empty buffer after discard, got %d", buf.Len())
	}
}

func TestRegistryRegisterAndDescribeBasic(t *testing.T) {
	reg := NewRegistry()
	desc := Descriptor{
		Domain: "combat",
		Inputs: []string{"attack"},
		Events: []string{"damage_dealt", "defeated"},
	}
	if err := reg.Register(desc); err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := reg.Describe("combat")
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if got.Domain != "combat" || len(got.Events) != 2 {
		t.Fatalf("unexpected descriptor: %+v", got)
	}
}

func TestRegistryRejectsDuplicateRegistration(t *testing.T) {
	reg := NewRegistry()
	desc := Descriptor{Domain: "combat", Inputs: []string{"attack"}, Events: []string{"damage_dealt"}}
	if err := reg.Register(desc); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(desc); !errors.Is(err, ErrDuplicateDomain) {
		t.Fatalf("expected ErrDuplicateDomain, got %v", err)
	}
}

func TestRegistryRejectsInvalidVariants(t *testing.T) {
	tests := []struct {
		name string
		desc Descriptor
	}{
		{name: "empty domain", desc: Descriptor{Domain: " "}},
		{name: "empty event name", desc: Descriptor{Domain: "combat", Events: []string{""}}},
		{name: "duplicate input name", desc: Descriptor{Domain: "combat", Inputs: []string{"attack", "attack"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewRegistry().Register(tt.desc); !errors.Is(err, ErrInvalidVariant) {
				t.Fatalf("expected ErrInvalidVariant, got %v", err)
			}
		})
	}
}

func TestRegistryDomainsSortedOrder(t *testing.T) {
	reg := NewRegistry()
	for _, domain := range []string{"reputation", "combat", "exchange"} {
		if err := reg.Register(Descriptor{Domain: domain, Events: []string{"e"}}); err != nil {
			t.Fatalf("register %s: %v", domain, err)
		}
	}

	domains := reg.Domains()
	want := []string{"combat", "exchange", "reputation"}
	for i, domain := range want {
		if domains[i] != domain {
			t.Fatalf("expected %v, got %v", want, domains)
		}
	}
}
