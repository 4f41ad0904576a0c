package uct

import "testing"

func TestInterfaceFlagHasAllAndFirstMissing(t *testing.T) {
	have := AMBcopy | CBSync
	if !have.HasAll(AMBcopy) {
		t.Fatalf("expected HasAll(AMBcopy) to be true")
	}
	if have.HasAll(AMBcopy | PutShort) {
		t.Fatalf("expected HasAll to fail when PutShort is missing")
	}
	name, missing := have.FirstMissing(AMBcopy | PutShort | GetShort)
	if !missing {
		t.Fatalf("expected a missing flag")
	}
	if name != "put short" {
		t.Fatalf("expected the lowest-order missing bit to be reported first, got %q", name)
	}
}

func TestMDFlagFirstMissing(t *testing.T) {
	have := MDAlloc
	name, missing := have.FirstMissing(MDAlloc | MDReg)
	if !missing || name != "memory registration" {
		t.Fatalf("expected missing=true name=memory registration, got missing=%v name=%q", missing, name)
	}
	if _, missing := have.FirstMissing(MDAlloc); missing {
		t.Fatalf("expected no missing flags")
	}
}

func TestAtomicCapabilitiesHasAllAndFirstMissing(t *testing.T) {
	have := AtomicCapabilities{Op32: AtomicAdd, Fop64: AtomicCswap}
	need := AtomicCapabilities{Op32: AtomicAdd}
	if !have.HasAll(need) {
		t.Fatalf("expected HasAll to succeed on a subset requirement")
	}

	need2 := AtomicCapabilities{Op64: AtomicAdd}
	if have.HasAll(need2) {
		t.Fatalf("expected HasAll to fail when 64-bit add is missing")
	}
	desc, missing := have.FirstMissing(need2)
	if !missing {
		t.Fatalf("expected a missing atomic requirement")
	}
	if desc != "64-bit atomic add" {
		t.Fatalf("unexpected description: %q", desc)
	}
}

func TestAtomicCapabilitiesIsZero(t *testing.T) {
	var zero AtomicCapabilities
	if !zero.IsZero() {
		t.Fatalf("expected the zero value to report IsZero")
	}
	nonZero := AtomicCapabilities{Fop32: AtomicSwap}
	if nonZero.IsZero() {
		t.Fatalf("expected a non-zero atomic requirement to report false")
	}
}
