package translate

import (
	"testing"

	"github.com/go-xtensa/tcg/ir"
)

// S32C1I must load the old value, compare it to SCOMPARE1, and in
// either outcome leave RT holding the pre-swap memory value (spec
// section 4.5 CAS semantics). The conditional store must come after
// the load and the compare.
func TestS32C1ILoadCompareStoreOrder(t *testing.T) {
	r := ir.NewRecorder()
	tc := newTestContext(nil)

	emitS32c1i(tc, r, 4, 5, 0)

	var ldIdx, brIdx, stIdx, wbIdx int = -1, -1, -1, -1
	for i, o := range r.Ops {
		switch o.Kind {
		case "qemu_ld32u":
			if ldIdx == -1 {
				ldIdx = i
			}
		case "brcond":
			if brIdx == -1 {
				brIdx = i
			}
		case "qemu_st32":
			if stIdx == -1 {
				stIdx = i
			}
		case "write_global":
			// The last write_global of the sequence writes RT back
			// with the old value (writeReg(t, old)).
			wbIdx = i
		}
	}
	if ldIdx == -1 || brIdx == -1 || stIdx == -1 || wbIdx == -1 {
		t.Fatalf("missing expected op in sequence: %v", r.Kinds())
	}
	if !(ldIdx < brIdx && brIdx < stIdx && stIdx < wbIdx) {
		t.Errorf("want load < compare < store < writeback, got %d < %d < %d < %d",
			ldIdx, brIdx, stIdx, wbIdx)
	}
}

// Only one load and one conditional store are ever emitted, regardless
// of whether SCOMPARE1 is materialized.
func TestS32C1ISingleLoadSingleStore(t *testing.T) {
	r := ir.NewRecorder()
	tc := newTestContext(nil)
	emitS32c1i(tc, r, 4, 5, 0)

	if got := r.Count("qemu_ld32u"); got != 1 {
		t.Errorf("qemu_ld32u count = %d, want 1", got)
	}
	if got := r.Count("qemu_st32"); got != 1 {
		t.Errorf("qemu_st32 count = %d, want 1", got)
	}
}

// genLoadStoreAlignment masks the low bits unconditionally but only
// emits the alignment-fault branch when UNALIGNED_EXCEPTION is enabled
// (spec section 4.5).
func TestLoadStoreAlignmentGatedByOption(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Options = NewOptions(OptLoop, OptException) // no OptUnalignedException
	r := ir.NewRecorder()
	tc := newTestContext(cfg)
	addr := constTemp(r, 0x1000)

	genLoadStoreAlignment(tc, r, addr, 4)

	if got := r.Count("and"); got != 1 {
		t.Errorf("and count = %d, want 1 (mask always emitted)", got)
	}
	if got := r.Count("brcond"); got != 0 {
		t.Errorf("brcond count = %d, want 0 without UNALIGNED_EXCEPTION", got)
	}
}

func TestLoadStoreAlignmentEmitsFaultWhenEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Options = NewOptions(OptLoop, OptException, OptUnalignedException)
	r := ir.NewRecorder()
	tc := newTestContext(cfg)
	addr := constTemp(r, 0x1000)

	genLoadStoreAlignment(tc, r, addr, 4)

	if got := r.Count("brcond"); got != 1 {
		t.Errorf("brcond count = %d, want 1 with UNALIGNED_EXCEPTION", got)
	}
	if got := r.Count("call_helper"); got != 1 {
		t.Errorf("call_helper count = %d, want 1 (raiseCauseVaddr)", got)
	}
}

// 1-byte accesses never go through the alignment emitter at all.
func TestLoadStoreAlignmentSkipsByteAccess(t *testing.T) {
	r := ir.NewRecorder()
	tc := newTestContext(nil)
	addr := constTemp(r, 0x1000)
	before := len(r.Ops)

	got := genLoadStoreAlignment(tc, r, addr, 1)
	if got != addr {
		t.Errorf("genLoadStoreAlignment(size=1) returned a different value, want addr unchanged")
	}
	if len(r.Ops) != before {
		t.Errorf("genLoadStoreAlignment(size=1) emitted ops, want none")
	}
}
