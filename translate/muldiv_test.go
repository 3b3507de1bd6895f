package translate

import (
	"testing"

	"github.com/go-xtensa/tcg/ir"
)

// Divides must emit the divide-by-zero check (brcondi + raiseCause's
// call_helper) strictly before the divide op itself (spec section 4.5).
func TestDivideChecksZeroBeforeDividing(t *testing.T) {
	divKinds := map[string]bool{"div": true, "divu": true, "rem": true, "remu": true}
	ops := []DivOp{DivQuoU, DivQuoS, DivRemU, DivRemS}

	for _, op := range ops {
		r := ir.NewRecorder()
		tc := newTestContext(nil)
		emitDivide(tc, r, op, 4, 5, 6)

		brIdx, divIdx := -1, -1
		for i, o := range r.Ops {
			if o.Kind == "brcondi" && brIdx == -1 {
				brIdx = i
			}
			if divKinds[o.Kind] && divIdx == -1 {
				divIdx = i
			}
		}
		if brIdx == -1 {
			t.Fatalf("op=%v: no brcondi zero-check emitted", op)
		}
		if divIdx == -1 {
			t.Fatalf("op=%v: no divide op emitted", op)
		}
		if !(brIdx < divIdx) {
			t.Errorf("op=%v: zero-check at %d, divide at %d, want check before divide", op, brIdx, divIdx)
		}
	}
}

func TestDivideSelectsCorrectOp(t *testing.T) {
	cases := []struct {
		op   DivOp
		want string
	}{
		{DivQuoU, "divu"},
		{DivQuoS, "div"},
		{DivRemU, "remu"},
		{DivRemS, "rem"},
	}
	for _, c := range cases {
		r := ir.NewRecorder()
		tc := newTestContext(nil)
		emitDivide(tc, r, c.op, 4, 5, 6)
		if got := r.Count(c.want); got != 1 {
			t.Errorf("op=%v: count(%q) = %d, want 1", c.op, c.want, got)
		}
	}
}

// MULUH/MULSH take the high 32 bits of a 64-bit product (spec section
// 4.5: "high 32 via 64-bit extend").
func TestMulhExtendsTo64Bits(t *testing.T) {
	r := ir.NewRecorder()
	tc := newTestContext(nil)
	emitMulh(tc, r, true, 4, 5, 6)

	if got := r.Count("exti32i64s"); got != 2 {
		t.Errorf("exti32i64s count = %d, want 2 for signed MULSH", got)
	}
	if got := r.Count("shri"); got != 1 {
		t.Errorf("shri count = %d, want 1", got)
	}
	if got := r.Count("trunci64i32"); got != 1 {
		t.Errorf("trunci64i32 count = %d, want 1", got)
	}
}

func TestMul16SignedVsUnsigned(t *testing.T) {
	r := ir.NewRecorder()
	tc := newTestContext(nil)
	emitMul16(tc, r, false, 4, 5, 6)
	if got := r.Count("ext16u"); got != 2 {
		t.Errorf("ext16u count = %d, want 2 for MUL16U", got)
	}
	if got := r.Count("ext16s"); got != 0 {
		t.Errorf("ext16s count = %d, want 0 for MUL16U", got)
	}
}
