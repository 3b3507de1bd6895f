package translate

import (
	"testing"

	"github.com/go-xtensa/tcg/ir"
)

// tryLoopEndCheck must do nothing when pc isn't the block's snapshotted
// loop end (spec section 4.6).
func TestLoopEndCheckSkipsWhenNotLoopEnd(t *testing.T) {
	r := ir.NewRecorder()
	block := &Block{StartPC: 0x1000, LEnd: 0x2000}
	tc := NewTranslationContext(DefaultConfig(), block, 0x1000, false)

	if tryLoopEndCheck(tc, r, 0x1004) {
		t.Fatal("tryLoopEndCheck returned true for a pc that isn't LEnd")
	}
	if len(r.Ops) != 0 {
		t.Errorf("tryLoopEndCheck emitted ops for a non-loop-end pc, want none")
	}
}

// tryLoopEndCheck must do nothing when LOOP is disabled, even at the
// snapshotted loop end.
func TestLoopEndCheckSkipsWhenOptionDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Options = NewOptions(OptWindowedRegister, OptException)
	r := ir.NewRecorder()
	block := &Block{StartPC: 0x1000, LEnd: 0x1000}
	tc := NewTranslationContext(cfg, block, 0x1000, false)

	if tryLoopEndCheck(tc, r, 0x1000) {
		t.Fatal("tryLoopEndCheck returned true with LOOP disabled")
	}
	if len(r.Ops) != 0 {
		t.Errorf("tryLoopEndCheck emitted ops with LOOP disabled, want none")
	}
}

// At the loop end with LOOP enabled, the check terminates the block and
// emits exactly one loop-back jump chain (spec section 4.6).
func TestLoopEndCheckEmitsChainAtLoopEnd(t *testing.T) {
	r := ir.NewRecorder()
	block := &Block{StartPC: 0x1000, LEnd: 0x1000}
	tc := NewTranslationContext(DefaultConfig(), block, 0x1000, false)

	if !tryLoopEndCheck(tc, r, 0x1000) {
		t.Fatal("tryLoopEndCheck returned false at the snapshotted loop end")
	}
	// One jump back to LBEG (exit_tb via emitJumpReg) and one fallthrough
	// jump (exit_tb via emitJump): exactly two exit_tb in the chain.
	if got := r.Count("exit_tb"); got != 2 {
		t.Errorf("exit_tb count = %d, want 2 (loop-back + fallthrough)", got)
	}
}

// genCheckLoopEnd is a direct alias of tryLoopEndCheck for the
// per-instruction call site.
func TestGenCheckLoopEndDelegates(t *testing.T) {
	r := ir.NewRecorder()
	block := &Block{StartPC: 0x1000, LEnd: 0x1000}
	tc := NewTranslationContext(DefaultConfig(), block, 0x1000, false)

	if !genCheckLoopEnd(tc, r, 0x1000) {
		t.Fatal("genCheckLoopEnd returned false at the loop end")
	}
}

// jumpiCheckLoopEnd degrades to a plain jump when pc is not the loop
// end, rather than silently doing nothing (the conditional-branch
// fall-through must always terminate the block somehow).
func TestJumpiCheckLoopEndDegradesToPlainJump(t *testing.T) {
	r := ir.NewRecorder()
	block := &Block{StartPC: 0x1000, LEnd: 0x2000}
	tc := NewTranslationContext(DefaultConfig(), block, 0x1000, false)

	jumpiCheckLoopEnd(tc, r, 0x1004)

	if got := r.Count("exit_tb"); got != 1 {
		t.Errorf("exit_tb count = %d, want 1 (plain jump)", got)
	}
	if got := r.Count("write_global"); got != 1 {
		t.Errorf("write_global count = %d, want 1 (PC write)", got)
	}
}

// emitTimerTick increments CCOUNT and branches once per configured
// CCOMPARE register (spec section 4.7).
func TestTimerTickOneBranchPerCcompare(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NCCompare = 2
	r := ir.NewRecorder()
	block := &Block{StartPC: 0x1000}
	tc := NewTranslationContext(cfg, block, 0x1000, false)

	emitTimerTick(tc, r)

	if got := r.Count("brcond"); got != 2 {
		t.Errorf("brcond count = %d, want 2 for NCCompare=2", got)
	}
	if got := r.Count("call_helper"); got != 2 {
		t.Errorf("call_helper count = %d, want 2 (timer_irq per compare)", got)
	}
}

func TestTimerTickZeroCcompareNoBranches(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NCCompare = 0
	r := ir.NewRecorder()
	block := &Block{StartPC: 0x1000}
	tc := NewTranslationContext(cfg, block, 0x1000, false)

	emitTimerTick(tc, r)

	if got := r.Count("brcond"); got != 0 {
		t.Errorf("brcond count = %d, want 0 for NCCompare=0", got)
	}
}
