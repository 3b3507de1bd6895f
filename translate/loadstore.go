/*
   Xtensa TCG translator - guest memory access forms (C5)

   Copyright 2026, Xtensa TCG Contributors

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

package translate

import "github.com/go-xtensa/tcg/ir"

// genLoadStoreAlignment is the reusable alignment emitter shared by
// every 16- and 32-bit load/store (SPEC_FULL.md: "a single reusable
// emitter ... not duplicated per opcode"). It always clears the
// low address bits before the access; when UNALIGNED_EXCEPTION is
// enabled it additionally raises LOAD_STORE_ALIGNMENT_CAUSE carrying
// the pre-masked virtual address (spec section 4.5).
func genLoadStoreAlignment(tc *TranslationContext, b ir.Builder, addr ir.Value, size uint) ir.Value {
	if size <= 1 {
		return addr
	}
	maskBits := int64(size - 1)
	masked := b.NewTemp(ir.I32, ir.TempTransient)
	b.And(masked, addr, constTemp(b, ^maskBits))

	if tc.Config.Options.Has(OptUnalignedException) {
		aligned := b.NewLabel()
		b.BrCond(aligned, ir.CondEQ, addr, masked)
		raiseCauseVaddr(b, tc.PC, LoadStoreAlignmentCause, addr)
		b.SetLabel(aligned)
	}
	return masked
}

// computeAddr builds RS + imm8*scale, the common address form for
// L8UI/L16UI/L16SI/L32I/S8I/S16I/S32I/S32C1I.
func computeAddr(b ir.Builder, s uint8, imm8 uint8, scale uint) ir.Value {
	sv := readReg(b, s)
	addr := b.NewTemp(ir.I32, ir.TempTransient)
	b.Add(addr, sv, constTemp(b, int64(imm8)*int64(scale)))
	return addr
}

func emitL8ui(tc *TranslationContext, b ir.Builder, t, s uint8, imm8 uint8) {
	tc.check2(b, t, s)
	addr := computeAddr(b, s, imm8, 1)
	dst := b.NewTemp(ir.I32, ir.TempTransient)
	b.QemuLd8U(dst, addr)
	writeReg(b, t, dst)
}

func emitL16(tc *TranslationContext, b ir.Builder, signed bool, t, s uint8, imm8 uint8) {
	tc.check2(b, t, s)
	addr := computeAddr(b, s, imm8, 2)
	addr = genLoadStoreAlignment(tc, b, addr, 2)
	dst := b.NewTemp(ir.I32, ir.TempTransient)
	if signed {
		b.QemuLd16S(dst, addr)
	} else {
		b.QemuLd16U(dst, addr)
	}
	writeReg(b, t, dst)
}

func emitL32i(tc *TranslationContext, b ir.Builder, t, s uint8, imm8 uint8) {
	tc.check2(b, t, s)
	addr := computeAddr(b, s, imm8, 4)
	addr = genLoadStoreAlignment(tc, b, addr, 4)
	dst := b.NewTemp(ir.I32, ir.TempTransient)
	b.QemuLd32U(dst, addr)
	writeReg(b, t, dst)
}

func emitS8i(tc *TranslationContext, b ir.Builder, t, s uint8, imm8 uint8) {
	tc.check2(b, t, s)
	addr := computeAddr(b, s, imm8, 1)
	tv := readReg(b, t)
	b.QemuSt8(tv, addr)
}

func emitS16i(tc *TranslationContext, b ir.Builder, t, s uint8, imm8 uint8) {
	tc.check2(b, t, s)
	addr := computeAddr(b, s, imm8, 2)
	addr = genLoadStoreAlignment(tc, b, addr, 2)
	tv := readReg(b, t)
	b.QemuSt16(tv, addr)
}

func emitS32i(tc *TranslationContext, b ir.Builder, t, s uint8, imm8 uint8) {
	tc.check2(b, t, s)
	addr := computeAddr(b, s, imm8, 4)
	addr = genLoadStoreAlignment(tc, b, addr, 4)
	tv := readReg(b, t)
	b.QemuSt32(tv, addr)
}

// emitL32r lowers L32R: addr = ((pc+3) & ~3) + (sign_ext(imm16)<<2) +
// 0xfffc0000, or under EXTENDED_L32R, LITBASE layered on top in place
// of the PC-relative base (spec section 4.5).
func emitL32r(tc *TranslationContext, b ir.Builder, t uint8, imm16 uint16) {
	offset := int64(int32(int16(imm16))) << 2
	var addr ir.Value
	if tc.Config.Options.Has(OptExtendedL32R) {
		litbase, ok := readSR(b, srLITBASE)
		if !ok {
			litbase = constTemp(b, 0)
		}
		addr = b.NewTemp(ir.I32, ir.TempTransient)
		b.Add(addr, litbase, constTemp(b, offset))
	} else {
		base := (int64(tc.PC) + 3) &^ 3
		addr = constTemp(b, base+offset+0xfffc0000)
	}
	dst := b.NewTemp(ir.I32, ir.TempTransient)
	b.QemuLd32U(dst, addr)
	writeReg(b, t, dst)
}

// emitS32c1i lowers S32C1I: a single-word compare-and-swap against
// SCOMPARE1 (spec section 4.5: "load [addr], compare to the input
// register snapshot, conditionally store"). RT holds both the
// candidate store value on entry and the memory's old value on exit,
// matching the architectural definition.
func emitS32c1i(tc *TranslationContext, b ir.Builder, t, s uint8, imm8 uint8) {
	tc.check2(b, t, s)
	addr := computeAddr(b, s, imm8, 4)
	addr = genLoadStoreAlignment(tc, b, addr, 4)

	old := b.NewTemp(ir.I32, ir.TempTransient)
	b.QemuLd32U(old, addr)

	scompare1, ok := readSR(b, srSCOMPARE1)
	if !ok {
		scompare1 = constTemp(b, 0)
	}
	tv := readReg(b, t)

	mismatch := b.NewLabel()
	b.BrCond(mismatch, ir.CondNE, old, scompare1)
	b.QemuSt32(tv, addr)
	b.SetLabel(mismatch)

	writeReg(b, t, old)
}

// emitCache lowers the CACHE subtree: every member is a no-op IR
// beyond the configuration gate already performed by the dispatcher
// (spec section 4.5: "all are no-op IR but must still pass
// configuration gating").
func emitCache() {}
