/*
   Xtensa TCG translator - multiply and divide forms (C5)

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

// emitMul16 lowers MUL16U/MUL16S: mask (zero- or sign-extend) both
// 16-bit halves, multiply, store the 32-bit product (spec section 4.5).
func emitMul16(tc *TranslationContext, b ir.Builder, signed bool, r, s, t uint8) {
	tc.check3(b, r, s, t)
	sv, tv := readReg(b, s), readReg(b, t)
	sh, th := b.NewTemp(ir.I32, ir.TempTransient), b.NewTemp(ir.I32, ir.TempTransient)
	if signed {
		b.Ext16s(sh, sv)
		b.Ext16s(th, tv)
	} else {
		b.Ext16u(sh, sv)
		b.Ext16u(th, tv)
	}
	dst := b.NewTemp(ir.I32, ir.TempTransient)
	b.Mul(dst, sh, th)
	writeReg(b, r, dst)
}

// emitMull lowers MULL: the low 32 bits of a 32x32 product (spec
// section 4.5: "low 32 of 32x32").
func emitMull(tc *TranslationContext, b ir.Builder, r, s, t uint8) {
	tc.check3(b, r, s, t)
	sv, tv := readReg(b, s), readReg(b, t)
	dst := b.NewTemp(ir.I32, ir.TempTransient)
	b.Mul(dst, sv, tv)
	writeReg(b, r, dst)
}

// emitMulh lowers MULUH/MULSH: extend both operands to 64 bits (signed
// or unsigned), multiply, take the high 32 bits (spec section 4.5:
// "high 32 via 64-bit extend").
func emitMulh(tc *TranslationContext, b ir.Builder, signed bool, r, s, t uint8) {
	tc.check3(b, r, s, t)
	sv, tv := readReg(b, s), readReg(b, t)
	sw, tw := b.NewTemp(ir.I64, ir.TempTransient), b.NewTemp(ir.I64, ir.TempTransient)
	if signed {
		b.ExtI32I64S(sw, sv)
		b.ExtI32I64S(tw, tv)
	} else {
		b.ExtI32I64U(sw, sv)
		b.ExtI32I64U(tw, tv)
	}
	prod := b.NewTemp(ir.I64, ir.TempTransient)
	b.Mul(prod, sw, tw)
	hi := b.NewTemp(ir.I64, ir.TempTransient)
	b.ShrI(hi, prod, 32)
	dst := b.NewTemp(ir.I32, ir.TempTransient)
	b.TruncI64I32(dst, hi)
	writeReg(b, r, dst)
}

// DivOp selects QUOU/QUOS/REMU/REMS.
type DivOp int

const (
	DivQuoU DivOp = iota
	DivQuoS
	DivRemU
	DivRemS
)

// emitDivide lowers QUOU/QUOS/REMU/REMS, emitting the mandatory
// divide-by-zero check before the divide itself (spec section 4.5:
// "Divides must emit a divide-by-zero check branching to
// INTEGER_DIVIDE_BY_ZERO_CAUSE").
func emitDivide(tc *TranslationContext, b ir.Builder, op DivOp, r, s, t uint8) {
	tc.check3(b, r, s, t)
	sv, tv := readReg(b, s), readReg(b, t)
	nonzero := b.NewLabel()
	b.BrCondI(nonzero, ir.CondNE, tv, 0)
	raiseCause(b, tc.PC, IntegerDivideByZeroCause)
	b.SetLabel(nonzero)

	dst := b.NewTemp(ir.I32, ir.TempTransient)
	switch op {
	case DivQuoU:
		b.DivU(dst, sv, tv)
	case DivQuoS:
		b.Div(dst, sv, tv)
	case DivRemU:
		b.RemU(dst, sv, tv)
	case DivRemS:
		b.Rem(dst, sv, tv)
	}
	writeReg(b, r, dst)
}
