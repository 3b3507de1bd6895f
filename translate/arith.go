/*
   Xtensa TCG translator - arithmetic, logical and conditional-move forms (C5)

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

// ArithOp names the straight three-operand RRR forms of spec section
// 4.5's arithmetic/logical bullet.
type ArithOp int

const (
	OpAnd ArithOp = iota
	OpOr
	OpXor
	OpAdd
	OpAddX2
	OpAddX4
	OpAddX8
	OpSub
	OpSubX2
	OpSubX4
	OpSubX8
)

// emitArith lowers AND/OR/XOR/ADD/ADDx2/4/8/SUB/SUBx2/4/8: three-operand
// IR after check3 validates R, S, T all lie in mapped window quarters.
func emitArith(tc *TranslationContext, b ir.Builder, op ArithOp, r, s, t uint8) {
	tc.check3(b, r, s, t)
	sv, tv := readReg(b, s), readReg(b, t)
	dst := b.NewTemp(ir.I32, ir.TempTransient)
	switch op {
	case OpAnd:
		b.And(dst, sv, tv)
	case OpOr:
		b.Or(dst, sv, tv)
	case OpXor:
		b.Xor(dst, sv, tv)
	case OpAdd:
		b.Add(dst, sv, tv)
	case OpSub:
		b.Sub(dst, sv, tv)
	case OpAddX2, OpAddX4, OpAddX8, OpSubX2, OpSubX4, OpSubX8:
		shift := map[ArithOp]uint{OpAddX2: 1, OpAddX4: 2, OpAddX8: 3, OpSubX2: 1, OpSubX4: 2, OpSubX8: 3}[op]
		scaled := b.NewTemp(ir.I32, ir.TempTransient)
		b.ShlI(scaled, sv, shift)
		if op == OpAddX2 || op == OpAddX4 || op == OpAddX8 {
			b.Add(dst, scaled, tv)
		} else {
			b.Sub(dst, scaled, tv)
		}
	}
	writeReg(b, r, dst)
}

// emitNeg lowers NEG: dst = 0 - t.
func emitNeg(tc *TranslationContext, b ir.Builder, r, t uint8) {
	tc.check2(b, r, t)
	zero := constTemp(b, 0)
	tv := readReg(b, t)
	dst := b.NewTemp(ir.I32, ir.TempTransient)
	b.Sub(dst, zero, tv)
	writeReg(b, r, dst)
}

// emitAbs lowers ABS via a conditional negate over a local label (spec
// section 4.5: "ABS uses a conditional negate via a local label").
func emitAbs(tc *TranslationContext, b ir.Builder, r, t uint8) {
	tc.check2(b, r, t)
	tv := readReg(b, t)
	dst := b.NewTemp(ir.I32, ir.TempTransient)
	b.Mov(dst, tv)
	nonneg := b.NewLabel()
	b.BrCondI(nonneg, ir.CondGE, tv, 0)
	zero := constTemp(b, 0)
	b.Sub(dst, zero, tv)
	b.SetLabel(nonneg)
	writeReg(b, r, dst)
}

// CondMoveKind selects MOVEQZ/MOVNEZ/MOVLTZ/MOVGEZ's predicate.
type CondMoveKind int

const (
	MoveEqZ CondMoveKind = iota
	MoveNeZ
	MoveLtZ
	MoveGeZ
)

// emitCondMove lowers MOVEQZ/NEZ/LTZ/GEZ: if the predicate holds on RT,
// copy RS into RR, else RR is left untouched (spec section 4.5: "the
// emitter never clobbers RR" when the predicate is false).
func emitCondMove(tc *TranslationContext, b ir.Builder, kind CondMoveKind, r, s, t uint8) {
	tc.check3(b, r, s, t)
	tv := readReg(b, t)
	skip := b.NewLabel()
	var cond ir.Cond
	switch kind {
	case MoveEqZ:
		cond = ir.CondNE
	case MoveNeZ:
		cond = ir.CondEQ
	case MoveLtZ:
		cond = ir.CondGE
	case MoveGeZ:
		cond = ir.CondLT
	}
	b.BrCondI(skip, cond, tv, 0)
	sv := readReg(b, s)
	writeReg(b, r, sv)
	b.SetLabel(skip)
}

// emitMinMax lowers MIN/MAX/MINU/MAXU as a conditional move between RS
// and RT into RR.
func emitMinMax(tc *TranslationContext, b ir.Builder, cond ir.Cond, r, s, t uint8) {
	tc.check3(b, r, s, t)
	sv, tv := readReg(b, s), readReg(b, t)
	dst := b.NewTemp(ir.I32, ir.TempTransient)
	b.Mov(dst, sv)
	useT := b.NewLabel()
	b.BrCond(useT, cond, sv, tv)
	b.Mov(dst, tv)
	b.SetLabel(useT)
	writeReg(b, r, dst)
}

// emitMovi lowers MOVI: sign-extended 12-bit immediate, imm = imm8 |
// S<<8, sign bit = S&8 (spec section 4.5).
func emitMovi(b ir.Builder, t, s, imm8 uint8) {
	raw := int32(imm8) | int32(s)<<8
	imm := signExtend(raw, 12)
	dst := constTemp(b, int64(imm))
	writeReg(b, t, dst)
}

// emitAddi lowers ADDI: RT = RS + sign_ext8(imm8).
func emitAddi(tc *TranslationContext, b ir.Builder, t, s uint8, imm8SE int32) {
	tc.check2(b, t, s)
	sv := readReg(b, s)
	dst := b.NewTemp(ir.I32, ir.TempTransient)
	b.Add(dst, sv, constTemp(b, int64(imm8SE)))
	writeReg(b, t, dst)
}

// emitAddmi lowers ADDMI: RT = RS + (sign_ext8(imm8) << 8) (spec
// section 4.5: "ADDMI shifting by 8").
func emitAddmi(tc *TranslationContext, b ir.Builder, t, s uint8, imm8SE int32) {
	tc.check2(b, t, s)
	sv := readReg(b, s)
	dst := b.NewTemp(ir.I32, ir.TempTransient)
	b.Add(dst, sv, constTemp(b, int64(imm8SE)<<8))
	writeReg(b, t, dst)
}
