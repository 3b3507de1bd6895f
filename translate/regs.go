/*
   Xtensa TCG translator - windowed register helpers

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

// readReg loads windowed register Rk into a fresh transient i32 temp.
func readReg(b ir.Builder, k uint8) ir.Value {
	v := b.NewTemp(ir.I32, ir.TempTransient)
	b.ReadGlobal(v, regGlobal(k))
	return v
}

// writeReg stores src into windowed register Rk.
func writeReg(b ir.Builder, k uint8, src ir.Value) {
	b.WriteGlobal(regGlobal(k), src)
}

// readSR loads a named SR into a fresh transient temp. Callers that
// already validated the SR is named (C4 handlers) use this instead of
// repeating the srGlobal/ok dance.
func readSR(b ir.Builder, sr uint8) (ir.Value, bool) {
	g, ok := srGlobal(sr)
	if !ok {
		return nil, false
	}
	v := b.NewTemp(ir.I32, ir.TempTransient)
	b.ReadGlobal(v, g)
	return v, true
}

func writeSR(b ir.Builder, sr uint8, src ir.Value) bool {
	g, ok := srGlobal(sr)
	if !ok {
		return false
	}
	b.WriteGlobal(g, src)
	return true
}

func readPC(b ir.Builder) ir.Value {
	v := b.NewTemp(ir.I32, ir.TempTransient)
	b.ReadGlobal(v, pcGlobal)
	return v
}

func writePC(b ir.Builder, src ir.Value) {
	b.WriteGlobal(pcGlobal, src)
}
