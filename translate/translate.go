/*
   Xtensa TCG translator - entry points and state dump

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

import (
	"fmt"
	"io"
	"sort"

	"github.com/kr/pretty"

	"github.com/go-xtensa/tcg/ir"
)

// ReadByte reads one guest-memory byte at addr (spec section 6:
// "reads opcodes by calling ldub_code(addr)").
type ReadByte func(addr uint32) byte

// runBlock is the C6 block driver: decode/emit instructions from
// block.StartPC until a control-flow instruction, single-step stop, or
// the configured instruction cap, driving the C7 timer tick and
// zero-overhead-loop check at the documented call sites.
func runBlock(cfg *CpuConfig, block *Block, read ReadByte, b ir.Builder, singleStep bool, onInsn func(pc uint32)) *TranslationContext {
	tc := NewTranslationContext(cfg, block, block.StartPC, singleStep)

	for tc.Term == Continue && tc.insnCount < cfg.MaxInsns {
		w := decodeWord(cfg, read, tc.PC)
		b.DebugInsnStart(tc.PC)
		if onInsn != nil {
			onInsn(tc.PC)
		}
		emitTimerTick(tc, b)

		if d := Decode(tc, b, w); d != nil {
			// Host-visible diagnostic already logged; no IR effect,
			// advance past the instruction (spec section 7).
			tc.PC += w.Len()
			tc.insnCount++
			continue
		}
		tc.insnCount++

		if tc.Term == Jumped {
			break
		}

		tc.PC += w.Len()
		if tc.SingleStep {
			raiseException(b, EXCPDebug)
			tc.Term = Jumped
			break
		}
		if genCheckLoopEnd(tc, b, tc.PC) {
			tc.Term = Jumped
			break
		}
	}

	if tc.Term == Continue {
		writePC(b, constTemp(b, int64(tc.PC)))
		b.ExitTB(0)
		tc.Term = PCUpdated
	}
	return tc
}

// GenerateBlock is gen_intermediate_code: translate one basic block
// starting at block.StartPC, emitting into b (spec section 6).
func GenerateBlock(cfg *CpuConfig, block *Block, read ReadByte, b ir.Builder, singleStep bool) *TranslationContext {
	return runBlock(cfg, block, read, b, singleStep, nil)
}

// GenerateBlockPC is gen_intermediate_code_pc: like GenerateBlock, but
// also returns the guest PC of every decoded instruction, keyed by
// position, for precise exception PC recovery via restore_state_to_opc
// (spec section 6).
func GenerateBlockPC(cfg *CpuConfig, block *Block, read ReadByte, b ir.Builder, singleStep bool) (*TranslationContext, []uint32) {
	var pcs []uint32
	tc := runBlock(cfg, block, read, b, singleStep, func(pc uint32) {
		pcs = append(pcs, pc)
	})
	return tc, pcs
}

// StateDump pretty-prints PC, named SRs (4 per line), named URs, the 16
// windowed A registers, and all physical AR registers (spec section 6:
// "cpu_dump_state(env, stream, flags)"). flags is accepted for
// interface parity with the original entry point; this implementation
// does not vary its output by flag bits.
func StateDump(w io.Writer, st *CpuState, flags uint32) error {
	if _, err := fmt.Fprintf(w, "PC=%#08x\n", st.PC); err != nil {
		return err
	}

	if err := dumpNamed(w, "SR", st.SR, namedSRs); err != nil {
		return err
	}
	if err := dumpNamed(w, "UR", st.UR, namedURs); err != nil {
		return err
	}

	for i := 0; i < 16; i += 4 {
		line := fmt.Sprintf("A%02d=%#08x A%02d=%#08x A%02d=%#08x A%02d=%#08x\n",
			i, st.A[i], i+1, st.A[i+1], i+2, st.A[i+2], i+3, st.A[i+3])
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "AR: %s\n", pretty.Sprint(st.AR)); err != nil {
		return err
	}
	return nil
}

// dumpNamed prints a name-indexed runtime register map, four per line,
// in index order (so the output is deterministic across Go's
// randomized map iteration).
func dumpNamed(w io.Writer, label string, values map[uint8]uint32, names map[uint8]string) error {
	indices := make([]uint8, 0, len(names))
	for idx := range names {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	for i := 0; i < len(indices); i += 4 {
		end := i + 4
		if end > len(indices) {
			end = len(indices)
		}
		parts := make([]string, 0, 4)
		for _, idx := range indices[i:end] {
			parts = append(parts, fmt.Sprintf("%s=%#08x", names[idx], values[idx]))
		}
		line := label + " "
		for i, p := range parts {
			if i > 0 {
				line += " "
			}
			line += p
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}
