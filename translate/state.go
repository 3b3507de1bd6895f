/*
   Xtensa TCG translator - CPU state naming (data model)

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

// Named special-register indices (spec section 3). Only these are
// materialized as globals; any other SR index in [0,255] is
// unimplemented (spec section 7: "unimplemented SR/UR index").
const (
	srLBEG        = 0
	srLEND        = 1
	srLCOUNT      = 2
	srSAR         = 3
	srLITBASE     = 5
	srSCOMPARE1   = 12
	srWINDOWBASE  = 72
	srWINDOWSTART = 73
	srPS          = 230
	srEXCCAUSE   = 232
	srEXCVADDR   = 238
	srCCOUNT     = 234
	srPRID       = 235
	srINTSET     = 226
	srINTCLEAR   = 227
	srINTENABLE  = 228
	srDEPC       = 192
	srEPC1       = 177
	srEPC2       = 178
	srEPC3       = 179
	srEPC4       = 180
	srEPC5       = 181
	srEPC6       = 182
	srEPC7       = 183
	srEPS2       = 194
	srEPS3       = 195
	srEPS4       = 196
	srEPS5       = 197
	srEPS6       = 198
	srEPS7       = 199
	srEXCSAVE1   = 209
	srEXCSAVE2   = 210
	srEXCSAVE3   = 211
	srEXCSAVE4   = 212
	srEXCSAVE5   = 213
	srEXCSAVE6   = 214
	srEXCSAVE7   = 215
	srCPENABLE   = 224
	srCCOMPARE0  = 240
	srCCOMPARE1  = 241
	srCCOMPARE2  = 242
)

// Named user-register indices.
const (
	urTHREADPTR = 231
	urFCR       = 232
	urFSR       = 233
)

// PS field layout (spec section 3).
const (
	psEXCM        = 1 << 4
	psRingShift   = 6
	psRingLen     = 2
	psIntLvlShift = 0
	psIntLvlLen   = 4
	psCallIncShift = 16
	psCallIncLen   = 2
)

func psRingMask() uint32 { return uint32(mask32(psRingLen)) << psRingShift }
func psIntLvlMask() uint32 { return uint32(mask32(psIntLvlLen)) << psIntLvlShift }
func psCallIncMask() uint32 { return uint32(mask32(psCallIncLen)) << psCallIncShift }

func mask32(bits uint) uint32 {
	if bits >= 32 {
		return ^uint32(0)
	}
	return (uint32(1) << bits) - 1
}

// namedSRs maps an SR index to whether it is materialized (spec section
// 3: "only the named subset is materialized").
var namedSRs = map[uint8]string{
	srLBEG: "LBEG", srLEND: "LEND", srLCOUNT: "LCOUNT", srSAR: "SAR",
	srLITBASE: "LITBASE", srSCOMPARE1: "SCOMPARE1",
	srWINDOWBASE: "WINDOW_BASE", srWINDOWSTART: "WINDOW_START",
	srPS: "PS", srEXCCAUSE: "EXCCAUSE", srEXCVADDR: "EXCVADDR",
	srCCOUNT: "CCOUNT", srPRID: "PRID",
	srINTSET: "INTSET", srINTCLEAR: "INTCLEAR", srINTENABLE: "INTENABLE",
	srDEPC: "DEPC",
	srEPC1: "EPC1", srEPC2: "EPC2", srEPC3: "EPC3", srEPC4: "EPC4",
	srEPC5: "EPC5", srEPC6: "EPC6", srEPC7: "EPC7",
	srEPS2: "EPS2", srEPS3: "EPS3", srEPS4: "EPS4", srEPS5: "EPS5",
	srEPS6: "EPS6", srEPS7: "EPS7",
	srEXCSAVE1: "EXCSAVE1", srEXCSAVE2: "EXCSAVE2", srEXCSAVE3: "EXCSAVE3",
	srEXCSAVE4: "EXCSAVE4", srEXCSAVE5: "EXCSAVE5", srEXCSAVE6: "EXCSAVE6",
	srEXCSAVE7: "EXCSAVE7",
	srCPENABLE:  "CPENABLE",
	srCCOMPARE0: "CCOMPARE0", srCCOMPARE1: "CCOMPARE1", srCCOMPARE2: "CCOMPARE2",
}

var namedURs = map[uint8]string{
	urTHREADPTR: "THREADPTR", urFCR: "FCR", urFSR: "FSR",
}

// srGlobal returns the IR global bound to a named SR, or ok=false if sr
// is not in the materialized subset (section 7: such indices must never
// be read or written).
func srGlobal(sr uint8) (ir.Global, bool) {
	name, ok := namedSRs[sr]
	if !ok {
		return ir.Global{}, false
	}
	return ir.Global{Name: "sr_" + name, Size: ir.I32}, true
}

func urGlobal(ur uint8) (ir.Global, bool) {
	name, ok := namedURs[ur]
	if !ok {
		return ir.Global{}, false
	}
	return ir.Global{Name: "ur_" + name, Size: ir.I32}, true
}

// regGlobal returns the global bound to windowed address register Rk.
func regGlobal(k uint8) ir.Global {
	return ir.Global{Name: regNames[k&0xf], Size: ir.I32}
}

var regNames = [16]string{
	"R0", "R1", "R2", "R3", "R4", "R5", "R6", "R7",
	"R8", "R9", "R10", "R11", "R12", "R13", "R14", "R15",
}

var pcGlobal = ir.Global{Name: "PC", Size: ir.I32}

// CpuState is a runtime register snapshot (spec section 6:
// "cpu_dump_state(env, stream, flags)"), not IR: it is the shape the
// embedding engine's live CPU state takes when handed to StateDump.
// Only named SR/UR indices are populated; the translator never reads
// or writes unnamed ones (section 3 invariant).
type CpuState struct {
	PC uint32
	A  [16]uint32
	AR []uint32 // physical register file, length nareg.
	SR map[uint8]uint32
	UR map[uint8]uint32
}
