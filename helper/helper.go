// Package helper enumerates the Helper ABI consumed by generated IR
// (spec section 6): a flat set of typed function identifiers, each
// implemented by the embedding DBT engine in host code. The translator
// never calls these Go-visible names directly — it passes an ID to
// ir.Builder.CallHelper, which emits a call the *generated program* makes
// at run time. Keeping the set flat and enumerated (rather than a single
// variadic CallHelper(name string, ...)) is the design note in spec
// section 9 ("keep the helper ABI a flat set of typed function
// identifiers; avoid variadic dispatch").
package helper

import "github.com/go-xtensa/tcg/ir"

// ID identifies one helper in the ABI.
type ID int

const (
	Exception ID = iota
	ExceptionCause
	ExceptionCauseVaddr
	CheckInterrupts
	WsrLend
	WsrWindowBase
	WindowCheck
	Retw
	Entry
	Rotw
	RestoreOwb
	Movsp
	TimerIrq
	Waiti
	Simcall
)

// Signature describes one helper's call shape: argument count/width and
// whether it returns a value, enough for ir.LLVMBuilder to declare it as
// an external function.
type Signature struct {
	Name    string
	NArgs   int
	HasRet  bool
	RetSize ir.Size
}

// Signatures is the canonical ABI table, indexed by ID.
var Signatures = map[ID]Signature{
	Exception:           {Name: "helper_exception", NArgs: 1},
	ExceptionCause:      {Name: "helper_exception_cause", NArgs: 2},
	ExceptionCauseVaddr: {Name: "helper_exception_cause_vaddr", NArgs: 3},
	CheckInterrupts:     {Name: "helper_check_interrupts", NArgs: 0},
	WsrLend:             {Name: "helper_wsr_lend", NArgs: 1},
	WsrWindowBase:       {Name: "helper_wsr_windowbase", NArgs: 1},
	WindowCheck:         {Name: "helper_window_check", NArgs: 2},
	Retw:                {Name: "helper_retw", NArgs: 1, HasRet: true, RetSize: ir.I32},
	Entry:               {Name: "helper_entry", NArgs: 3},
	Rotw:                {Name: "helper_rotw", NArgs: 1},
	RestoreOwb:          {Name: "helper_restore_owb", NArgs: 0},
	Movsp:               {Name: "helper_movsp", NArgs: 1},
	TimerIrq:            {Name: "helper_timer_irq", NArgs: 2},
	Waiti:               {Name: "helper_waiti", NArgs: 2},
	Simcall:             {Name: "helper_simcall", NArgs: 0},
}

// AsMap adapts Signatures to the map[int]ir.Signature shape
// ir.NewLLVMBuilder expects, keeping package ir free of any knowledge of
// the concrete helper set.
func AsMap() map[int]ir.Signature {
	out := make(map[int]ir.Signature, len(Signatures))
	for id, sig := range Signatures {
		out[int(id)] = ir.Signature{
			Name:    sig.Name,
			NArgs:   sig.NArgs,
			HasRet:  sig.HasRet,
			RetSize: sig.RetSize,
		}
	}
	return out
}

// ABI documents the host-language contract (spec section 6, "Helper
// ABI") that the IDs above stand for at run time. Nothing in this
// repository implements it — it is provided so the shape of each
// helper is visible in one place, and so a DBT engine embedding this
// translator has a Go interface to implement against. The translator
// itself never calls these methods; it calls ir.Builder.CallHelper with
// the matching ID, which the embedding engine's generated-code runtime
// dispatches to an ABI implementation.
type ABI interface {
	Exception(excp uint32)
	ExceptionCause(pc, cause uint32)
	ExceptionCauseVaddr(pc, cause, vaddr uint32)
	CheckInterrupts()
	WsrLend(v uint32)
	WsrWindowBase(v uint32)
	WindowCheck(pc, quarter uint32)
	Retw(pc uint32) uint32
	Entry(pc uint32, s uint32, imm uint32)
	Rotw(delta int32)
	RestoreOwb()
	Movsp(pc uint32)
	TimerIrq(id uint32, active bool)
	Waiti(pc uint32, intlevel uint32)
	Simcall()
}
