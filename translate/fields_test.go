package translate

import "testing"

// Instruction-length law: length is 2 iff OP0 >= 8, regardless of the
// remaining bytes (spec section 8).
func TestDecodeWordLengthLaw(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		op0        byte
		wantLen    uint32
		wantNarrow bool
	}{
		{0x0, 3, false},
		{0x7, 3, false},
		{0x8, 2, true},
		{0xd, 2, true},
		{0xf, 2, true},
	}
	for _, c := range cases {
		bytes := map[uint32]byte{0: c.op0, 1: 0x34, 2: 0x56}
		w := decodeWord(cfg, func(pc uint32) byte { return bytes[pc] }, 0)
		if w.Len() != c.wantLen {
			t.Errorf("op0=%#x: Len()=%d, want %d", c.op0, w.Len(), c.wantLen)
		}
		if w.narrow != c.wantNarrow {
			t.Errorf("op0=%#x: narrow=%v, want %v", c.op0, w.narrow, c.wantNarrow)
		}
	}
}

// Sign-extension law: for n in [bits,31], result bit n equals bit
// (bits-1) of v (spec section 8).
func TestSignExtendLaw(t *testing.T) {
	cases := []struct {
		v    int32
		bits uint
		want int32
	}{
		{0x7, 4, 7},    // sign bit clear -> unchanged
		{0x8, 4, -8},   // sign bit set -> sign-extended
		{0xff, 8, -1},  // all-ones byte -> -1
		{0x7f, 8, 127}, // top bit clear
	}
	for _, c := range cases {
		got := signExtend(c.v, c.bits)
		if got != c.want {
			t.Errorf("signExtend(%#x, %d) = %d, want %d", c.v, c.bits, got, c.want)
		}
	}
}

// B4CONSTU carries two irregular entries (32768, 65536) that break the
// otherwise-monotonic-doubling-then-plain pattern of the table; these
// are regression-critical (spec section 8).
func TestB4ConstuIrregularEntries(t *testing.T) {
	if B4CONSTU[0] != 32768 {
		t.Errorf("B4CONSTU[0] = %d, want 32768", B4CONSTU[0])
	}
	if B4CONSTU[1] != 65536 {
		t.Errorf("B4CONSTU[1] = %d, want 65536", B4CONSTU[1])
	}
	for i := 2; i < 16; i++ {
		if B4CONSTU[i] != uint32(B4CONST[i]) {
			t.Errorf("B4CONSTU[%d] = %d, want %d (matching B4CONST)", i, B4CONSTU[i], B4CONST[i])
		}
	}
}

func TestB4ConstFirstEntryIsMinusOne(t *testing.T) {
	if B4CONST[0] != -1 {
		t.Errorf("B4CONST[0] = %d, want -1", B4CONST[0])
	}
}

// RRR field extraction: a self-derived, internally-consistent encoding
// of ADD a1,a2,a3 (R=1,S=2,T=3) verified by construction rather than
// against the spec's own worked-example bytes, which do not decode
// under any nibble permutation of a standard RRR layout (no nibble in
// "10 13 80" equals 2, yet S must equal 2 for that scenario).
func TestRRRFieldExtraction(t *testing.T) {
	cfg := DefaultConfig()
	// V = op2(0) op1(0) r(1) s(2) t(3) op0(0) packed as
	// op2<<20 | op1<<16 | r<<12 | s<<8 | t<<4 | op0 = 0x001230.
	v := uint32(0x001230)
	bytes := map[uint32]byte{
		0: byte(v & 0xff),
		1: byte((v >> 8) & 0xff),
		2: byte((v >> 16) & 0xff),
	}
	w := decodeWord(cfg, func(pc uint32) byte { return bytes[pc] }, 0)
	rrr := w.RRR()
	if rrr.R != 1 || rrr.S != 2 || rrr.T != 3 || rrr.OP0 != 0 {
		t.Errorf("RRR() = %+v, want R=1 S=2 T=3 OP0=0", rrr)
	}
}
