// Package input buffers per-entity client input between arrival and the
// fixed tick that consumes it.
package input

// Input is one segment of held key-bits spanning DtMs milliseconds of
// game time, tagged with the client sequence number that introduced it.
type Input struct {
	KeyBits uint8
	DtMs    uint16
	Seq     uint8
}

// Buffer is a deque of Input plus the two bookkeeping accumulators the
// slicing algorithm needs. It is never empty: the back element is always
// the entry currently accumulating real time.
type Buffer struct {
	entries []Input

	in  int64 // ms added by TryInput since the last GenerateInput
	out int64 // ms emitted by GenerateInput since the last full drain

	lastWriteMs int64
	keyBits     uint8
	lastSeq     uint8
}

// NewBuffer creates a buffer seeded with a single zero-duration
// accumulating entry, as required by invariant I2.
func NewBuffer(nowMs int64) *Buffer {
	return &Buffer{
		entries:     []Input{{KeyBits: 0, DtMs: 0, Seq: 0}},
		lastWriteMs: nowMs,
	}
}

func (b *Buffer) back() *Input {
	return &b.entries[len(b.entries)-1]
}

// TryInput records a client packet: the real time elapsed since the last
// write is folded into both the `in` accumulator and the currently
// accumulating entry, which is then closed off by pushing a fresh
// accumulating entry for the new key-bits.
func (b *Buffer) TryInput(nowMs int64, keyBits uint8, seq uint8) {
	overstep := nowMs - b.lastWriteMs
	if overstep < 0 {
		overstep = 0
	}
	b.in += overstep
	b.back().DtMs += uint16(overstep)

	b.entries = append(b.entries, Input{KeyBits: keyBits, DtMs: 0, Seq: seq})
	b.keyBits = keyBits
	b.lastSeq = seq
	b.lastWriteMs = nowMs
}

// GenerateInput slices tickDt milliseconds off the front of the buffer,
// returning each consumed segment in client-submitted order. The sum of
// returned DtMs always equals tickDt exactly.
func (b *Buffer) GenerateInput(tickDt int64) []Input {
	back := b.back()
	correction := tickDt - b.in
	if correction < 0 {
		correction = 0
	}
	back.DtMs += uint16(correction)
	b.in = 0

	remaining := tickDt
	var emitted []Input

	for remaining > 0 && len(b.entries) > 0 {
		front := b.entries[0]
		if int64(front.DtMs) <= remaining {
			emitted = append(emitted, front)
			remaining -= int64(front.DtMs)
			b.out += int64(front.DtMs)
			b.entries = b.entries[1:]
			continue
		}

		emitted = append(emitted, Input{KeyBits: front.KeyBits, DtMs: uint16(remaining), Seq: front.Seq})
		b.entries[0] = Input{KeyBits: front.KeyBits, DtMs: front.DtMs - uint16(remaining), Seq: front.Seq}
		b.out = 0
		remaining = 0
	}

	// The deque must never go empty: if the last entry drained exactly at
	// the tick boundary, reopen a zero-duration entry for the key-bits
	// still held so the next TryInput/GenerateInput has a back to extend.
	if len(b.entries) == 0 {
		b.entries = append(b.entries, Input{KeyBits: b.keyBits, DtMs: 0, Seq: b.lastSeq})
	}

	return emitted
}

// KeyBits returns the most recently received key-bit state.
func (b *Buffer) KeyBits() uint8 {
	return b.keyBits
}
