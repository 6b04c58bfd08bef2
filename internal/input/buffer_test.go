package input

import "testing"

func sumDt(in []Input) int64 {
	var total int64
	for _, i := range in {
		total += int64(i.DtMs)
	}
	return total
}

func TestGenerateInputSumsToTickDt(t *testing.T) {
	b := NewBuffer(0)
	b.TryInput(50, 0b0001, 1)
	b.TryInput(90, 0b0011, 2)

	emitted := b.GenerateInput(125)
	if sumDt(emitted) != 125 {
		t.Fatalf("sum of emitted dt = %d, want 125", sumDt(emitted))
	}
}

func TestGenerateInputPreservesOrder(t *testing.T) {
	b := NewBuffer(0)
	b.TryInput(30, 1, 1)
	b.TryInput(60, 2, 2)
	b.TryInput(100, 3, 3)

	emitted := b.GenerateInput(125)
	for i := 1; i < len(emitted); i++ {
		if emitted[i].Seq < emitted[i-1].Seq && emitted[i].Seq != 0 {
			t.Fatalf("emitted out of client order: %v", emitted)
		}
	}
}

func TestGenerateInputSplitsOverrunEntry(t *testing.T) {
	b := NewBuffer(0)
	// A single long-held input spanning far more than one tick.
	b.TryInput(1000, 0b0001, 1)

	first := b.GenerateInput(125)
	if sumDt(first) != 125 {
		t.Fatalf("first tick sum = %d, want 125", sumDt(first))
	}
	second := b.GenerateInput(125)
	if sumDt(second) != 125 {
		t.Fatalf("second tick sum = %d, want 125", sumDt(second))
	}
}

func TestBufferNeverEmptyAfterGenerate(t *testing.T) {
	b := NewBuffer(0)
	b.TryInput(125, 1, 1)
	b.GenerateInput(125)
	if len(b.entries) == 0 {
		t.Fatalf("buffer must never be empty after GenerateInput")
	}
	back := b.back()
	if back.DtMs != 0 {
		t.Fatalf("back element after exact drain should be zero-duration, got %d", back.DtMs)
	}
}

func TestMultiTickConsistency(t *testing.T) {
	b := NewBuffer(0)
	now := int64(0)
	for i := 0; i < 20; i++ {
		now += 17
		b.TryInput(now, uint8(i%4), uint8(i))
	}
	var total int64
	for tick := 0; tick < 10; tick++ {
		total += sumDt(b.GenerateInput(125))
	}
	if total != 1250 {
		t.Fatalf("total emitted across 10 ticks = %d, want 1250", total)
	}
}
