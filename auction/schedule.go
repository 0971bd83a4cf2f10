// Package auction builds and encodes the launch auction parameters consumed
// by the on-chain LBP strategy. Field order and widths are a wire contract
// with the contracts and must not change.
package auction

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// MPS is the fixed rate normalization constant (milli-bips). Every schedule
// must distribute exactly MPS across its duration.
const MPS = 10_000_000

// Step sells Rate milli-bips of the supply per block for Span blocks.
// Packed width: rate 24 bits, span 40 bits.
type Step struct {
	Rate uint32
	Span uint64
}

type Schedule []Step

// BuildSchedule splits duration into a first-third step and a remainder
// step: half of MPS spread evenly over the first third, the rest over the
// remainder. Integer division leftovers are absorbed into the front of the
// second step (one extra milli-bip per block) so that TotalRate() == MPS
// exactly; nothing is ever dropped.
func BuildSchedule(durationBlocks uint64) (Schedule, error) {
	if durationBlocks < 2 {
		return nil, errors.New("auction duration must be at least 2 blocks")
	}
	span1 := durationBlocks / 3
	if span1 < 1 {
		span1 = 1
	}
	span2 := durationBlocks - span1

	rate1 := uint64(MPS/2) / span1
	remainder := MPS - rate1*span1
	rate2 := remainder / span2
	leftover := remainder - rate2*span2

	sched := Schedule{{Rate: uint32(rate1), Span: span1}}
	if leftover > 0 {
		sched = append(sched,
			Step{Rate: uint32(rate2 + 1), Span: leftover},
			Step{Rate: uint32(rate2), Span: span2 - leftover},
		)
	} else {
		sched = append(sched, Step{Rate: uint32(rate2), Span: span2})
	}
	return sched, nil
}

// TotalRate is Σ(rate·span); MPS for a valid schedule.
func (s Schedule) TotalRate() uint64 {
	var sum uint64
	for _, st := range s {
		sum += uint64(st.Rate) * st.Span
	}
	return sum
}

// TotalSpan is Σ(span); the auction duration for a valid schedule.
func (s Schedule) TotalSpan() uint64 {
	var sum uint64
	for _, st := range s {
		sum += st.Span
	}
	return sum
}

const packedStepSize = 8 // 3 bytes rate + 5 bytes span

// Pack serializes the schedule as big-endian (uint24 rate, uint40 span)
// tuples concatenated in step order.
func (s Schedule) Pack() ([]byte, error) {
	out := make([]byte, 0, len(s)*packedStepSize)
	for _, st := range s {
		if st.Rate >= 1<<24 {
			return nil, fmt.Errorf("step rate %d overflows uint24", st.Rate)
		}
		if st.Span >= 1<<40 {
			return nil, fmt.Errorf("step span %d overflows uint40", st.Span)
		}
		var buf [packedStepSize]byte
		buf[0] = byte(st.Rate >> 16)
		buf[1] = byte(st.Rate >> 8)
		buf[2] = byte(st.Rate)
		binary.BigEndian.PutUint32(buf[4:8], uint32(st.Span))
		buf[3] = byte(st.Span >> 32)
		out = append(out, buf[:]...)
	}
	return out, nil
}

// UnpackSteps is the inverse of Pack.
func UnpackSteps(data []byte) (Schedule, error) {
	if len(data)%packedStepSize != 0 {
		return nil, fmt.Errorf("steps data length %d is not a multiple of %d", len(data), packedStepSize)
	}
	sched := make(Schedule, 0, len(data)/packedStepSize)
	for off := 0; off < len(data); off += packedStepSize {
		chunk := data[off : off+packedStepSize]
		rate := uint32(chunk[0])<<16 | uint32(chunk[1])<<8 | uint32(chunk[2])
		span := uint64(chunk[3])<<32 | uint64(binary.BigEndian.Uint32(chunk[4:8]))
		sched = append(sched, Step{Rate: rate, Span: span})
	}
	return sched, nil
}
