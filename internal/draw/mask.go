package draw

import "math/bits"

// MaxNumber is the largest number a Mask can hold.
const MaxNumber = 128

// Mask is a fixed-size bitset over the numbers 1..MaxNumber. Bit n-1 is set
// when n is a member.
type Mask [2]uint64

func MaskOf(nums []int) Mask {
	var m Mask
	for _, n := range nums {
		m = m.With(n)
	}
	return m
}

// With returns m with n added. Numbers outside 1..MaxNumber are ignored.
func (m Mask) With(n int) Mask {
	if n < 1 || n > MaxNumber {
		return m
	}
	i := n - 1
	m[i>>6] |= 1 << uint(i&63)
	return m
}

func (m Mask) Has(n int) bool {
	if n < 1 || n > MaxNumber {
		return false
	}
	i := n - 1
	return m[i>>6]&(1<<uint(i&63)) != 0
}

func (m Mask) And(o Mask) Mask {
	return Mask{m[0] & o[0], m[1] & o[1]}
}

func (m Mask) Or(o Mask) Mask {
	return Mask{m[0] | o[0], m[1] | o[1]}
}

// AndNot clears every bit of o from m.
func (m Mask) AndNot(o Mask) Mask {
	return Mask{m[0] &^ o[0], m[1] &^ o[1]}
}

func (m Mask) Len() int {
	return bits.OnesCount64(m[0]) + bits.OnesCount64(m[1])
}

// Overlap is |m ∩ o|.
func (m Mask) Overlap(o Mask) int {
	return bits.OnesCount64(m[0]&o[0]) + bits.OnesCount64(m[1]&o[1])
}

func (m Mask) IsEmpty() bool {
	return m[0] == 0 && m[1] == 0
}

// Numbers returns the members in ascending order.
func (m Mask) Numbers() []int {
	out := make([]int, 0, m.Len())
	for w := 0; w < len(m); w++ {
		word := m[w]
		for word != 0 {
			tz := bits.TrailingZeros64(word)
			out = append(out, w*64+tz+1)
			word &= word - 1
		}
	}
	return out
}
