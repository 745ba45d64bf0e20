// Package mem provides the waveform memories written by the communication
// core.
package mem

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultDepth is the number of words of a memory when no depth is given.
const DefaultDepth = 1 << 13

// ErrInvalidDepth is returned when a memory is created with no words.
var ErrInvalidDepth = errors.New("mem: depth must be positive")

// A WritePort accepts one word write per call.
type WritePort interface {
	Write(addr, data uint16)
}

// A Range is an inclusive span of addresses.
type Range struct {
	First uint32 `json:"first"`
	Last  uint32 `json:"last"`
}

const unitSize = 512

type unit struct {
	data    [unitSize]uint16
	written [unitSize]bool
}

// A Storage is an array of 16-bit words. Addresses wrap modulo the depth.
//
// The storage is managed in units. A unit that has never been written is
// not allocated and reads as zero.
type Storage struct {
	depth uint32
	units map[uint32]*unit
}

// NewStorage creates a storage with the given number of words.
func NewStorage(depth int) (*Storage, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}

	s := new(Storage)
	s.depth = uint32(depth)
	s.units = make(map[uint32]*unit)

	return s, nil
}

// MustNewStorage is NewStorage that panics on error.
func MustNewStorage(depth int) *Storage {
	s, err := NewStorage(depth)
	if err != nil {
		panic(err)
	}

	return s
}

// Depth returns the number of words.
func (s *Storage) Depth() int {
	return int(s.depth)
}

func (s *Storage) parseAddress(addr uint32) (base, offset uint32) {
	addr %= s.depth
	offset = addr % unitSize
	base = addr - offset

	return base, offset
}

// Write stores a word.
func (s *Storage) Write(addr, data uint16) {
	base, offset := s.parseAddress(uint32(addr))

	u, ok := s.units[base]
	if !ok {
		u = new(unit)
		s.units[base] = u
	}

	u.data[offset] = data
	u.written[offset] = true
}

// Read returns the word at the address.
func (s *Storage) Read(addr uint16) uint16 {
	base, offset := s.parseAddress(uint32(addr))

	u, ok := s.units[base]
	if !ok {
		return 0
	}

	return u.data[offset]
}

// ReadRange returns n consecutive words starting at addr.
func (s *Storage) ReadRange(addr uint16, n int) []uint16 {
	res := make([]uint16, n)
	for i := range res {
		res[i] = s.Read(addr + uint16(i))
	}

	return res
}

// Written returns the spans of addresses that have been written at least
// once, in increasing order.
func (s *Storage) Written() []Range {
	bases := make([]uint32, 0, len(s.units))
	for base := range s.units {
		bases = append(bases, base)
	}

	sort.Slice(bases, func(i, j int) bool { return bases[i] < bases[j] })

	var ranges []Range
	for _, base := range bases {
		u := s.units[base]
		for i, w := range u.written {
			if !w {
				continue
			}

			addr := base + uint32(i)
			n := len(ranges)
			if n > 0 && ranges[n-1].Last+1 == addr {
				ranges[n-1].Last = addr
				continue
			}

			ranges = append(ranges, Range{First: addr, Last: addr})
		}
	}

	return ranges
}

// Reset clears the content.
func (s *Storage) Reset() {
	s.units = make(map[uint32]*unit)
}
