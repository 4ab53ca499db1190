package vkt

import (
	"fmt"
)

type Allocation struct {
	Offset uint64
	Size   uint64
}

func (a *Allocation) String() string {
	return fmt.Sprintf("[%d %d]", a.Offset, a.Size)
}

// IAllocator places sub-allocations inside a block of device memory
type IAllocator interface {
	Free(a *Allocation)
	Allocate(size uint64, align uint64) *Allocation
}

// LinearAllocator places allocations inside a block of Size bytes, keeping them sorted by
// offset and taking the first gap that fits
type LinearAllocator struct {
	Size   uint64
	allocs []*Allocation
}

func makeAlignUp(a uint64, align uint64) uint64 {
	if align <= 1 {
		return a
	}
	m := a % align
	if m == 0 {
		return a
	}
	return (a - m) + align
}

func (p *LinearAllocator) Free(fa *Allocation) {
	for i, a := range p.allocs {
		if a == fa {
			p.allocs = append(p.allocs[:i], p.allocs[i+1:]...)
			return
		}
	}
}

// Allocate returns an allocation of size bytes whose offset is a multiple of align, or nil
// if no gap is large enough
func (p *LinearAllocator) Allocate(size uint64, align uint64) *Allocation {
	if size == 0 || size > p.Size {
		return nil
	}

	var start uint64
	for i, a := range p.allocs {
		l := makeAlignUp(start, align)
		if l <= a.Offset && a.Offset-l >= size {
			na := &Allocation{Offset: l, Size: size}
			p.allocs = append(p.allocs[:i], append([]*Allocation{na}, p.allocs[i:]...)...)
			return na
		}
		start = a.Offset + a.Size
	}

	l := makeAlignUp(start, align)
	if l > p.Size || p.Size-l < size {
		return nil
	}
	na := &Allocation{Offset: l, Size: size}
	p.allocs = append(p.allocs, na)
	return na
}

// Used is the sum of the sizes of all live allocations
func (p *LinearAllocator) Used() uint64 {
	var n uint64
	for _, a := range p.allocs {
		n += a.Size
	}
	return n
}

func (p *LinearAllocator) String() string {
	return fmt.Sprintf("%v", p.allocs)
}
