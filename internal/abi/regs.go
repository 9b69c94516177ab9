/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package abi

import "fmt"

// StorageKind is the kind of a VMStorage: a general-purpose register, a
// SIMD/FP register, or an encoded stack slot.
type StorageKind uint8

const (
	INTEGER_KIND StorageKind = iota
	VECTOR_KIND
	STACK_KIND
)

func (k StorageKind) String() string {
	switch k {
	case INTEGER_KIND:
		return "INTEGER"
	case VECTOR_KIND:
		return "VECTOR"
	case STACK_KIND:
		return "STACK"
	default:
		return fmt.Sprintf("StorageKind(%d)", uint8(k))
	}
}

// Register is an opaque architecture-register handle. The engine never
// interprets Name beyond display; ArchitectureRegisters (out of scope per
// the spec) is the real source of truth downstream. maxStackSlotSize bounds
// what stackAlloc may encode (the "size must fit in 16 bits" invariant).
type Register struct {
	Name string
	kind StorageKind
	id   uint8
}

// Index returns the register's ordinal within its bank (0 for x0/v0, 8 for
// x8, and so on), for callers cross-checking the table against an external
// numbering such as arm64asm's.
func (r Register) Index() int { return int(r.id) }

const maxStackSlotSize = 0xffff

// VMStorage is either a register handle (kind INTEGER_KIND or VECTOR_KIND)
// or an encoded stack slot (kind STACK_KIND, carrying an offset and size).
type VMStorage struct {
	Kind        StorageKind
	Reg         Register
	StackOffset int64
	StackSize   uint16
}

func (v VMStorage) String() string {
	if v.Kind == STACK_KIND {
		return fmt.Sprintf("[sp+%d](%d)", v.StackOffset, v.StackSize)
	}
	return v.Reg.Name
}

func regStorage(r Register) VMStorage {
	return VMStorage{Kind: r.kind, Reg: r}
}

func stackStorage(offset int64, size int64) VMStorage {
	requireInvariant(size >= 0 && size <= maxStackSlotSize, fmt.Sprintf("stack slot size %d does not fit in 16 bits", size))
	return VMStorage{Kind: STACK_KIND, StackOffset: offset, StackSize: uint16(size)}
}

// Integer argument/return registers x0..x7, the indirect-result register
// x8, and the two scratch registers x9/x10 reserved by the ABI descriptor.
var (
	X0, X1, X2, X3, X4, X5, X6, X7, X8, X9, X10 = mkIntRegs()
)

func mkIntRegs() (x0, x1, x2, x3, x4, x5, x6, x7, x8, x9, x10 Register) {
	names := []string{"x0", "x1", "x2", "x3", "x4", "x5", "x6", "x7", "x8", "x9", "x10"}
	regs := make([]Register, len(names))
	for i, n := range names {
		regs[i] = Register{Name: n, kind: INTEGER_KIND, id: uint8(i)}
	}
	return regs[0], regs[1], regs[2], regs[3], regs[4], regs[5], regs[6], regs[7], regs[8], regs[9], regs[10]
}

// IndirectResultRegister is x8: reserved exclusively for the hidden pointer
// argument of an in-memory return (spec invariant 3).
var IndirectResultRegister = X8

// Vector registers v0..v31.
var VectorRegs = mkVecRegs()

func mkVecRegs() [32]Register {
	var regs [32]Register
	for i := range regs {
		regs[i] = Register{Name: fmt.Sprintf("v%d", i), kind: VECTOR_KIND, id: uint8(i)}
	}
	return regs
}

var intArgRegs = [8]Register{X0, X1, X2, X3, X4, X5, X6, X7}

// ABIDescriptor is the static, per-platform table of register banks and
// stack rules described in §3. There is one shared instance per platform;
// it is never mutated after construction.
type ABIDescriptor struct {
	// InputStorage[kind] lists the registers available to arguments, in
	// allocation order, for kind INTEGER_KIND or VECTOR_KIND.
	InputStorage [2][]Register
	// OutputStorage[kind] is the analogous table for return values.
	OutputStorage [2][]Register

	Volatile []Register

	StackAlignment int64
	ShadowSpace    int64

	Scratch1, Scratch2 Register
	IndirectResult     Register
}

func newAArch64Descriptor() *ABIDescriptor {
	return &ABIDescriptor{
		InputStorage: [2][]Register{
			INTEGER_KIND: {X0, X1, X2, X3, X4, X5, X6, X7},
			VECTOR_KIND:  VectorRegs[:8],
		},
		OutputStorage: [2][]Register{
			INTEGER_KIND: {X0, X1},
			VECTOR_KIND:  VectorRegs[:4],
		},
		Volatile:       append(append([]Register{}, intArgRegs[:]...), VectorRegs[:8]...),
		StackAlignment: 16,
		ShadowSpace:    0,
		Scratch1:       X9,
		Scratch2:       X10,
		IndirectResult: X8,
	}
}
