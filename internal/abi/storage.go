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

import "github.com/cloudwego/abi64/internal/abiopts"

// maxBankRegisters is the number of registers in one kind's bank (x0..x7 or
// v0..v7) before an argument of that kind must use the stack.
const maxBankRegisters = 8

// slotSize is the width of one generic stack slot when a platform does not
// require sub-slot packing.
const slotSize = 8

// StorageCalculator is the stateful allocator owned by one BindingCalculator
// (§4.2). It is constructed fresh for every call's argument list and again
// for every call's return value; no state is ever shared between calls or
// hoisted into a cache (§9, "stateful allocator, stateless arranger").
type StorageCalculator struct {
	platform            Platform
	forArguments        bool
	forVariadicFunction bool

	nRegs       [2]int
	stackOffset int64
	forVarArgs  bool
}

// NewStorageCalculator builds a calculator for one argument list or one
// return value. forArguments selects the input register bank (true) or the
// output bank (false) from the platform's ABIDescriptor.
func NewStorageCalculator(platform Platform, forArguments bool, forVariadicFunction bool) *StorageCalculator {
	return &StorageCalculator{
		platform:            platform,
		forArguments:        forArguments,
		forVariadicFunction: forVariadicFunction,
	}
}

func (s *StorageCalculator) bank(kind StorageKind) []Register {
	desc := s.platform.ABI()
	if s.forArguments {
		return desc.InputStorage[kind]
	}
	return desc.OutputStorage[kind]
}

// regAlloc allocates count consecutive registers of kind if the bank has
// room; otherwise it saturates the counter to 8, closing the bank for every
// later argument of that kind, and returns ok=false (spec invariant 1: no
// splitting, no gap-filling once a bank has overflowed).
func (s *StorageCalculator) regAlloc(kind StorageKind, count int) ([]VMStorage, bool) {
	bank := s.bank(kind)
	if s.nRegs[kind]+count > len(bank) {
		s.nRegs[kind] = maxBankRegisters
		return nil, false
	}

	out := make([]VMStorage, count)

	for i := 0; i < count; i++ {
		out[i] = regStorage(bank[s.nRegs[kind]+i])
	}

	s.nRegs[kind] += count
	return out, true
}

// regAllocPartial allocates as many registers of kind as remain, up to what
// layout needs, for the Windows partial-spill exception (§4.2). It
// never closes the bank on its own; the caller is responsible for spilling
// whatever didn't fit.
func (s *StorageCalculator) regAllocPartial(kind StorageKind, layout MemoryLayout) ([]VMStorage, int64) {
	available := maxBankRegisters - s.nRegs[kind]
	if available <= 0 {
		return nil, 0
	}

	want := int((layout.Size() + slotSize - 1) / slotSize)
	n := want
	if n > available {
		n = available
	}

	out, ok := s.regAlloc(kind, n)
	if !ok {
		return nil, 0
	}

	return out, int64(n) * slotSize
}

// stackAllocSize reserves size bytes on the outgoing stack at the next
// offset satisfying alignment, and advances stackOffset past it.
func (s *StorageCalculator) stackAllocSize(size int64, alignment int64) VMStorage {
	requireInvariant(size <= int64(abiopts.MaxStackArgBytes), "stack argument exceeds abiopts.MaxStackArgBytes")
	s.stackOffset = alignUp(s.stackOffset, alignment)
	storage := stackStorage(s.stackOffset, size)
	s.stackOffset += size
	return storage
}

// stackAllocLayout reserves space for layout, choosing the alignment per
// §4.2: the layout's own alignment when the platform packs sub-slot stack
// arguments and we are outside the variadic section, else one slot (8
// bytes) or the layout's alignment, whichever is larger.
func (s *StorageCalculator) stackAllocLayout(layout MemoryLayout) VMStorage {
	var align int64

	if s.platform.RequiresSubSlotStackPacking() && !s.forVarArgs {
		align = layout.Align()
	} else {
		align = layout.Align()
		if align < slotSize {
			align = slotSize
		}
	}

	return s.stackAllocSize(layout.Size(), align)
}

// alignStack bumps stackOffset up to the next multiple of alignment without
// reserving any bytes; used to re-align after a packed tail spill.
func (s *StorageCalculator) alignStack(alignment int64) {
	s.stackOffset = alignUp(s.stackOffset, alignment)
}

// nextStorage is the single-slot convenience from §4.2: try one register of
// kind, else spill one generic slot. A VECTOR request made while processing
// a variadic argument is rewritten to INTEGER_KIND under the Windows rule
// (UseIntRegsForVariadicFloatingPointArgs).
func (s *StorageCalculator) nextStorage(kind StorageKind) VMStorage {
	if kind == VECTOR_KIND && s.forArguments && s.forVarArgs && s.platform.UseIntRegsForVariadicFloatingPointArgs() {
		kind = INTEGER_KIND
	}

	if regs, ok := s.regAlloc(kind, 1); ok {
		return regs[0]
	}

	return s.stackAllocSize(slotSize, slotSize)
}

// nextStorageForHFA tries to allocate nFields consecutive vector registers
// for an HFA. On failure it either packs each field into its own sub-slot
// stack slot (macOS, outside the variadic section) or reports failure so
// the caller falls back to the generic whole-struct stack spill.
func (s *StorageCalculator) nextStorageForHFA(group GroupLayout, nFields int) ([]VMStorage, bool) {
	if regs, ok := s.regAlloc(VECTOR_KIND, nFields); ok {
		return regs, true
	}

	if !s.platform.RequiresSubSlotStackPacking() || s.forVarArgs {
		return nil, false
	}

	leaves, ok := flattenLeaves(group, nil)
	requireInvariant(ok && len(leaves) == nFields, "HFA field count mismatch during stack packing")

	out := make([]VMStorage, nFields)
	for i, leaf := range leaves {
		out[i] = s.stackAllocSize(leaf.Size(), leaf.Align())
	}

	return out, true
}

// adjustForVarArgs closes both register banks and marks the calculator as
// having entered the variadic section. It is invoked at most once, at the
// fixed/variadic boundary, and only when the platform puts variadic
// arguments entirely on the stack (macOS). Platforms that instead let
// variadic arguments keep using registers (Windows) call
// enterVariadicSection directly.
func (s *StorageCalculator) adjustForVarArgs() {
	s.enterVariadicSection()
	s.nRegs[INTEGER_KIND] = maxBankRegisters
	s.nRegs[VECTOR_KIND] = maxBankRegisters
}

// enterVariadicSection marks the calculator as having crossed the
// fixed/variadic boundary without otherwise touching register allocation.
// This is what Windows needs: UseIntRegsForVariadicFloatingPointArgs and
// SpillsVariadicStructsPartially key off forVarArgs, but Windows variadic
// arguments still compete for the normal register banks.
func (s *StorageCalculator) enterVariadicSection() {
	s.forVarArgs = true
}
