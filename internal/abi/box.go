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

import "math"

// BoxCalculator implements the native-to-managed direction (§4.4.2): the
// return side of a downcall, and the argument side of an upcall. It is the
// dual of UnboxCalculator: every op direction is inverted and the dup
// placement in the struct/HFA paths differs (dup on every iteration, not
// just the non-final ones, because the destination buffer reference must
// survive for the final consumer too).
//
// Per §4.4.2, Box always treats forVariadicFunction as false: the variadic
// section is a caller-side (Unbox) concern, never seen by an upcall's Box
// argument path or a downcall's Box return path.
type BoxCalculator struct {
	platform Platform
	storage  *StorageCalculator
}

// NewBoxCalculator builds a Box calculator with its own StorageCalculator.
func NewBoxCalculator(platform Platform, forArguments bool) *BoxCalculator {
	return &BoxCalculator{
		platform: platform,
		storage:  NewStorageCalculator(platform, forArguments, false),
	}
}

func (x *BoxCalculator) Storage() *StorageCalculator { return x.storage }

// GetIndirectBindings loads the caller-supplied return-buffer pointer out
// of x8 and boxes it with no bounds check (MAX_SIZE), per the spec's
// explicit call-out of this as a trust boundary (§9).
func (x *BoxCalculator) GetIndirectBindings() []Binding {
	return NewBindingBuilder().
		VMLoad(regStorage(x.platform.ABI().IndirectResult), primFor(8)).
		BoxAddressRaw(math.MaxInt64).
		Build()
}

func (x *BoxCalculator) GetBindings(carrier Carrier, layout MemoryLayout) ([]Binding, error) {
	class, err := classifyFor(x.platform, x.storage, layout)
	if err != nil {
		return nil, err
	}

	b := NewBindingBuilder()

	switch class {
	case INTEGER:
		storage := x.storage.nextStorage(INTEGER_KIND)
		b.VMLoad(storage, primFor(layout.Size()))

	case FLOAT:
		storage := x.storage.nextStorage(VECTOR_KIND)
		b.VMLoad(storage, primFloat(layout.Size()))

	case POINTER:
		storage := x.storage.nextStorage(INTEGER_KIND)
		b.VMLoad(storage, primFor(8)).BoxAddressRaw(pointeeSize(layout))

	case STRUCT_REGISTER:
		requireBufferCarrier(carrier, class)
		x.boxStructRegister(b, layout)

	case STRUCT_HFA:
		requireBufferCarrier(carrier, class)
		x.boxHFA(b, layout.(GroupLayout))

	case STRUCT_REFERENCE:
		requireBufferCarrier(carrier, class)
		storage := x.storage.nextStorage(INTEGER_KIND)
		b.VMLoad(storage, primFor(8)).BoxAddress(layout)

	default:
		return nil, &ClassificationError{Layout: layout, Reason: "unrecognized class"}
	}

	return b.Build(), nil
}

func pointeeSize(layout MemoryLayout) int64 {
	if s, ok := layout.(*ScalarLayout); ok && s.PointeeSize > 0 {
		return s.PointeeSize
	}
	return math.MaxInt64
}

func (x *BoxCalculator) boxStructRegister(b *BindingBuilder, layout MemoryLayout) {
	size := layout.Size()

	regs, ok := x.storage.regAlloc(INTEGER_KIND, structSlices(size))
	if !ok {
		x.spillStructBox(b, layout)
		return
	}

	b.Allocate(layout)

	offset := int64(0)
	for _, reg := range regs {
		prim := primFor(sliceLen(size, offset))
		b.Dup().VMLoad(reg, prim).BufferStore(offset, prim)
		offset += slotSize
	}
}

func (x *BoxCalculator) boxHFA(b *BindingBuilder, group GroupLayout) {
	leaves, ok := flattenLeaves(group, nil)
	requireInvariant(ok, "STRUCT_HFA layout has non-scalar leaves")

	storages, allocated := x.storage.nextStorageForHFA(group, len(leaves))
	if !allocated {
		x.spillStructBox(b, group)
		return
	}

	b.Allocate(group)

	offset := int64(0)
	for i, leaf := range leaves {
		prim := primFor(leaf.Size())
		if storages[i].Kind == VECTOR_KIND {
			prim = primFloat(leaf.Size())
		}
		b.Dup().VMLoad(storages[i], prim).BufferStore(offset, prim)
		offset += leaf.Size()
	}
}

// spillStructBox mirrors the unbox stack-spill loop with load/store and
// dup direction inverted: allocate the destination buffer once, then for
// every 8-byte chunk dup the buffer reference, load from the stack slot,
// and store into the buffer. dup fires on every iteration here (not just
// the non-final ones) because the buffer reference must remain live for
// whatever consumes the fully assembled value afterward.
func (x *BoxCalculator) spillStructBox(b *BindingBuilder, layout MemoryLayout) {
	size := layout.Size()

	b.Allocate(layout)

	for offset := int64(0); offset < size; offset += slotSize {
		chunk := sliceLen(size, offset)
		prim := primFor(chunk)
		slot := x.storage.stackAllocSize(chunk, slotSize)

		b.Dup().VMLoad(slot, prim).BufferStore(offset, prim)
	}

	if x.platform.RequiresSubSlotStackPacking() {
		x.storage.alignStack(slotSize)
	}
}
