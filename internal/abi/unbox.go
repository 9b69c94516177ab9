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

// UnboxCalculator implements the managed-to-native direction (§4.4.1): the
// argument side of a downcall, and the return side of an upcall.
type UnboxCalculator struct {
	platform Platform
	storage  *StorageCalculator
}

// NewUnboxCalculator builds an Unbox calculator with its own StorageCalculator.
func NewUnboxCalculator(platform Platform, forArguments bool, forVariadicFunction bool) *UnboxCalculator {
	return &UnboxCalculator{
		platform: platform,
		storage:  NewStorageCalculator(platform, forArguments, forVariadicFunction),
	}
}

func (u *UnboxCalculator) Storage() *StorageCalculator { return u.storage }

// GetIndirectBindings reserves x8 for the caller-supplied return buffer
// pointer: unboxAddress -> vmStore(x8, integer).
func (u *UnboxCalculator) GetIndirectBindings() []Binding {
	return NewBindingBuilder().
		UnboxAddress().
		VMStore(regStorage(u.platform.ABI().IndirectResult), primFor(8)).
		Build()
}

func (u *UnboxCalculator) GetBindings(carrier Carrier, layout MemoryLayout) ([]Binding, error) {
	class, err := classifyFor(u.platform, u.storage, layout)
	if err != nil {
		return nil, err
	}

	b := NewBindingBuilder()

	switch class {
	case INTEGER:
		storage := u.storage.nextStorage(INTEGER_KIND)
		b.VMStore(storage, primFor(layout.Size()))

	case FLOAT:
		storage := u.storage.nextStorage(VECTOR_KIND)
		b.VMStore(storage, primFloat(layout.Size()))

	case POINTER:
		storage := u.storage.nextStorage(INTEGER_KIND)
		b.UnboxAddress().VMStore(storage, primFor(8))

	case STRUCT_REGISTER:
		requireBufferCarrier(carrier, class)
		u.unboxStructRegister(b, layout)

	case STRUCT_HFA:
		requireBufferCarrier(carrier, class)
		u.unboxHFA(b, layout.(GroupLayout))

	case STRUCT_REFERENCE:
		requireBufferCarrier(carrier, class)
		storage := u.storage.nextStorage(INTEGER_KIND)
		b.Copy(layout).UnboxAddress().VMStore(storage, primFor(8))

	default:
		return nil, &ClassificationError{Layout: layout, Reason: "unrecognized class"}
	}

	return b.Build(), nil
}

// unboxStructRegister implements the STRUCT_REGISTER arm of §4.4.1,
// including the Windows variadic partial-spill tail.
func (u *UnboxCalculator) unboxStructRegister(b *BindingBuilder, layout MemoryLayout) {
	size := layout.Size()

	if u.platform.SpillsVariadicStructsPartially() && u.storage.forVarArgs {
		regs, covered := u.storage.regAllocPartial(INTEGER_KIND, layout)

		if len(regs) > 0 {
			offset := int64(0)
			for _, reg := range regs {
				prim := primFor(sliceLen(size, offset))
				if offset+slotSize < size {
					b.Dup()
				}
				b.BufferLoad(offset, prim).VMStore(reg, prim)
				offset += slotSize
			}
			u.spillStructUnboxFrom(b, layout, covered)
			return
		}

		u.spillStructUnboxFrom(b, layout, 0)
		return
	}

	regs, ok := u.storage.regAlloc(INTEGER_KIND, structSlices(size))

	if !ok {
		u.spillStructUnboxFrom(b, layout, 0)
		return
	}

	offset := int64(0)
	for i, reg := range regs {
		prim := primFor(sliceLen(size, offset))
		if i != len(regs)-1 {
			b.Dup()
		}
		b.BufferLoad(offset, prim).VMStore(reg, prim)
		offset += slotSize
	}
}

// unboxHFA implements the STRUCT_HFA arm of §4.4.1.
func (u *UnboxCalculator) unboxHFA(b *BindingBuilder, group GroupLayout) {
	leaves, ok := flattenLeaves(group, nil)
	requireInvariant(ok, "STRUCT_HFA layout has non-scalar leaves")

	storages, allocated := u.storage.nextStorageForHFA(group, len(leaves))

	if !allocated {
		u.spillStructUnboxFrom(b, group, 0)
		return
	}

	offset := int64(0)
	for i, leaf := range leaves {
		prim := primFor(leaf.Size())
		if storages[i].Kind == VECTOR_KIND {
			prim = primFloat(leaf.Size())
		}
		if i != len(leaves)-1 {
			b.Dup()
		}
		b.BufferLoad(offset, prim).VMStore(storages[i], prim)
		offset += leaf.Size()
	}
}

// spillStructUnboxFrom implements the stack-spill loop of §4.4.1, starting
// at an arbitrary byte offset so the Windows partial-spill tail can resume
// where register allocation left off.
func (u *UnboxCalculator) spillStructUnboxFrom(b *BindingBuilder, layout MemoryLayout, start int64) {
	size := layout.Size()

	for offset := start; offset < size; offset += slotSize {
		chunk := sliceLen(size, offset)
		prim := primFor(chunk)
		slot := u.storage.stackAllocSize(chunk, slotSize)

		if offset+slotSize < size {
			b.Dup()
		}

		b.BufferLoad(offset, prim).VMStore(slot, prim)
	}

	if u.platform.RequiresSubSlotStackPacking() {
		u.storage.alignStack(slotSize)
	}
}
