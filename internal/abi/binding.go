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

import (
	"fmt"

	"github.com/oleiade/lane"
)

// BindingOp is one operation from the recipe alphabet described in §3. Its
// runtime semantics belong to the external binding executor (out of scope
// per §1); the engine only composes ops into ordered sequences.
type BindingOp uint8

const (
	OpDup BindingOp = iota
	OpVMLoad
	OpVMStore
	OpBufferLoad
	OpBufferStore
	OpAllocate
	OpCopy
	OpUnboxAddress
	OpBoxAddress
	OpBoxAddressRaw
)

func (op BindingOp) String() string {
	switch op {
	case OpDup:
		return "dup"
	case OpVMLoad:
		return "vmLoad"
	case OpVMStore:
		return "vmStore"
	case OpBufferLoad:
		return "bufferLoad"
	case OpBufferStore:
		return "bufferStore"
	case OpAllocate:
		return "allocate"
	case OpCopy:
		return "copy"
	case OpUnboxAddress:
		return "unboxAddress"
	case OpBoxAddress:
		return "boxAddress"
	case OpBoxAddressRaw:
		return "boxAddressRaw"
	default:
		return fmt.Sprintf("BindingOp(%d)", uint8(op))
	}
}

// Prim is the primitive carrier type attached to a vmLoad/vmStore or
// bufferLoad/bufferStore, chosen to match the byte width of the slice of
// the argument being moved (1, 2, 4, or 8 bytes; 4 or 8 for floats).
type Prim struct {
	Bytes int64
	Float bool
}

func primFor(nbytes int64) Prim {
	requireInvariant(nbytes == 1 || nbytes == 2 || nbytes == 4 || nbytes == 8, fmt.Sprintf("no primitive carrier for %d bytes", nbytes))
	return Prim{Bytes: nbytes}
}

func primFloat(nbytes int64) Prim {
	requireInvariant(nbytes == 4 || nbytes == 8, fmt.Sprintf("no floating-point primitive carrier for %d bytes", nbytes))
	return Prim{Bytes: nbytes, Float: true}
}

func (p Prim) String() string {
	if p.Float {
		return fmt.Sprintf("f%d", p.Bytes*8)
	}
	return fmt.Sprintf("i%d", p.Bytes*8)
}

// Binding is one composed operation of a recipe.
type Binding struct {
	Op      BindingOp
	Storage VMStorage
	Prim    Prim
	Offset  int64
	Layout  MemoryLayout
	Size    int64
}

func (b Binding) String() string {
	switch b.Op {
	case OpVMLoad, OpVMStore:
		return fmt.Sprintf("%s(%s,%s)", b.Op, b.Storage, b.Prim)
	case OpBufferLoad, OpBufferStore:
		return fmt.Sprintf("%s(%d,%s)", b.Op, b.Offset, b.Prim)
	case OpAllocate, OpCopy, OpBoxAddress:
		return fmt.Sprintf("%s(%s)", b.Op, b.Layout)
	case OpBoxAddressRaw:
		return fmt.Sprintf("%s(%d)", b.Op, b.Size)
	default:
		return b.Op.String()
	}
}

// BindingBuilder accumulates one argument's (or the return's) recipe in
// emission order, backed by an oleiade/lane Deque: ops are pushed at the
// back by the calculators in unbox.go and box.go and drained from the front by
// Build, preserving emission order without a manual index.
type BindingBuilder struct {
	ops *lane.Deque
}

// NewBindingBuilder returns an empty builder.
func NewBindingBuilder() *BindingBuilder {
	return &BindingBuilder{ops: lane.NewDeque()}
}

func (b *BindingBuilder) push(binding Binding) *BindingBuilder {
	b.ops.Append(binding)
	return b
}

func (b *BindingBuilder) Dup() *BindingBuilder {
	return b.push(Binding{Op: OpDup})
}

func (b *BindingBuilder) VMLoad(storage VMStorage, prim Prim) *BindingBuilder {
	return b.push(Binding{Op: OpVMLoad, Storage: storage, Prim: prim})
}

func (b *BindingBuilder) VMStore(storage VMStorage, prim Prim) *BindingBuilder {
	return b.push(Binding{Op: OpVMStore, Storage: storage, Prim: prim})
}

func (b *BindingBuilder) BufferLoad(offset int64, prim Prim) *BindingBuilder {
	return b.push(Binding{Op: OpBufferLoad, Offset: offset, Prim: prim})
}

func (b *BindingBuilder) BufferStore(offset int64, prim Prim) *BindingBuilder {
	return b.push(Binding{Op: OpBufferStore, Offset: offset, Prim: prim})
}

func (b *BindingBuilder) Allocate(layout MemoryLayout) *BindingBuilder {
	return b.push(Binding{Op: OpAllocate, Layout: layout})
}

func (b *BindingBuilder) Copy(layout MemoryLayout) *BindingBuilder {
	return b.push(Binding{Op: OpCopy, Layout: layout})
}

func (b *BindingBuilder) UnboxAddress() *BindingBuilder {
	return b.push(Binding{Op: OpUnboxAddress})
}

func (b *BindingBuilder) BoxAddress(layout MemoryLayout) *BindingBuilder {
	return b.push(Binding{Op: OpBoxAddress, Layout: layout})
}

func (b *BindingBuilder) BoxAddressRaw(size int64) *BindingBuilder {
	return b.push(Binding{Op: OpBoxAddressRaw, Size: size})
}

// Build drains the builder into an ordered slice. The builder must not be
// reused afterward.
func (b *BindingBuilder) Build() []Binding {
	out := make([]Binding, 0, b.ops.Size())

	for !b.ops.Empty() {
		v := b.ops.Shift()
		out = append(out, v.(Binding))
	}

	return out
}
