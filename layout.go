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

package abi64

import "github.com/cloudwego/abi64/internal/abi"

// MemoryLayout, GroupLayout, and the concrete layout constructors are
// re-exported from internal/abi so callers never need to import an
// internal package to build a FunctionDescriptor.
type (
	MemoryLayout = abi.MemoryLayout
	GroupLayout  = abi.GroupLayout
	ScalarLayout = abi.ScalarLayout
	StructLayout = abi.StructLayout
	UnionLayout  = abi.UnionLayout
	ScalarKind   = abi.ScalarKind
)

const (
	ScalarInt     = abi.ScalarInt
	ScalarFloat   = abi.ScalarFloat
	ScalarPointer = abi.ScalarPointer
)

var (
	Int8    = abi.Int8Layout
	Int16   = abi.Int16Layout
	Int32   = abi.Int32Layout
	Int64   = abi.Int64Layout
	Float32 = abi.Float32Layout
	Float64 = abi.Float64Layout
	Pointer = abi.PointerLayout
)

// NewStruct lays out fields the way a C compiler would: each member at the
// next offset satisfying its own alignment, the whole struct padded to the
// widest member alignment.
func NewStruct(name string, fields ...MemoryLayout) *StructLayout {
	return abi.NewStructLayout(name, fields...)
}

// NewUnion lays out fields overlapping at offset zero, sized to the widest
// member.
func NewUnion(name string, fields ...MemoryLayout) *UnionLayout {
	return abi.NewUnionLayout(name, fields...)
}

// NewPointer describes a pointer whose pointee is pointeeSize bytes long.
// A pointeeSize of zero means unknown, which disables bounds checking on
// the boxed result (see the boxAddressRaw trust-boundary note in
// DESIGN.md).
func NewPointer(pointeeSize int64) *ScalarLayout {
	return &ScalarLayout{Kind: ScalarPointer, ByteSize: 8, ByteAlign: 8, PointeeSize: pointeeSize}
}

// TypeClass and its six values are re-exported for callers inspecting a
// CallingSequence's recipes (e.g. the debug package).
type TypeClass = abi.TypeClass

const (
	INTEGER          = abi.INTEGER
	FLOAT            = abi.FLOAT
	POINTER          = abi.POINTER
	STRUCT_REGISTER  = abi.STRUCT_REGISTER
	STRUCT_HFA       = abi.STRUCT_HFA
	STRUCT_REFERENCE = abi.STRUCT_REFERENCE
)

// Classify exposes the type classifier (§4.1) directly, for callers that
// want to decide in-memory-return or similar questions without going
// through GetBindings.
func Classify(layout MemoryLayout, forVariadicFunction bool) (TypeClass, error) {
	return abi.Classify(layout, forVariadicFunction)
}
