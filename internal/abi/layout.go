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

// ScalarKind distinguishes the leaf kinds a ScalarLayout can describe.
type ScalarKind uint8

const (
	ScalarInt ScalarKind = iota
	ScalarFloat
	ScalarPointer
)

func (k ScalarKind) String() string {
	switch k {
	case ScalarInt:
		return "int"
	case ScalarFloat:
		return "float"
	case ScalarPointer:
		return "pointer"
	default:
		return fmt.Sprintf("ScalarKind(%d)", uint8(k))
	}
}

// MemoryLayout is the opaque description of a C type that the rest of the
// engine classifies and allocates storage for. It is intentionally minimal:
// byte size, byte alignment, and (for aggregates) member layouts.
type MemoryLayout interface {
	Size() int64
	Align() int64
	String() string
}

// GroupLayout is a MemoryLayout for a struct or union: it additionally
// exposes its member layouts in declaration order.
type GroupLayout interface {
	MemoryLayout
	Members() []MemoryLayout
}

// ScalarLayout describes a single machine scalar: an integer, a
// floating-point number, or a pointer. PointeeSize is meaningful only for
// ScalarPointer and is the declared size of the memory the pointer
// addresses; zero means unknown, in which case the Box calculator disables
// bounds checking on the boxed result (see the boxAddressRaw trust-boundary
// note carried over from the spec's open questions).
type ScalarLayout struct {
	Kind        ScalarKind
	ByteSize    int64
	ByteAlign   int64
	Name        string
	PointeeSize int64
}

func (s *ScalarLayout) Size() int64  { return s.ByteSize }
func (s *ScalarLayout) Align() int64 { return s.ByteAlign }

func (s *ScalarLayout) String() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("%s%d", s.Kind, s.ByteSize*8)
}

// Common scalar layouts, named the way the AAPCS64 document names them.
var (
	Int8Layout    = &ScalarLayout{Kind: ScalarInt, ByteSize: 1, ByteAlign: 1, Name: "int8"}
	Int16Layout   = &ScalarLayout{Kind: ScalarInt, ByteSize: 2, ByteAlign: 2, Name: "int16"}
	Int32Layout   = &ScalarLayout{Kind: ScalarInt, ByteSize: 4, ByteAlign: 4, Name: "int32"}
	Int64Layout   = &ScalarLayout{Kind: ScalarInt, ByteSize: 8, ByteAlign: 8, Name: "int64"}
	Float32Layout = &ScalarLayout{Kind: ScalarFloat, ByteSize: 4, ByteAlign: 4, Name: "float32"}
	Float64Layout = &ScalarLayout{Kind: ScalarFloat, ByteSize: 8, ByteAlign: 8, Name: "float64"}
	PointerLayout = &ScalarLayout{Kind: ScalarPointer, ByteSize: 8, ByteAlign: 8, Name: "pointer"}
)

// StructLayout is a GroupLayout with C struct layout rules: members are
// placed at increasing, alignment-respecting offsets, and the struct's own
// size is padded up to its alignment.
type StructLayout struct {
	Name      string
	fields    []MemoryLayout
	byteSize  int64
	byteAlign int64
}

// NewStructLayout lays fields out the way a C compiler would: each field at
// the next offset satisfying its own alignment, the struct padded to the
// max member alignment.
func NewStructLayout(name string, fields ...MemoryLayout) *StructLayout {
	var offset, align int64 = 0, 1

	for _, f := range fields {
		a := f.Align()
		if a > align {
			align = a
		}

		offset = alignUp(offset, a) + f.Size()
	}

	return &StructLayout{
		Name:      name,
		fields:    fields,
		byteSize:  alignUp(offset, align),
		byteAlign: align,
	}
}

func (s *StructLayout) Size() int64             { return s.byteSize }
func (s *StructLayout) Align() int64            { return s.byteAlign }
func (s *StructLayout) Members() []MemoryLayout { return s.fields }

func (s *StructLayout) String() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("struct{%d bytes}", s.byteSize)
}

// UnionLayout is a GroupLayout whose members overlap at offset zero; its
// size is the largest member's size padded to the largest alignment.
type UnionLayout struct {
	Name      string
	fields    []MemoryLayout
	byteSize  int64
	byteAlign int64
}

func NewUnionLayout(name string, fields ...MemoryLayout) *UnionLayout {
	var size, align int64 = 0, 1

	for _, f := range fields {
		if f.Size() > size {
			size = f.Size()
		}
		if f.Align() > align {
			align = f.Align()
		}
	}

	return &UnionLayout{
		Name:      name,
		fields:    fields,
		byteSize:  alignUp(size, align),
		byteAlign: align,
	}
}

func (u *UnionLayout) Size() int64             { return u.byteSize }
func (u *UnionLayout) Align() int64            { return u.byteAlign }
func (u *UnionLayout) Members() []MemoryLayout { return u.fields }

func (u *UnionLayout) String() string {
	if u.Name != "" {
		return u.Name
	}
	return fmt.Sprintf("union{%d bytes}", u.byteSize)
}

func alignUp(v, a int64) int64 {
	if a <= 1 {
		return v
	}
	return (v + a - 1) / a * a
}

// flattenLeaves walks a GroupLayout recursively (nested groups are flattened
// the way the AAPCS64 HFA rule requires) and appends every non-group leaf to
// out. It returns false the moment a leaf isn't a *ScalarLayout, since only
// scalar leaves can participate in HFA classification.
func flattenLeaves(g GroupLayout, out []*ScalarLayout) ([]*ScalarLayout, bool) {
	for _, m := range g.Members() {
		switch v := m.(type) {
		case *ScalarLayout:
			out = append(out, v)
		case GroupLayout:
			var ok bool
			out, ok = flattenLeaves(v, out)
			if !ok {
				return out, false
			}
		default:
			return out, false
		}
	}
	return out, true
}
