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

import "testing"

func TestStructLayout_PaddingAndAlignment(t *testing.T) {
	s := NewStructLayout("packed", Int8Layout, Int32Layout)

	if got, want := s.Align(), int64(4); got != want {
		t.Fatalf("Align() = %d, want %d", got, want)
	}
	if got, want := s.Size(), int64(8); got != want {
		t.Fatalf("Size() = %d, want %d (1 byte + 3 padding + 4 bytes)", got, want)
	}
}

func TestStructLayout_AllSameWidth(t *testing.T) {
	s := NewStructLayout("pair", Int64Layout, Int64Layout)
	if got, want := s.Size(), int64(16); got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}
}

func TestUnionLayout_SizedToWidestMember(t *testing.T) {
	u := NewUnionLayout("u", Int8Layout, Float64Layout, Int32Layout)

	if got, want := u.Size(), int64(8); got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}
	if got, want := u.Align(), int64(8); got != want {
		t.Fatalf("Align() = %d, want %d", got, want)
	}
}

func TestFlattenLeaves_NestedGroups(t *testing.T) {
	inner := NewStructLayout("inner", Float32Layout, Float32Layout)
	outer := NewStructLayout("outer", inner, Float32Layout)

	leaves, ok := flattenLeaves(outer, nil)
	if !ok {
		t.Fatalf("flattenLeaves reported non-scalar leaves for an all-float nest")
	}
	if len(leaves) != 3 {
		t.Fatalf("len(leaves) = %d, want 3", len(leaves))
	}
}

func TestFlattenLeaves_KeepsScalarPointerLeaf(t *testing.T) {
	s := NewStructLayout("mixed", Float32Layout, PointerLayout)

	leaves, ok := flattenLeaves(s, nil)
	if !ok {
		t.Fatalf("flattenLeaves rejected a pointer leaf, which is a *ScalarLayout")
	}
	if len(leaves) != 2 {
		t.Fatalf("len(leaves) = %d, want 2", len(leaves))
	}
}
