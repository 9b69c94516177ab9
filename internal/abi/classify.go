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

// TypeClass is the closed set of argument classes the AAPCS64 engine
// recognizes. A layout that classifies outside this set is a programmer
// error (ClassificationError), never a runtime condition to recover from.
type TypeClass uint8

const (
	INTEGER TypeClass = iota
	FLOAT
	POINTER
	STRUCT_REGISTER
	STRUCT_HFA
	STRUCT_REFERENCE
)

func (c TypeClass) String() string {
	switch c {
	case INTEGER:
		return "INTEGER"
	case FLOAT:
		return "FLOAT"
	case POINTER:
		return "POINTER"
	case STRUCT_REGISTER:
		return "STRUCT_REGISTER"
	case STRUCT_HFA:
		return "STRUCT_HFA"
	case STRUCT_REFERENCE:
		return "STRUCT_REFERENCE"
	default:
		return fmt.Sprintf("TypeClass(%d)", uint8(c))
	}
}

// maxRegisterAggregateSize is the AAPCS64 cutoff below (and at) which a
// struct is classified STRUCT_REGISTER instead of STRUCT_REFERENCE.
const maxRegisterAggregateSize = 16

// hfaMinLeaves and hfaMaxLeaves bound the number of flattened leaves a
// homogeneous floating aggregate may have (AAPCS64 §5.4, "at most four").
const (
	hfaMinLeaves = 1
	hfaMaxLeaves = 4
)

// Classify maps a MemoryLayout to its TypeClass. forVariadicFunction is
// threaded through per the spec but the default classifier ignores it; no
// platform in this implementation overrides that (see DESIGN.md).
func Classify(layout MemoryLayout, forVariadicFunction bool) (TypeClass, error) {
	switch l := layout.(type) {
	case *ScalarLayout:
		switch l.Kind {
		case ScalarInt:
			return INTEGER, nil
		case ScalarFloat:
			return FLOAT, nil
		case ScalarPointer:
			return POINTER, nil
		default:
			return 0, &ClassificationError{Layout: layout, Reason: fmt.Sprintf("unrecognized scalar kind %v", l.Kind)}
		}
	case GroupLayout:
		if isHFA(l) {
			return STRUCT_HFA, nil
		}
		if l.Size() <= maxRegisterAggregateSize {
			return STRUCT_REGISTER, nil
		}
		return STRUCT_REFERENCE, nil
	default:
		return 0, &ClassificationError{Layout: layout, Reason: "layout is neither a scalar nor a group"}
	}
}

// isHFA reports whether g's flattened leaves are all the same floating-point
// type and their count is within {1,2,3,4}.
func isHFA(g GroupLayout) bool {
	if len(g.Members()) == 0 {
		return false
	}

	leaves, ok := flattenLeaves(g, nil)
	if !ok || len(leaves) < hfaMinLeaves || len(leaves) > hfaMaxLeaves {
		return false
	}

	kind := leaves[0].Kind
	size := leaves[0].ByteSize

	if kind != ScalarFloat {
		return false
	}

	for _, leaf := range leaves[1:] {
		if leaf.Kind != kind || leaf.ByteSize != size {
			return false
		}
	}

	return true
}
