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

package debug

import (
	"fmt"
	"strings"

	"golang.org/x/arch/arm64/arm64asm"

	"github.com/cloudwego/abi64/internal/abi"
)

// ValidateRegisterName reports whether name (e.g. "x0", "v17") names a
// register arm64asm also recognizes, catching a typo in the ABI's register
// table against a real disassembler's ground truth rather than a second
// hand-maintained list. x0 through x10 and v0 through v31 are the only
// names the engine ever hands out; this accepts the full X0..X30/V0..V31
// range since the ABI descriptor is a subset of the architecture, not the
// other way around.
func ValidateRegisterName(name string) error {
	upper := strings.ToUpper(name)

	for r := arm64asm.X0; r <= arm64asm.X30; r++ {
		if r.String() == upper {
			return nil
		}
	}

	for r := arm64asm.V0; r <= arm64asm.V31; r++ {
		if r.String() == upper {
			return nil
		}
	}

	return fmt.Errorf("debug: %q is not a register arm64asm recognizes", name)
}

// ValidateRegisterIndex checks that reg's name matches what arm64asm calls
// the register at reg's ordinal within its bank, catching a table entry
// whose Name and Index have drifted apart from each other as well as from
// arm64asm's own numbering.
func ValidateRegisterIndex(reg abi.Register) error {
	if err := ValidateRegisterName(reg.Name); err != nil {
		return err
	}

	prefix := "x"
	if strings.HasPrefix(strings.ToLower(reg.Name), "v") {
		prefix = "v"
	}

	want := fmt.Sprintf("%s%d", prefix, reg.Index())
	if !strings.EqualFold(want, reg.Name) {
		return fmt.Errorf("debug: register %q has index %d, expected name %q", reg.Name, reg.Index(), want)
	}

	return nil
}
