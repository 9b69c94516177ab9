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

// Package hostabi answers one narrow question: is the process currently
// running on the hardware whose calling convention abi64 describes. The
// engine itself never needs this - it computes recipes for any AArch64
// platform regardless of what it runs on - and no other package or test in
// this module calls it; it is a standalone probe, in the spirit of frugal's
// x86_64 JIT backend probing cpuid before emitting extension-specific
// instructions.
package hostabi

import (
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// IsNativeARM64 reports whether this process is itself running on arm64.
func IsNativeARM64() bool {
	return runtime.GOARCH == "arm64"
}

// HasNEON reports whether the host CPU advertises the NEON/ASIMD vector
// extension that backs AAPCS64's v0-v31 register file. It is meaningless
// (and always false) off arm64.
func HasNEON() bool {
	if !IsNativeARM64() {
		return false
	}
	return cpuid.CPU.Supports(cpuid.ASIMD)
}

// Summary is a snapshot of the host's relevant ABI-adjacent capabilities.
type Summary struct {
	NativeARM64 bool
	NEON        bool
	BrandName   string
}

// Detect captures a Summary of the current host.
func Detect() Summary {
	return Summary{
		NativeARM64: IsNativeARM64(),
		NEON:        HasNEON(),
		BrandName:   cpuid.CPU.BrandName,
	}
}
