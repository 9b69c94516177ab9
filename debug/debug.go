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

// Package debug exposes counters and a pretty-printer for callers who want
// visibility into the engine's behavior. Nothing in internal/abi or the
// abi64 facade writes to stdout or stderr, and neither does this package:
// Dump and DumpBindings return strings for the caller to print.
package debug

import (
	"sync/atomic"

	"github.com/cloudwego/abi64/internal/abi"
)

// Stats records how many calling sequences the engine has built since
// process start, across every platform.
type Stats struct {
	// SequencesBuilt is the number of successful GetBindings calls.
	SequencesBuilt int64
	// IndirectResults is how many of those used the x8 indirect-result
	// convention for their return value.
	IndirectResults int64
	// CompositionFailures is how many GetBindings calls returned an error
	// or recovered an internal invariant violation.
	CompositionFailures int64
}

// GetStats returns a snapshot of the process-wide counters.
func GetStats() Stats {
	return Stats{
		SequencesBuilt:      atomic.LoadInt64(&abi.SequencesBuilt),
		IndirectResults:     atomic.LoadInt64(&abi.IndirectResults),
		CompositionFailures: atomic.LoadInt64(&abi.CompositionFailure),
	}
}
