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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudwego/abi64/internal/abi"
)

func TestGetStats_CountsASuccessfulCall(t *testing.T) {
	before := GetStats()

	arranger := abi.NewCallArranger(abi.LINUX)
	_, _, err := arranger.GetBindings([]abi.Argument{{Carrier: abi.IntegerCarrier, Layout: abi.Int32Layout}}, abi.IntegerCarrier, abi.Int32Layout, true, false, nil)
	require.NoError(t, err)

	after := GetStats()
	require.Greater(t, after.SequencesBuilt, before.SequencesBuilt)
}

func TestDump_RendersRecognizableContent(t *testing.T) {
	arranger := abi.NewCallArranger(abi.LINUX)
	seq, _, err := arranger.GetBindings([]abi.Argument{{Carrier: abi.IntegerCarrier, Layout: abi.Int64Layout}}, abi.IntegerCarrier, abi.Int64Layout, true, false, nil)
	require.NoError(t, err)

	out := Dump(seq)
	require.Contains(t, strings.ToLower(out), "vmstore")
}

func TestValidateRegisterName(t *testing.T) {
	require.NoError(t, ValidateRegisterName("x0"))
	require.NoError(t, ValidateRegisterName("x8"))
	require.NoError(t, ValidateRegisterName("v31"))
	require.Error(t, ValidateRegisterName("x99"))
	require.Error(t, ValidateRegisterName("not-a-register"))
}

func TestValidateRegisterIndex_AllABIRegisters(t *testing.T) {
	desc := abi.LINUX.ABI()

	for _, bank := range desc.InputStorage {
		for _, reg := range bank {
			require.NoError(t, ValidateRegisterIndex(reg), "register %s", reg.Name)
		}
	}
	require.NoError(t, ValidateRegisterIndex(desc.IndirectResult))
	require.NoError(t, ValidateRegisterIndex(desc.Scratch1))
	require.NoError(t, ValidateRegisterIndex(desc.Scratch2))
}
