// FPSTune Core
// Copyright (c) 2026 The FPSTune Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of FPSTune Core.
//
// FPSTune Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// FPSTune Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with FPSTune Core.  If not, see <http://www.gnu.org/licenses/>.

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testParams struct {
	Risk  *string `json:"risk" validate:"omitempty,oneof=low medium high"`
	Limit int     `json:"limit" validate:"required,gte=1,lte=100"`
}

func TestValidateAndUnmarshal(t *testing.T) {
	t.Parallel()

	var params testParams
	err := ValidateAndUnmarshal([]byte(`{"limit":10,"risk":"medium"}`), &params)
	require.NoError(t, err)
	assert.Equal(t, 10, params.Limit)
	require.NotNil(t, params.Risk)
	assert.Equal(t, "medium", *params.Risk)
}

func TestValidateAndUnmarshalMissingParams(t *testing.T) {
	t.Parallel()

	var params testParams
	err := ValidateAndUnmarshal(nil, &params)
	require.ErrorIs(t, err, ErrMissingParams)
}

func TestValidateAndUnmarshalInvalidJSON(t *testing.T) {
	t.Parallel()

	var params testParams
	err := ValidateAndUnmarshal([]byte(`{not json`), &params)
	require.ErrorIs(t, err, ErrInvalidParams)
}

func TestValidateAndUnmarshalFieldErrors(t *testing.T) {
	t.Parallel()

	var params testParams
	err := ValidateAndUnmarshal([]byte(`{"limit":500,"risk":"reckless"}`), &params)
	require.Error(t, err)

	var validationErr *Error
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Fields, 2)
	assert.Contains(t, err.Error(), "must be at most 100")
	assert.Contains(t, err.Error(), "must be one of")
}

func TestValidateOptionalEmptyParams(t *testing.T) {
	t.Parallel()

	var params testParams
	require.NoError(t, ValidateOptional(nil, &params))
	assert.Zero(t, params.Limit)
}
