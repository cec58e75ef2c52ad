// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package oracle

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMismatch is the cause of every *Mismatch.
var ErrMismatch = errors.New("oracle mismatch")

// Mismatch reports the first element at which a result buffer disagrees
// with its reference.
type Mismatch struct {
	Op       string
	Index    int // element index in the result buffer, or chunk offset
	Lane     int
	Operands []any
	Masked   bool
	Set      bool // mask bit of Lane, when Masked
	Expected any
	Strict   any // strict reference, for ulp-bounded checks
	Actual   any
	Detail   string
}

func (m *Mismatch) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: at index #%d (lane %d", m.Op, m.Index, m.Lane)
	if m.Masked {
		fmt.Fprintf(&sb, ", mask = %t", m.Set)
	}
	sb.WriteByte(')')
	if m.Detail != "" {
		fmt.Fprintf(&sb, " %s", m.Detail)
	}
	if len(m.Operands) > 0 {
		sb.WriteString(", inputs = ")
		for i, o := range m.Operands {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprint(&sb, o)
		}
	}
	fmt.Fprintf(&sb, ", actual = %v, expected = %v", m.Actual, m.Expected)
	if m.Strict != nil {
		fmt.Fprintf(&sb, " or %v within 1 ulp", m.Strict)
	}
	return sb.String()
}

func (m *Mismatch) Unwrap() error {
	return ErrMismatch
}
