/*
 *    Copyright 2025 blockarchitech
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseLocaleDecimal parses user-typed amounts, accepting ',' as the decimal separator.
func ParseLocaleDecimal(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty number")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q", s)
	}
	return d, nil
}

// ParseInt parses a whole number, ignoring surrounding whitespace.
func ParseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid whole number %q", s)
	}
	return n, nil
}

// DecimalOrZero is ParseLocaleDecimal with blank, invalid and negative input mapped to zero.
func DecimalOrZero(s string) decimal.Decimal {
	d, err := ParseLocaleDecimal(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// IntOrZero is ParseInt with blank, invalid and negative input mapped to zero.
func IntOrZero(s string) int64 {
	n, err := ParseInt(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
