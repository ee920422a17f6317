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

package repository

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"blockarchitech.com/lifeboard/internal/utils"
)

// reader pulls typed fields out of a raw document. Malformed values degrade to
// the zero value and are logged at Debug; absent fields degrade silently.
type reader struct {
	id     string
	data   map[string]interface{}
	logger *zap.Logger
}

func (r reader) malformed(field string, v interface{}) {
	r.logger.Debug("Coercing malformed field", zap.String("id", r.id), zap.String("field", field), zap.Any("value", v))
}

func (r reader) str(field string) string {
	v, ok := r.data[field]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.malformed(field, v)
		return ""
	}
	return s
}

func (r reader) boolean(field string) bool {
	v, ok := r.data[field]
	if !ok || v == nil {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		r.malformed(field, v)
	}
	return b
}

// timePtr accepts native timestamps and RFC 3339 strings.
func (r reader) timePtr(field string) *time.Time {
	v, ok := r.data[field]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case time.Time:
		return &t
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return &parsed
		}
	}
	r.malformed(field, v)
	return nil
}

func (r reader) timestamp(field string) time.Time {
	if t := r.timePtr(field); t != nil {
		return *t
	}
	return time.Time{}
}

func (r reader) integer(field string) (int64, bool) {
	v, ok := r.data[field]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return n, true
	case float64:
		if !math.IsNaN(n) && !math.IsInf(n, 0) {
			return int64(n), true
		}
	case string:
		if parsed, err := utils.ParseInt(n); err == nil {
			return parsed, true
		}
	}
	r.malformed(field, v)
	return 0, false
}

func (r reader) number(field string) (decimal.Decimal, bool) {
	v, ok := r.data[field]
	if !ok || v == nil {
		return decimal.Zero, false
	}
	switch n := v.(type) {
	case int64:
		return decimal.NewFromInt(n), true
	case float64:
		if !math.IsNaN(n) && !math.IsInf(n, 0) {
			return decimal.NewFromFloat(n), true
		}
	case string:
		if parsed, err := utils.ParseLocaleDecimal(n); err == nil {
			return parsed, true
		}
	}
	r.malformed(field, v)
	return decimal.Zero, false
}

// list reads a list of strings. A bare string is treated as a one-element list.
func (r reader) list(field string) []string {
	v, ok := r.data[field]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				r.malformed(field, e)
				continue
			}
			out = append(out, s)
		}
		return out
	}
	r.malformed(field, v)
	return nil
}
