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

package validation

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"

	"blockarchitech.com/lifeboard/internal/models"
	"blockarchitech.com/lifeboard/internal/utils"
)

func isDecimal(fl validator.FieldLevel) bool {
	_, err := utils.ParseLocaleDecimal(fl.Field().String())
	return err == nil
}

func isPositiveDecimal(fl validator.FieldLevel) bool {
	d, err := utils.ParseLocaleDecimal(fl.Field().String())
	return err == nil && d.IsPositive()
}

func isNonNegativeDecimal(fl validator.FieldLevel) bool {
	d, err := utils.ParseLocaleDecimal(fl.Field().String())
	return err == nil && !d.IsNegative()
}

func isPositiveInt(fl validator.FieldLevel) bool {
	n, err := utils.ParseInt(fl.Field().String())
	return err == nil && n > 0
}

func isNonNegativeInt(fl validator.FieldLevel) bool {
	n, err := utils.ParseInt(fl.Field().String())
	return err == nil && n >= 0
}

func isDueDay(fl validator.FieldLevel) bool {
	n, err := utils.ParseInt(fl.Field().String())
	return err == nil && n >= 1 && n <= 31
}

func isEnergy(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.Int {
		return false
	}
	n := f.Int()
	return n >= models.MinEnergy && n <= models.MaxEnergy
}

func isDate(fl validator.FieldLevel) bool {
	_, err := utils.ParseDate(fl.Field().String(), time.UTC)
	return err == nil
}

func isClock(fl validator.FieldLevel) bool {
	_, err := utils.CombineDateTime("2000-01-01", fl.Field().String(), time.UTC)
	return err == nil
}

func isYearMonth(fl validator.FieldLevel) bool {
	_, err := utils.ParseYearMonth(fl.Field().String())
	return err == nil
}

// enum accepts the string form of any value in allowed.
func enum[T ~string](allowed []T) validator.Func {
	set := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		set[string(v)] = struct{}{}
	}
	return func(fl validator.FieldLevel) bool {
		_, ok := set[fl.Field().String()]
		return ok
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "decimal":
		return "must be a number"
	case "posdecimal":
		return "must be a number greater than zero"
	case "nonnegdecimal":
		return "must be a number zero or greater"
	case "posint":
		return "must be a whole number greater than zero"
	case "nonnegint":
		return "must be a whole number zero or greater"
	case "dueday":
		return "must be a day of month between 1 and 31"
	case "energy":
		return fmt.Sprintf("must be between %d and %d", models.MinEnergy, models.MaxEnergy)
	case "date":
		return "must be a date in YYYY-MM-DD form"
	case "clock":
		return "must be a time in HH:MM form"
	case "yearmonth":
		return "must be a month in YYYY-MM form"
	case "spendingcategory", "recurringcategory", "tasktype", "platform",
		"appstatus", "mood", "activitytype", "priority":
		return "is not a recognised " + fe.Tag()
	}
	return "is invalid"
}
