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

// Package validation checks raw form input against one declarative schema per
// entity and reports every failing field at once.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"blockarchitech.com/lifeboard/internal/models"
)

// FieldError describes one field that failed its schema.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Errors is the structured result of a failed validation.
type Errors struct {
	Fields []FieldError `json:"fields"`
}

func (e *Errors) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field error and returns e for chaining.
func (e *Errors) Add(field, rule, message string) *Errors {
	e.Fields = append(e.Fields, FieldError{Field: field, Rule: rule, Message: message})
	return e
}

// OrNil returns nil when no field failed.
func (e *Errors) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Field builds a single-field validation error.
func Field(field, rule, message string) error {
	return (&Errors{}).Add(field, rule, message)
}

// AsErrors unwraps err into *Errors when it is a validation failure.
func AsErrors(err error) (*Errors, bool) {
	var verrs *Errors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		mustRegister(v, "notblank", validators.NotBlank)
		mustRegister(v, "decimal", isDecimal)
		mustRegister(v, "posdecimal", isPositiveDecimal)
		mustRegister(v, "nonnegdecimal", isNonNegativeDecimal)
		mustRegister(v, "posint", isPositiveInt)
		mustRegister(v, "nonnegint", isNonNegativeInt)
		mustRegister(v, "dueday", isDueDay)
		mustRegister(v, "energy", isEnergy)
		mustRegister(v, "date", isDate)
		mustRegister(v, "clock", isClock)
		mustRegister(v, "yearmonth", isYearMonth)
		mustRegister(v, "spendingcategory", enum(models.SpendingCategories))
		mustRegister(v, "recurringcategory", enum(models.RecurringCategories))
		mustRegister(v, "tasktype", enum(models.TaskTypes))
		mustRegister(v, "platform", enum(models.Platforms))
		mustRegister(v, "appstatus", enum(models.AppStatuses))
		mustRegister(v, "mood", enum(models.Moods))
		mustRegister(v, "activitytype", enum(models.ActivityTypes))
		mustRegister(v, "priority", enum(models.Priorities))
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// Struct validates a form against the schema declared in its `validate` tags.
// It returns *Errors listing every failing field, or nil.
func Struct(form interface{}) error {
	err := instance().Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validation: %w", err)
	}
	out := &Errors{}
	for _, fe := range fieldErrs {
		out.Add(fieldPath(fe), fe.Tag(), message(fe))
	}
	return out
}

// fieldPath drops the struct name from the namespace: "TaskForm.types[0]" becomes "types[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
