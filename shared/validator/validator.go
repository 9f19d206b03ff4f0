package validator

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"roombooking/shared/constant"
	"roombooking/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var (
	validate *val.Validate

	// jsonNames caches struct field name to json name per struct type.
	jsonNames sync.Map
)

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(tagName)

	for tag, fn := range map[string]val.Func{
		"datefrom":  siblingNotBefore(constant.DayFormat),
		"timeafter": siblingStrictlyAfter(constant.TimeOfDayFormat),
	} {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

func tagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}

	return name
}

// parseWithSibling parses the field and the sibling named by the tag param
// with layout.
func parseWithSibling(fl val.FieldLevel, layout string) (field, sibling time.Time, ok bool) {
	field, err := time.Parse(layout, fl.Field().String())
	if err != nil {
		return field, sibling, false
	}

	other, _, _, found := fl.GetStructFieldOKAdvanced2(fl.Parent(), fl.Param())
	if !found || other.Kind() != reflect.String {
		return field, sibling, false
	}

	sibling, err = time.Parse(layout, other.String())

	return field, sibling, err == nil
}

func siblingNotBefore(layout string) val.Func {
	return func(fl val.FieldLevel) bool {
		end, start, ok := parseWithSibling(fl, layout)

		return ok && !end.Before(start)
	}
}

func siblingStrictlyAfter(layout string) val.Func {
	return func(fl val.FieldLevel) bool {
		end, start, ok := parseWithSibling(fl, layout)

		return ok && end.After(start)
	}
}

// ValidateStruct runs the struct's validate tags and reports every violation
// as a single bad request failure.
func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(describe(err, siblingJSONName(data))) //nolint:wrapcheck
	}

	return nil
}

// siblingJSONName resolves a Go field name to its json name within the
// struct found at the given namespace.
func siblingJSONName(root any) func(namespace, field string) string {
	return func(namespace, field string) string {
		typ := reflect.TypeOf(root)

		parts := strings.Split(namespace, ".")
		for _, part := range parts[1 : len(parts)-1] {
			typ = elem(typ)
			if typ.Kind() != reflect.Struct {
				return field
			}

			name, _, _ := strings.Cut(part, "[")

			sf, ok := typ.FieldByName(name)
			if !ok {
				return field
			}

			typ = sf.Type
		}

		return lookupJSONName(elem(typ), field)
	}
}

func elem(typ reflect.Type) reflect.Type {
	for typ.Kind() == reflect.Pointer || typ.Kind() == reflect.Slice || typ.Kind() == reflect.Array {
		typ = typ.Elem()
	}

	return typ
}

func lookupJSONName(typ reflect.Type, field string) string {
	if typ.Kind() != reflect.Struct {
		return field
	}

	names, _ := jsonNames.LoadOrStore(typ, buildJSONNames(typ))
	if name, ok := names.(map[string]string)[field]; ok {
		return name
	}

	return field
}

func buildJSONNames(typ reflect.Type) map[string]string {
	names := make(map[string]string, typ.NumField())
	for i := range typ.NumField() {
		f := typ.Field(i)
		names[f.Name] = tagName(f)
	}

	return names
}
