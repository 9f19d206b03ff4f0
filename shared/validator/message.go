package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var templates = map[string]string{
	"required":  "{field} is required",
	"oneof":     "{field} must be one of {param}",
	"max":       "{field} must be at most {param}",
	"min":       "{field} must be at least {param}",
	"uuid":      "{field} must be a valid UUID",
	"datetime":  "{field} must match the layout {param}",
	"datefrom":  "{field} must not be before {param}",
	"timeafter": "{field} must be after {param}",
	"gtfield":   "{field} must be after {param}",
	"unique":    "{field} must not contain duplicates",
}

// crossField lists tags whose param names a sibling struct field.
var crossField = map[string]bool{"datefrom": true, "timeafter": true, "gtfield": true}

// describe renders every violation in err, joined with "; ".
func describe(err error, jsonName func(parent, field string) string) string {
	var violations val.ValidationErrors
	if !errors.As(err, &violations) {
		return err.Error()
	}

	out := make([]string, 0, len(violations))

	for _, v := range violations {
		tmpl, ok := templates[v.Tag()]
		if !ok {
			out = append(out, v.Error())

			continue
		}

		param := v.Param()
		if crossField[v.Tag()] {
			param = jsonName(v.StructNamespace(), param)
		}

		out = append(out, strings.NewReplacer("{field}", fieldPath(v), "{param}", param).Replace(tmpl))
	}

	return strings.Join(out, "; ")
}

// fieldPath drops the root type from the namespace, e.g. "recurrence.weekdays[0]".
func fieldPath(v val.FieldError) string {
	ns := v.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}

	return ns
}
