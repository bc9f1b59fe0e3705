package catalog

import (
	"reflect"
	"strings"
	"sync"

	"catalog-app/internal/domain/catalog"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the catalog rules to gin's validator and makes
// field errors report JSON names.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonName)
		_ = v.RegisterValidation("enum", validateEnum)
		_ = v.RegisterValidation("releasedate", validateReleaseDate)
	})
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// enum accepts any value of a closed set from the catalog domain.
func validateEnum(fl validator.FieldLevel) bool {
	e, ok := fl.Field().Interface().(catalog.Enum)
	return ok && e.Valid()
}

func validateReleaseDate(fl validator.FieldLevel) bool {
	return catalog.ValidReleaseDate(int(fl.Field().Int()))
}

// fieldErrors turns validator errors into form field paths such as
// "titles[0].lang".
func fieldErrors(errs validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(errs))
	for _, fe := range errs {
		path := fe.Namespace()
		if i := strings.IndexByte(path, '.'); i >= 0 {
			path = path[i+1:]
		}
		path = strings.TrimPrefix(path, "RevisionMeta.")
		out[path] = append(out[path], fe.Tag())
	}
	return out
}
