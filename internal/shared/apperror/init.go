package apperror

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var initOnce sync.Once

// Init makes gin's validator report json field names, so MapValidationError
// can name "plannedQuantity" instead of "PlannedQuantity". Safe to call more
// than once.
func Init() {
	initOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonFieldName)
		}
	})
}

// jsonFieldName returns the json key of fld. Untagged fields keep the Go
// name and fields hidden with "-" yield "".
func jsonFieldName(fld reflect.StructField) string {
	tag, ok := fld.Tag.Lookup("json")
	if !ok {
		return fld.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}
