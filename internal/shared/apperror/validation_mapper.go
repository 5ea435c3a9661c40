package apperror

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// formatFieldName turns "plannedQuantity" or "planned_quantity" into "Planned Quantity".
func formatFieldName(s string) string {
	s = camelBoundary.ReplaceAllString(s, "$1 $2")
	s = strings.ReplaceAll(s, "_", " ")

	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError converts the first binding error into an AppError.
func MapValidationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		e := errs[0]
		humanReadableField := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return RequiredField(humanReadableField)
		default:
			return InvalidField(humanReadableField)
		}
	}

	return New(
		CodeValidation,
		"Invalid input",
		http.StatusBadRequest,
	)
}
