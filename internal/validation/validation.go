package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/punchcal/internal/i18n"
	"github.com/julianstephens/punchcal/internal/models"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()

	Validate.RegisterStructValidation(validateCoordsPair, models.PunchRequest{})
}

// validateCoordsPair rejects a punch that carries only one coordinate.
func validateCoordsPair(sl validator.StructLevel) {
	req := sl.Current().Interface().(models.PunchRequest)
	if (req.Lat == nil) != (req.Lng == nil) {
		sl.ReportError(req.Lat, "Lat", "Lat", "coordspair", "")
	}
}

type FieldError struct {
	Field string
	Tag   string
	Msg   string
}

// Errors is returned by Struct when one or more fields fail.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Msg
	}
	return strings.Join(msgs, "; ")
}

// Struct validates s and translates each failing field with tr.
func Struct(s any, tr *i18n.Translator) error {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		params := i18n.Params{"field": field, "param": fe.Param()}

		var msg string
		switch fe.Tag() {
		case "required":
			msg = tr.T("VALIDATION_REQUIRED", params)
		case "max":
			msg = tr.T("VALIDATION_TOO_LONG", params)
		case "oneof":
			msg = tr.T("VALIDATION_ONE_OF", params)
		case "coordspair":
			msg = tr.T("VALIDATION_COORDS_PAIR")
		default:
			msg = tr.T("VALIDATION_INVALID", params)
		}
		out = append(out, FieldError{Field: field, Tag: fe.Tag(), Msg: msg})
	}
	return out
}
