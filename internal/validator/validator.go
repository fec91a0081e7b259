// Package validator registers the custom binding tags used by request
// payloads and turns binding failures into readable messages.
package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// enumTags maps a binding tag to the set of values it accepts.
var enumTags = map[string][]string{
	"transaction_type":   {"receita", "despesa"},
	"installment_period": {"weeks", "months"},
	"recurrence":         {"fixa", "parcelada"},
	"user_role":          {"superadmin", "admin", "member"},
	"account_type":       {"conta_corrente", "poupanca", "carteira", "cartao_credito"},
	"order_sort":         {"asc", "desc"},
	"default_view":       {"daily", "weekly", "monthly"},
	"activity_category":  {"pedido", "produto", "cliente", "configuracao", "financeiro", "usuario"},
}

// Register registers all custom validators with the Gin binding engine and
// makes field errors report JSON names instead of Go field names.
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("hex_color", validateHexColor)
	for tag, values := range enumTags {
		_ = v.RegisterValidation(tag, oneOf(values))
	}
}

func jsonFieldName(fld reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func oneOf(values []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		got := fl.Field().String()
		for _, v := range values {
			if got == v {
				return true
			}
		}
		return false
	}
}

// Describe renders a binding error as a user-facing message. Missing
// required fields are listed together, e.g.
// "Campos obrigatórios: customer, product, delivery_date".
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Dados inválidos"
	}

	var missing, invalid []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "Campos obrigatórios: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "Campos inválidos: "+strings.Join(invalid, ", "))
	}
	return strings.Join(parts, "; ")
}
