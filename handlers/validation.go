package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"agromopomulo.id/bankpohon/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("tree_category", func(fl validator.FieldLevel) bool {
		_, ok := models.TreeCatalog[fl.Field().String()]
		return ok
	})
	v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		g := fl.Field().String()
		return g == models.GenderMale || g == models.GenderFemale
	})
	v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return models.IsValidRole(fl.Field().String())
	})
	v.RegisterStructValidation(registrationTreeType, registrationReq{})
	return v
}

// registrationTreeType requires tree_type to be one of the species offered
// for the chosen category.
func registrationTreeType(sl validator.StructLevel) {
	req := sl.Current().Interface().(registrationReq)
	if _, ok := models.TreeCatalog[req.TreeCategory]; !ok || req.TreeType == "" {
		return
	}
	if !models.IsKnownTreeType(req.TreeCategory, req.TreeType) {
		sl.ReportError(req.TreeType, "tree_type", "TreeType", "tree_type_catalog", req.TreeCategory)
	}
}

// validateStruct returns a user-facing message for the first failing field,
// or "" when s is valid.
func validateStruct(s interface{}) string {
	err := validate.Struct(s)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	return fieldMessage(verrs[0])
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s wajib diisi", field)
	case "email":
		return fmt.Sprintf("%s harus berupa alamat email yang valid", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s minimal %s karakter", field, fe.Param())
		}
		return fmt.Sprintf("%s minimal %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s maksimal %s karakter", field, fe.Param())
		}
		return fmt.Sprintf("%s maksimal %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s tidak boleh kurang dari %s", field, fe.Param())
	case "uuid":
		return fmt.Sprintf("%s tidak valid", field)
	case "tree_category":
		return fmt.Sprintf("%s harus buah atau kayu", field)
	case "tree_type_catalog":
		return fmt.Sprintf("%s tidak tersedia untuk kategori %s", field, fe.Param())
	case "gender":
		return fmt.Sprintf("%s harus laki-laki atau perempuan", field)
	case "role":
		return fmt.Sprintf("%s harus admin atau user", field)
	default:
		return fmt.Sprintf("%s tidak valid", field)
	}
}
