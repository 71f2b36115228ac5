package handler

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/julnac/salon-manager/backend/internal/utils"
)

func registerStrongPassword(validate *validator.Validate, trans ut.Translator) error {
	err := validate.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return utils.IsStrongPassword(fl.Field().String())
	})
	if err != nil {
		return err
	}

	return validate.RegisterTranslation("strongpassword", trans, func(ut ut.Translator) error {
		return ut.Add("strongpassword", "{0} must contain at least one uppercase letter and one special character", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("strongpassword", fe.Field())
		return t
	})
}
