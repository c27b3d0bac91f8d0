package cms

import (
	"slices"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"github.com/go-playground/validator"
)

type RequestValidator struct {
	validator *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	if err := v.RegisterValidation("blockType", blockTypeValidator); err != nil {
		return nil
	}
	if err := v.RegisterValidation("listKind", listKindValidator); err != nil {
		return nil
	}
	if err := v.RegisterValidation("align", alignValidator); err != nil {
		return nil
	}
	return &RequestValidator{v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	if err := rv.validator.Struct(i); err != nil {
		_, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil
		}
		return err
	}
	return nil
}

func blockTypeValidator(fl validator.FieldLevel) bool {
	return slices.Contains(edtypes.BlockTypes, edtypes.BlockType(fl.Field().String()))
}

func listKindValidator(fl validator.FieldLevel) bool {
	switch edtypes.ListKind(fl.Field().String()) {
	case edtypes.ListNone, edtypes.ListUL, edtypes.ListOL:
		return true
	}
	return false
}

func alignValidator(fl validator.FieldLevel) bool {
	return edtypes.ParseAlign(fl.Field().String()) != ""
}
