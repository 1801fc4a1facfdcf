package dto

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/Inventario-estoque/internal/domain"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Los mensajes usan la etiqueta legible del campo en lugar del nombre Go.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			if l := f.Tag.Get("label"); l != "" {
				return l
			}
			return f.Name
		})
	})
	return validate
}

// Validate valida la estructura y traduce el primer fallo a domain.ErrInvalidInput con un mensaje legible.
func Validate(in any) error {
	err := validatorInstance().Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s es obligatorio", domain.ErrInvalidInput, fe.Field())
	case "max":
		return fmt.Errorf("%w: %s excede %s caracteres", domain.ErrInvalidInput, fe.Field(), fe.Param())
	case "oneof":
		return fmt.Errorf("%w: %s debe ser uno de: %s", domain.ErrInvalidInput, fe.Field(), fe.Param())
	default:
		return fmt.Errorf("%w: %s no es válido", domain.ErrInvalidInput, fe.Field())
	}
}
