package http

import (
	"errors"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"davefit/internal/domain"
)

var registerOnce sync.Once

// registerValidators agrega los tags de enums del dominio al validador de gin.
func registerValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("unexpected validator engine")
			return
		}
		validators := map[string]validator.Func{
			"fitsex": blankOr(func(v string) bool {
				return domain.ParseSex(v) != domain.SexUnset
			}),
			"fitgoal": blankOr(func(v string) bool {
				return domain.ParseGoal(v) != domain.GoalUnset
			}),
			"fitlevel": blankOr(func(v string) bool {
				return domain.ParseLevel(v) != domain.LevelUnset
			}),
			"fitlocation": blankOr(func(v string) bool {
				return domain.ParseLocation(v) != domain.LocationUnset
			}),
		}
		for tag, fn := range validators {
			if err = v.RegisterValidation(tag, fn); err != nil {
				return
			}
		}
	})
	return err
}

// blankOr acepta texto vacio: en una actualizacion parcial significa "sin cambios".
func blankOr(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if strings.TrimSpace(value) == "" {
			return true
		}
		return valid(value)
	}
}
