package server

import (
	"sync"

	"base64-converter/internal/converter"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	copyTargetOutput = "output"
	copyTargetImage  = "image"
)

var validatorOnce sync.Once

func registerValidators() {
	validatorOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = engine.RegisterValidation("convmode", func(fl validator.FieldLevel) bool {
			_, err := converter.ParseMode(fl.Field().String())
			return err == nil
		})
		_ = engine.RegisterValidation("copytarget", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case copyTargetOutput, copyTargetImage:
				return true
			}
			return false
		})
	})
}
