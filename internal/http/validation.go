package http

import (
	"errors"
	"log"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/palindromes/internal/palindrome"
)

const languageTag = "palindrome_language"

var registerValidatorsOnce sync.Once

// registerValidators adds the custom binding tags to gin's validator engine.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			log.Printf("Binding engine is not go-playground/validator; %s tag unavailable", languageTag)
			return
		}
		if err := v.RegisterValidation(languageTag, validateLanguage); err != nil {
			log.Printf("Failed to register %s validator: %v", languageTag, err)
		}
	})
}

func validateLanguage(fl validator.FieldLevel) bool {
	_, err := palindrome.ParseLanguage(fl.Field().String())
	return err == nil
}

// detectBindError maps a DetectRequest binding failure to a client message.
func detectBindError(err error, req DetectRequest) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == languageTag {
				_, langErr := palindrome.ParseLanguage(req.Language)
				return langErr.Error()
			}
		}
	}
	return "text is required and must be a non-empty string"
}
