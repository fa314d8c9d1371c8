package validator

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	mu       sync.RWMutex
	oneOf    = map[string]map[string]bool{}
)

func init() {
	validate = validator.New()
}

// RegisterSet adds a validation tag that only accepts the given values,
// e.g. RegisterSet("company", []string{"Avon", "Zermat"}).
// Calling it again with the same tag replaces the set.
func RegisterSet(tag string, values []string) error {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}

	mu.Lock()
	_, known := oneOf[tag]
	oneOf[tag] = set
	mu.Unlock()

	if known {
		return nil
	}
	return validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		mu.RLock()
		defer mu.RUnlock()
		return oneOf[tag][strings.TrimSpace(fl.Field().String())]
	})
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	errors := make(map[string]string)
	for _, err := range errs {
		errors[err.Field()] = err.Tag()
	}
	return errors
}
