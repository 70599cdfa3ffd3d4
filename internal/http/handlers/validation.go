package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	usernameRE = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

	validatorsOnce sync.Once
)

// registerValidators installs the custom binding tags on gin's validator:
//
//	username   letters, digits and _ . @ + -
//	dataimage  data:image/<type>;base64,<payload>
//
// Field names in errors are reported by their JSON tag.
func registerValidators() {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernameRE.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("dataimage", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			head, payload, found := strings.Cut(s, ",")
			return found && payload != "" &&
				strings.HasPrefix(head, "data:image/") && strings.HasSuffix(head, ";base64")
		})
	})
}

// bindJSON decodes and validates the request body into dst. On failure it
// writes a 400 and returns false. Validation failures list every offending
// field under "fields".
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		failFields(c, http.StatusBadRequest, ErrCodeValidation, "invalid request body", fieldErrors(verrs))
		return false
	}
	fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
	return false
}

// fieldErrors keys messages by the JSON path of the field, e.g.
// "cooking_time" or "ingredients[0].amount".
func fieldErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fe.Namespace()
		if _, rest, ok := strings.Cut(key, "."); ok {
			key = rest
		}
		if _, seen := out[key]; !seen {
			out[key] = fieldMessage(fe)
		}
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "username":
		return "letters, digits and @/./+/-/_ only"
	case "dataimage":
		return "expected a base64 image data URI"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("at least %s item(s) required", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	}
	return "invalid value"
}
