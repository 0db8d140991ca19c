package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// jsonFieldName makes validation errors report JSON field names.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// bindJSON decodes the request body into obj. On failure it writes a 400
// response and returns false.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		BadRequest(c, bindingErrors(err))
		return false
	}
	return true
}

func bindingErrors(err error) FieldErrors {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		errs := make(FieldErrors, len(validationErrs))
		for _, fe := range validationErrs {
			errs[fe.Field()] = append(errs[fe.Field()], fieldMessage(fe))
		}
		return errs
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return FieldErrors{typeErr.Field: {fmt.Sprintf("expected %s", typeErr.Type)}}
	}

	return FieldErrors{nonFieldErrors: {"invalid request body"}}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min":
		return "this field may not be blank"
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	default:
		return "invalid value"
	}
}

// pathID parses a positive integer path parameter. On failure it writes a
// 404 response with notFound as detail and returns false.
func pathID(c *gin.Context, param, notFound string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		NotFound(c, notFound)
		return 0, false
	}
	return id, true
}
