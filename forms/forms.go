// Package forms binds and validates user submitted data before anything is written.
package forms

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const NonFieldErrors = "__all__"

// Errors maps a form field to its (first) error message
type Errors map[string]string

var (
	validate      = validator.New()
	usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

	messages = map[string]string{
		"required": "Обязательное поле.",
		"number":   "Выберите корректный вариант.",
		"email":    "Введите правильный адрес электронной почты.",
		"min":      "Значение слишком короткое.",
		"max":      "Значение слишком длинное.",
		"username": "Допустимы только буквы, цифры и символы @/./+/-/_.",
	}
)

func init() {
	// Report errors under the form field names, not the Go ones
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})
}

func (e Errors) Add(field, message string) {
	if _, ok := e[field]; ok {
		return
	}
	e[field] = message
}

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// bind fills form from the request and validates it after trimming text fields.
// Struct tags: `form` for binding, `validate` for the rules.
func bind(c *gin.Context, form any, errs Errors) {
	if err := c.ShouldBind(form); err != nil {
		errs.Add(NonFieldErrors, err.Error())
		return
	}
	trimStrings(form)
	check(form, errs)
}

func check(form any, errs Errors) {
	err := validate.Struct(form)
	if err == nil {
		return
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs.Add(NonFieldErrors, err.Error())
		return
	}
	for _, fe := range validationErrors {
		message, ok := messages[fe.Tag()]
		if !ok {
			message = "Некорректное значение."
		}
		errs.Add(fe.Field(), message)
	}
}

// trimStrings trims every exported string field carrying a form tag, unless tagged `trim:"-"`
func trimStrings(form any) {
	v := reflect.ValueOf(form).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Type.Kind() != reflect.String || !field.IsExported() {
			continue
		}
		if tag := field.Tag.Get("form"); tag == "" || tag == "-" || field.Tag.Get("trim") == "-" {
			continue
		}
		v.Field(i).SetString(strings.TrimSpace(v.Field(i).String()))
	}
}
