// Package validator wires go-playground/validator into gin's binding.
package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	val "github.com/go-playground/validator/v10"
)

// CustomValidator implements binding.StructValidator with a lazily
// initialized validate instance using the "binding" tag.
type CustomValidator struct {
	once     sync.Once
	validate *val.Validate
}

var _ binding.StructValidator = (*CustomValidator)(nil)

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

func (v *CustomValidator) ValidateStruct(obj interface{}) error {
	value := reflect.ValueOf(obj)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}
	v.lazyinit()
	return v.validate.Struct(obj)
}

func (v *CustomValidator) Engine() interface{} {
	v.lazyinit()
	return v.validate
}

func (v *CustomValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = val.New()
		v.validate.SetTagName("binding")
	})
}

// RegisterCustom registers project-specific validation rules on the gin
// binding validator. Must run after binding.Validator is replaced.
// RegisterCustom 注册项目自定义校验规则
func RegisterCustom() {
	validate, ok := binding.Validator.Engine().(*val.Validate)
	if !ok {
		return
	}
	// notblank 拒绝只含空白字符的字符串
	_ = validate.RegisterValidation("notblank", func(fl val.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}
