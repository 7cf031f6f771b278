package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
)

type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// BindAndValid binds request parameters into v and translates validation
// failures into the request language.
// BindAndValid 绑定请求参数并把校验错误翻译为请求语言
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors

	if err := c.ShouldBind(v); err != nil {
		verrs, ok := err.(val.ValidationErrors)
		if !ok {
			errs = append(errs, &ValidError{Key: "body", Message: err.Error()})
			return false, errs
		}

		trans, _ := c.Value("trans").(ut.Translator)
		if trans == nil {
			for _, verr := range verrs {
				errs = append(errs, &ValidError{Key: verr.Field(), Message: verr.Error()})
			}
			return false, errs
		}

		for key, value := range verrs.Translate(trans) {
			errs = append(errs, &ValidError{Key: key, Message: value})
		}
		return false, errs
	}

	return true, nil
}
