package app

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"

	"github.com/gin-gonic/gin"
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

// ErrorsToString joins all messages into one string
// ErrorsToString 将所有错误消息拼为一个字符串
func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

// MapsToString returns field => message pairs
// MapsToString 返回 字段 => 错误消息 的映射
func (v ValidErrors) MapsToString() map[string]string {
	m := map[string]string{}
	for _, err := range v {
		m[err.Key] = err.Message
	}
	return m
}

// BindAndValid binds request params and translates validation errors
// BindAndValid 绑定请求参数并翻译校验错误
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors

	if err := c.ShouldBind(v); err != nil {
		verrs, ok := err.(val.ValidationErrors)
		if !ok {
			// Non-validation bind failure (e.g. malformed JSON)
			// 非校验类绑定失败（如 JSON 格式错误）
			errs = append(errs, &ValidError{Key: "body", Message: err.Error()})
			return false, errs
		}

		if trans, exist := c.Get("trans"); exist {
			translator := trans.(ut.Translator)
			for key, value := range verrs.Translate(translator) {
				errs = append(errs, &ValidError{Key: key, Message: value})
			}
		} else {
			for _, fieldErr := range verrs {
				errs = append(errs, &ValidError{Key: fieldErr.Field(), Message: fieldErr.Error()})
			}
		}
		return false, errs
	}

	return true, nil
}
