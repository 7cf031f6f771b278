package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/language"

	"github.com/quillnotes/quill-notes-service/pkg/code"
)

// 响应文案支持的语言，顺序决定匹配优先级
var langMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Chinese,
})

// LangWithTranslator 创建带翻译器的语言中间件（支持依赖注入）
// 优先使用显式的 lang 参数，否则按 Accept-Language 协商
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string

		if s, exist := c.GetQuery("lang"); exist {
			lang = s
		} else if s := c.GetHeader("lang"); len(s) != 0 {
			lang = s
		} else if accept := c.GetHeader("Accept-Language"); accept != "" {
			tags, _, err := language.ParseAcceptLanguage(accept)
			if err == nil {
				_, index, _ := langMatcher.Match(tags...)
				switch index {
				case 1:
					lang = "zh_cn"
				default:
					lang = "en"
				}
			}
		}

		lang = strings.ToLower(strings.ReplaceAll(lang, "-", "_"))

		transKey := "en"
		if strings.HasPrefix(lang, "zh") {
			transKey = "zh"
		}
		trans, found := uni.GetTranslator(transKey)
		if !found {
			trans, _ = uni.GetTranslator("en")
		}
		c.Set("trans", trans)

		_ = code.SetGlobalDefaultLang(lang)

		c.Next()
	}
}
