package code

import (
	"fmt"
	"net/http"
)

// Code is a registered response code carrying a bilingual message,
// an HTTP status and optional payload fields.
// Code 是注册过的响应码，携带双语消息、HTTP 状态码和可选的附加字段
type Code struct {
	code       int
	status     bool
	httpStatus int
	// 双语消息
	Lang lang

	data        interface{}
	haveData    bool
	details     []string
	haveDetails bool
	context     string
	haveContext bool
}

var codes = map[int]string{}

// NewError registers an error code. Duplicate codes panic at init time.
// NewError 注册一个错误码，重复注册会在启动时 panic
func NewError(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.GetMessage()
	return &Code{code: code, status: false, httpStatus: http.StatusOK, Lang: l}
}

var sussCodes = map[int]string{}

// NewSuss registers a success code.
// NewSuss 注册一个成功码
func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", code))
	}
	sussCodes[code] = l.GetMessage()
	return &Code{code: code, status: true, httpStatus: http.StatusOK, Lang: l}
}

// Clone returns a copy without the optional payload fields.
// Clone 创建一个不带附加字段的新副本
func (e *Code) Clone() *Code {
	return &Code{
		code:       e.code,
		status:     e.status,
		httpStatus: e.httpStatus,
		Lang:       e.Lang,
		details:    []string{},
	}
}

func (e *Code) Error() string {
	return e.Msg()
}

// Is matches codes by number so clones produced by WithData and friends
// still compare equal to the registered code under errors.Is.
// Is 按码值比较，克隆副本与注册码在 errors.Is 下仍然相等
func (e *Code) Is(target error) bool {
	t, ok := target.(*Code)
	if !ok {
		return false
	}
	return e.code == t.code
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) Context() string {
	return e.context
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) HaveContext() bool {
	return e.haveContext
}

// WithData attaches a response payload. The receiver is cloned so the
// registered code value stays immutable under concurrent requests.
// WithData 附加响应数据，先克隆以保证注册的码对象并发安全
func (e *Code) WithData(data interface{}) *Code {
	c := e.Clone()
	c.haveData = true
	c.data = data
	return c
}

// WithDetails attaches diagnostic detail strings.
// WithDetails 附加错误详情
func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.haveDetails = true
	c.details = append(c.details, details...)
	return c
}

// WithContext attaches a request context marker.
// WithContext 附加请求上下文标记
func (e *Code) WithContext(context string) *Code {
	c := e.Clone()
	c.haveContext = true
	c.context = context
	return c
}

// withStatusCode sets the HTTP status used when this code is written to a
// response. Only for use by the code list at registration time.
func (e *Code) withStatusCode(status int) *Code {
	e.httpStatus = status
	return e
}

// StatusCode returns the HTTP status this code maps to.
func (e *Code) StatusCode() int {
	if e.httpStatus == 0 {
		return http.StatusOK
	}
	return e.httpStatus
}
