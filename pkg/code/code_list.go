package code

import "net/http"

// Success codes // 成功码
var (
	Success = NewSuss(0, lang{
		en:    "Success",
		zh_cn: "成功",
	})
)

// Common errors // 通用错误
var (
	ErrorInvalidParams = NewError(10001, lang{
		en:    "Invalid request parameters",
		zh_cn: "请求参数错误",
	}).withStatusCode(http.StatusBadRequest)

	ErrorNotUserAuthToken = NewError(10002, lang{
		en:    "Missing user authorization token",
		zh_cn: "缺少用户授权令牌",
	}).withStatusCode(http.StatusUnauthorized)

	ErrorInvalidUserAuthToken = NewError(10003, lang{
		en:    "Invalid or expired user authorization token",
		zh_cn: "用户授权令牌无效或已过期",
	}).withStatusCode(http.StatusUnauthorized)

	ErrorNotFoundAPI = NewError(10004, lang{
		en:    "API route not found",
		zh_cn: "接口不存在",
	}).withStatusCode(http.StatusNotFound)

	ErrorTooManyRequests = NewError(10005, lang{
		en:    "Too many requests",
		zh_cn: "请求过于频繁",
	}).withStatusCode(http.StatusTooManyRequests)

	ErrorServerInternal = NewError(10006, lang{
		en:    "Internal server error",
		zh_cn: "服务器内部错误",
	}).withStatusCode(http.StatusInternalServerError)

	ErrorDBQuery = NewError(10007, lang{
		en:    "Database query failed",
		zh_cn: "数据库查询失败",
	}).withStatusCode(http.StatusInternalServerError)

	ErrorRequestTimeout = NewError(10008, lang{
		en:    "Request timed out",
		zh_cn: "请求超时",
	}).withStatusCode(http.StatusGatewayTimeout)
)

// User errors // 用户相关错误
var (
	ErrorUserRegisterDisabled = NewError(20101, lang{
		en:    "User registration is disabled",
		zh_cn: "用户注册已关闭",
	}).withStatusCode(http.StatusForbidden)

	ErrorUserEmailExists = NewError(20102, lang{
		en:    "Email address is already registered",
		zh_cn: "邮箱已被注册",
	}).withStatusCode(http.StatusConflict)

	ErrorUserLoginFailed = NewError(20103, lang{
		en:    "Incorrect email or password",
		zh_cn: "邮箱或密码错误",
	}).withStatusCode(http.StatusUnauthorized)

	ErrorUserNotFound = NewError(20104, lang{
		en:    "User not found",
		zh_cn: "用户不存在",
	}).withStatusCode(http.StatusNotFound)

	ErrorUserTokenGenerate = NewError(20105, lang{
		en:    "Failed to generate authorization token",
		zh_cn: "生成授权令牌失败",
	}).withStatusCode(http.StatusInternalServerError)
)

// Note errors // 笔记相关错误
var (
	ErrorNoteNotFound = NewError(20201, lang{
		en:    "Note not found",
		zh_cn: "笔记不存在",
	}).withStatusCode(http.StatusNotFound)

	ErrorNoteCreateFailed = NewError(20202, lang{
		en:    "Failed to create note",
		zh_cn: "创建笔记失败",
	}).withStatusCode(http.StatusInternalServerError)

	ErrorNoteUpdateFailed = NewError(20203, lang{
		en:    "Failed to update note",
		zh_cn: "更新笔记失败",
	}).withStatusCode(http.StatusInternalServerError)
)

// Version errors // 版本相关错误
var (
	ErrorVersionNotFound = NewError(20301, lang{
		en:    "Note version not found",
		zh_cn: "笔记版本不存在",
	}).withStatusCode(http.StatusNotFound)

	// Returned when the append retry also lost the version-number race.
	// 追加重试后仍然冲突时返回
	ErrorVersionConflict = NewError(20302, lang{
		en:    "Version number conflict, please retry",
		zh_cn: "版本号冲突，请重试",
	}).withStatusCode(http.StatusInternalServerError)

	ErrorVersionRestorePartial = NewError(20303, lang{
		en:    "Restore failed, note and history left unchanged",
		zh_cn: "恢复失败，笔记与历史保持原状",
	}).withStatusCode(http.StatusInternalServerError)

	ErrorVersionCreateFailed = NewError(20304, lang{
		en:    "Failed to create note version",
		zh_cn: "创建笔记版本失败",
	}).withStatusCode(http.StatusInternalServerError)
)
