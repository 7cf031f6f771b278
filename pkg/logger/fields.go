package logger

// Shared structured-log field names so dashboards can rely on one spelling.
// 统一的结构化日志字段名
const (
	FieldUID           = "uid"
	FieldNoteID        = "note_id"
	FieldVersionNumber = "version_number"
	FieldTraceID       = "trace_id"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldStatus        = "status"
	FieldCostTime      = "cost_time"
	FieldClientIP      = "client_ip"
	FieldError         = "error"
	FieldTask          = "task"
)
