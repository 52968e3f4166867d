package logschema

// Log schema constants for fathom structured logs. The json encoder keys every line by
// these fields; component notify fan-outs use the component/event/error keys by
// convention so downstream collectors can filter without per-component mappings.
const (
	SchemaID    = "fathom.log.v1"
	FieldSchema = "log_schema"

	FieldTimestamp = "ts"
	FieldLevel     = "level"
	FieldMessage   = "msg"
	FieldLogger    = "logger"
	FieldCaller    = "caller"
	FieldStack     = "stack"

	FieldComponent = "component"
	FieldEvent     = "event"
	FieldResult    = "result"
	FieldError     = "error"
)
