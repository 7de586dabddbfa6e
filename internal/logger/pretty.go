package logger

import (
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"
)

// Colors for terminal output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
)

// PrettyEncoderConfig is the console encoder config used for CLI output.
func PrettyEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "time",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    customLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// customLevelEncoder formats log levels with colors
func customLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch level {
	case zapcore.DebugLevel:
		enc.AppendString(ColorCyan + "[DEBUG]" + ColorReset)
	case zapcore.InfoLevel:
		enc.AppendString(ColorGreen + "[INFO]" + ColorReset)
	case zapcore.WarnLevel:
		enc.AppendString(ColorYellow + "[WARN]" + ColorReset)
	case zapcore.ErrorLevel:
		enc.AppendString(ColorRed + "[ERROR]" + ColorReset)
	default:
		enc.AppendString(ColorRed + ColorBold + "[" + level.CapitalString() + "]" + ColorReset)
	}
}

// customTimeEncoder formats time in a readable way
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05"))
}

// FormatMessage turns a structured entry into a one-line human message.
// Known messages get a summary of their fields, others keep the message
// and any error.
func FormatMessage(msg string, fields map[string]interface{}) string {
	switch msg {
	case "Projection completed":
		return fmt.Sprintf("%s✓ Projection completed (%v): annual reward %.2f GLS, mean ARP %.2f%%%s",
			ColorGreen, fields["pattern"], number(fields, "annual_reward"), number(fields, "mean_arp"), ColorReset)

	case "Report exported":
		files, _ := fields["files"].([]interface{})
		return fmt.Sprintf("%s📁 Report exported to %d file(s)%s", ColorBlue, len(files), ColorReset)

	case "Unknown price pattern, using a flat curve":
		return fmt.Sprintf("%s⚠ Unknown price pattern %q, using a flat curve%s", ColorYellow, fmt.Sprint(fields["pattern"]), ColorReset)

	case "Sheet fetch failed, retrying":
		return fmt.Sprintf("%s⟳ Sheet fetch failed (%v), retrying in %v%s", ColorYellow, fields["error"], fields["backoff"], ColorReset)
	}

	if err, ok := fields["error"]; ok {
		return fmt.Sprintf("%s: %v", msg, err)
	}
	return msg
}

func number(fields map[string]interface{}, key string) float64 {
	v, _ := fields[key].(float64)
	return v
}

func fieldMap(fields []zapcore.Field) map[string]interface{} {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}
	return enc.Fields
}

// prettyCore rewrites entries with FormatMessage and drops their fields, so
// console output stays a single readable line.
type prettyCore struct {
	core    zapcore.Core
	context []zapcore.Field
}

func newPrettyCore(core zapcore.Core) zapcore.Core {
	return &prettyCore{core: core}
}

func (c *prettyCore) Enabled(level zapcore.Level) bool {
	return c.core.Enabled(level)
}

func (c *prettyCore) With(fields []zapcore.Field) zapcore.Core {
	ctx := make([]zapcore.Field, 0, len(c.context)+len(fields))
	ctx = append(ctx, c.context...)
	return &prettyCore{core: c.core, context: append(ctx, fields...)}
}

func (c *prettyCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *prettyCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	all := make([]zapcore.Field, 0, len(c.context)+len(fields))
	all = append(all, c.context...)
	all = append(all, fields...)

	entry.Message = FormatMessage(entry.Message, fieldMap(all))
	return c.core.Write(entry, nil)
}

func (c *prettyCore) Sync() error {
	return c.core.Sync()
}
