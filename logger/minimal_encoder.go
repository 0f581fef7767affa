package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Everforest palette
const (
	colorReset  = "\x1b[0m"
	colorBold   = "\x1b[1m"
	colorFg     = "\x1b[38;5;223m"
	colorGreen  = "\x1b[38;5;108m"
	colorMid    = "\x1b[38;5;107m"
	colorDeep   = "\x1b[38;5;65m"
	colorAqua   = "\x1b[38;5;109m"
	colorOrange = "\x1b[38;5;208m"
	colorYellow = "\x1b[38;5;179m"
	colorRed    = "\x1b[38;5;167m"
	colorRedBg  = "\x1b[48;5;52m"
	colorYelBg  = "\x1b[48;5;58m"
)

var bufferPool = buffer.NewPool()

// minimalEncoder implements a calm, compact console encoder.
// Format: "13:04:35  t.runner  translated  Models.swift → Models.kt 3ms"
type minimalEncoder struct {
	zapcore.Encoder // base encoder for With() field serialization
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{Encoder: enc.Encoder.Clone()}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := bufferPool.Get()

	final.AppendString(colorMid)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level is only shown for WARN and above
	if ent.Level > zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(colorComponent(ent.LoggerName))
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(colorFg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	if vals := extractFieldValues(fields); vals != "" {
		final.AppendString("  ")
		final.AppendString(vals)
	}

	final.AppendString("\n")
	return final, nil
}

func colorComponent(name string) string {
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	switch hash % 3 {
	case 0:
		return colorGreen
	case 1:
		return colorDeep
	}
	return colorOrange
}

func levelColorString(level zapcore.Level) string {
	switch level {
	case zapcore.WarnLevel:
		return colorBold + colorYelBg + colorYellow + "WARN" + colorReset
	default:
		return colorBold + colorRedBg + colorRed + level.CapitalString() + colorReset
	}
}

// abbreviateName shortens component names: transpile.runner -> t.runner
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

func getFieldValue(field zapcore.Field) string {
	switch field.Type {
	case zapcore.StringType:
		return field.String
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
		zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return fmt.Sprintf("%d", field.Integer)
	case zapcore.ErrorType:
		if err, ok := field.Interface.(error); ok {
			return err.Error()
		}
	}
	if field.Interface != nil {
		return fmt.Sprintf("%v", field.Interface)
	}
	return ""
}

// extractFieldValues renders the fields this tool logs as a short tail.
// Input: {"file": "A.swift", "output": "A.kt", "duration_ms": 3}
// Output: "A.swift → A.kt 3ms"
func extractFieldValues(fields []zapcore.Field) string {
	var file, output string
	var values []string

	for _, field := range fields {
		val := getFieldValue(field)
		if val == "" {
			continue
		}
		switch field.Key {
		case FieldFile:
			file = val
		case FieldOutput:
			output = val
		case FieldDurationMS:
			values = append(values, colorGreen+val+colorReset+"ms")
		case FieldCount:
			values = append(values, colorGreen+val+colorReset+" files")
		case FieldFixmes:
			values = append(values, colorYellow+val+colorReset+" fixmes")
		case FieldRunID, FieldTool:
			values = append(values, colorAqua+val+colorReset)
		case FieldError:
			values = append(values, colorRed+val+colorReset)
		}
	}

	switch {
	case file != "" && output != "":
		values = append([]string{colorAqua + file + colorReset + " → " + colorAqua + output + colorReset}, values...)
	case file != "":
		values = append([]string{colorAqua + file + colorReset}, values...)
	}

	return strings.Join(values, " ")
}
