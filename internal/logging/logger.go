package logging

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

// Structured JSON lines on stdout. The envelope keys below are fixed
// here; the per-call field keys the handlers use live in
// internal/constants.
type Fields map[string]interface{}

const (
	keyLevel = "level"
	keyTime  = "ts"
	keyMsg   = "msg"
	keyError = "error"
)

var out = log.New(os.Stdout, "", 0)

func emit(level, msg string, err error, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	fields[keyLevel] = level
	fields[keyTime] = time.Now().UTC().Format(time.RFC3339)
	fields[keyMsg] = msg
	if err != nil {
		fields[keyError] = err.Error()
	}
	b, marshalErr := json.Marshal(fields)
	if marshalErr != nil {
		// unmarshalable field value; degrade to plain text
		out.Printf("%s: %s (%v)", level, msg, fields)
		return
	}
	out.Println(string(b))
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	emit("info", msg, nil, fields)
}

// Error logs an error message, folding the error text into the fields.
func Error(msg string, err error, fields Fields) {
	emit("error", msg, err, fields)
}

// Fatal logs and exits the process.
func Fatal(msg string, err error, fields Fields) {
	emit("fatal", msg, err, fields)
	os.Exit(1)
}
