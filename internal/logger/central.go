package logger

import (
	"fmt"
	"io"
)

// Permission implementations decide whether the caller may make log entries.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (allow) AllowLogging() bool {
	return true
}

// Allow always permits logging.
var Allow Permission = allow{}

type deny struct{}

func (deny) AllowLogging() bool {
	return false
}

// Deny never permits logging.
var Deny Permission = deny{}

// maximum number of entries in the central log
const maxCentral = 256

var central = newLogger(maxCentral)

// Log adds an entry to the central log.
func Log(perm Permission, tag, detail string) {
	if perm == nil || !perm.AllowLogging() {
		return
	}
	central.log(tag, detail)
}

// Logf adds a formatted entry to the central log.
func Logf(perm Permission, tag, detail string, args ...any) {
	if perm == nil || !perm.AllowLogging() {
		return
	}
	central.log(tag, fmt.Sprintf(detail, args...))
}

// Clear removes all entries from the central log.
func Clear() {
	central.clear()
}

// Write the central log to output.
func Write(output io.Writer) {
	central.write(output)
}

// Tail writes the last number entries to output.
func Tail(output io.Writer, number int) {
	central.tail(output, number)
}

// Entries returns a copy of the central log.
func Entries() []Entry {
	return central.copy()
}

// SetEcho writes every new entry to output as well as storing it. A nil
// output turns echoing off.
func SetEcho(output io.Writer) {
	central.setEcho(output)
}
