// Package nlog provides the leveled logger used across every rank's
// main loop: package-level functions, one process-wide logger backed
// by logrus, and a verbosity knob instead of logrus' usual level enum.
package nlog

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Verbosity mirrors the CLI's `verbose` flag: 0 is quiet, 3 is
// chattiest.
type Verbosity int32

var (
	mu  sync.RWMutex
	lvl = Verbosity(0)
	log = newLogger()
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// SetVerbosity sets the process-wide verbosity level. Call once at
// startup from each cmd/* binary's flag parsing.
func SetVerbosity(v Verbosity) {
	mu.Lock()
	lvl = v
	mu.Unlock()
}

// V reports whether the current verbosity is at least `level`.
func V(level Verbosity) bool {
	mu.RLock()
	defer mu.RUnlock()
	return lvl >= level
}

func Infoln(args ...any) {
	log.Infoln(args...)
}

func Infof(format string, args ...any) {
	log.Infof(format, args...)
}

func Warningln(args ...any) {
	log.Warnln(args...)
}

func Warningf(format string, args ...any) {
	log.Warnf(format, args...)
}

func Errorln(args ...any) {
	log.Errorln(args...)
}

func Errorf(format string, args ...any) {
	log.Errorf(format, args...)
}
