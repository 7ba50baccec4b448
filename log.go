package perflog_reader

import (
	"log"
)

type Logger struct {
	Name  string // Name is printed in the `[]` prefix.
	Quiet bool
}

func (l Logger) Errorf(format string, args ...interface{}) {
	log.Printf("[ERROR] ["+l.Name+"] "+format, args...)
}

func (l Logger) Error(args ...interface{}) {
	log.Print(append([]interface{}{"[ERROR] [" + l.Name + "] "}, args...)...)
}

func (l Logger) Warnf(format string, args ...interface{}) {
	log.Printf("[WARN] ["+l.Name+"] "+format, args...)
}

func (l Logger) Warn(args ...interface{}) {
	log.Print(append([]interface{}{"[WARN] [" + l.Name + "] "}, args...)...)
}

func (l Logger) Infof(format string, args ...interface{}) {
	if !l.Quiet {
		log.Printf("[INFO] ["+l.Name+"] "+format, args...)
	}
}

func (l Logger) Info(args ...interface{}) {
	if !l.Quiet {
		log.Print(append([]interface{}{"[INFO] [" + l.Name + "] "}, args...)...)
	}
}

func (l Logger) Debugf(format string, args ...interface{}) {
	if !l.Quiet {
		log.Printf("[DEBUG] ["+l.Name+"] "+format, args...)
	}
}

func (l Logger) Debug(args ...interface{}) {
	if !l.Quiet {
		log.Print(append([]interface{}{"[DEBUG] [" + l.Name + "] "}, args...)...)
	}
}
