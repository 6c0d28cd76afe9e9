package main

import (
	"github.com/sirupsen/logrus"
)

// logrusLogger adapts a logrus logger to the driver's key-value Logger
// interface.
type logrusLogger struct {
	log *logrus.Logger
}

func (l logrusLogger) Debug(msg string, kv ...interface{}) {
	l.log.WithFields(fields(kv)).Debug(msg)
}

func (l logrusLogger) Info(msg string, kv ...interface{}) {
	l.log.WithFields(fields(kv)).Info(msg)
}

func (l logrusLogger) Error(msg string, kv ...interface{}) {
	l.log.WithFields(fields(kv)).Error(msg)
}

func fields(kv []interface{}) logrus.Fields {
	f := make(logrus.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		f[key] = kv[i+1]
	}
	return f
}
