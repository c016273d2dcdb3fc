// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import "github.com/sirupsen/logrus"

type logrusLogger struct {
	backend logrus.FieldLogger
}

var _ Logger = (*logrusLogger)(nil)

func (l *logrusLogger) Trace(msg string, fields ...any) {
	if enabled(LevelTrace) {
		// FieldLogger has no Trace method.
		l.withFields(fields).Debug(msg)
	}
}

func (l *logrusLogger) Debug(msg string, fields ...any) {
	if enabled(LevelDebug) {
		l.withFields(fields).Debug(msg)
	}
}

func (l *logrusLogger) Info(msg string, fields ...any) {
	if enabled(LevelInfo) {
		l.withFields(fields).Info(msg)
	}
}

func (l *logrusLogger) Warn(msg string, fields ...any) {
	if enabled(LevelWarn) {
		l.withFields(fields).Warn(msg)
	}
}

func (l *logrusLogger) Error(msg string, fields ...any) {
	if enabled(LevelError) {
		l.withFields(fields).Error(msg)
	}
}

func (l *logrusLogger) Sub(fields ...any) Logger {
	return &logrusLogger{backend: l.withFields(fields)}
}

func enabled(level Level) bool {
	return level >= curLevel
}

func (l *logrusLogger) withFields(fields []any) logrus.FieldLogger {
	if len(fields) == 0 {
		return l.backend
	}
	if len(fields)%2 != 0 {
		panic("log: fields must be key/value pairs")
	}
	lf := make(logrus.Fields, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		k, ok := fields[i].(string)
		if !ok {
			panic("log: field keys must be strings")
		}
		lf[k] = fields[i+1]
	}
	return l.backend.WithFields(lf)
}
