package mbslave

import "go.uber.org/zap"

// Logger is the minimal structured-logging surface the dispatcher uses to
// report conditions the wire protocol only exposes as silent counter
// increments (bad CRC, heap exhaustion, rejected busy requests). A nil
// Logger in Options is replaced by a no-op implementation.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}

// ZapLogger adapts a *zap.SugaredLogger to the Logger interface, the same
// structured logger used by the serial RTU servers in the wider Modbus
// ecosystem this device borrows conventions from.
type ZapLogger struct {
	S *zap.SugaredLogger
}

// NewZapLogger wraps l as a Logger. A nil l is valid and behaves as a
// no-op, mirroring nopLogger.
func NewZapLogger(l *zap.SugaredLogger) ZapLogger {
	return ZapLogger{S: l}
}

func (z ZapLogger) Debugf(format string, args ...interface{}) {
	if z.S == nil {
		return
	}
	z.S.Debugf(format, args...)
}

func (z ZapLogger) Warnf(format string, args ...interface{}) {
	if z.S == nil {
		return
	}
	z.S.Warnf(format, args...)
}

func (z ZapLogger) Errorf(format string, args ...interface{}) {
	if z.S == nil {
		return
	}
	z.S.Errorf(format, args...)
}
