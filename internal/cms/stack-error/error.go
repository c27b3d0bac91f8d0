// Пакет ошибки с контекстом и трассой вызовов для логирования в обработчиках.
package stack_error

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/labstack/echo/v4"
)

type TrackerError struct {
	Context  map[string]any
	ErrStack []slog.Attr
	cause    error
}

// TrackErrorStack добавляет место вызова в трассу. Если err уже TrackerError, дополняется он же.
func TrackErrorStack(err error) *TrackerError {
	var te *TrackerError
	if errors.As(err, &te) {
		te.ErrStack = append(te.ErrStack, getCallerFile(err))
		return te
	}

	newTe := &TrackerError{
		Context:  make(map[string]any),
		ErrStack: make([]slog.Attr, 0),
		cause:    err,
	}
	newTe.ErrStack = append(newTe.ErrStack, getCallerFile(err))
	return newTe
}

// AddContext сохраняет значение k. Уже записанное значение не перезаписывается.
func (te *TrackerError) AddContext(k string, v any) *TrackerError {
	if _, ok := te.Context[k]; !ok {
		te.Context[k] = v
	}
	return te
}

func (te *TrackerError) AddErr(err error) *TrackerError {
	te.ErrStack = append(te.ErrStack, getCallerFile(err))
	return te
}

func (te *TrackerError) Error() string {
	if te.cause != nil {
		return te.cause.Error()
	}
	return "TrackerError"
}

func (te *TrackerError) Unwrap() error {
	return te.cause
}

// LogError пишет ошибку в лог вместе с трассой, контекстом и запросом c, если он есть.
func LogError(c echo.Context, err error) {
	var trackerError *TrackerError
	var attrs []any

	if errors.As(err, &trackerError) {
		for _, attr := range trackerError.ErrStack {
			slog.Debug("trace:", attr)
		}
		attrs = trackerError.getAttrs()
	} else {
		attrs = []any{slog.String("raw_error", err.Error())}
	}

	if c != nil {
		attrs = append(attrs,
			slog.String("method", c.Request().Method),
			slog.String("url", c.Request().URL.String()))
	}

	slog.With(attrs...).Error("stack error", "err", err)
}

func (te *TrackerError) getAttrs() []any {
	res := make([]any, 0, len(te.Context))
	for k, v := range te.Context {
		res = append(res, slog.Any(k, v))
	}
	return res
}

func getCallerFile(err error) slog.Attr {
	_, path, no, ok := runtime.Caller(2)
	if !ok {
		return slog.String("trace", "unknown")
	}
	_, file := filepath.Split(path)
	return slog.String("trace", fmt.Sprintf("%s:%d %s", file, no, err.Error()))
}
