// Утилиты ответов API с ошибками.
//
// Основные возможности:
//   - Единый формат ответа с ошибкой (apierrors.DefinedError).
//   - Логирование ошибок с методом, адресом запроса и местом вызова.
//   - Трасса для ошибок stack-error.
package cms

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"runtime"

	"github.com/fardilk/fardil-cms-site/internal/cms/apierrors"
	stackErr "github.com/fardilk/fardil-cms-site/internal/cms/stack-error"
	"github.com/labstack/echo/v4"
)

// Возврат ошибки 400 с универсальным сообщением
func EError(c echo.Context, err error) error {
	var definedErr apierrors.DefinedError
	if errors.As(err, &definedErr) {
		return EErrorDefined(c, definedErr)
	}
	var trackerErr *stackErr.TrackerError
	switch {
	case err == nil:
		slog.Error("Unknown API error",
			"method", c.Request().Method,
			"url", c.Request().URL,
			getCallerFile(),
		)
	case errors.As(err, &trackerErr):
		stackErr.LogError(c, err)
	default:
		slog.Error("API error",
			"err", err,
			"method", c.Request().Method,
			"url", c.Request().URL,
			getCallerFile(),
		)
	}
	return EErrorDefined(c, apierrors.ErrGeneric)
}

// Возврат ошибки <status> с сообщением ошибки (404 не логируется)
func EErrorMsgStatus(c echo.Context, err error, status int) error {
	if status == http.StatusRequestEntityTooLarge {
		return EErrorDefined(c, apierrors.ErrEntityToLarge)
	}

	er := apierrors.ErrGeneric
	er.StatusCode = status
	if err == nil {
		if status != http.StatusNotFound {
			slog.Error("Unknown API error",
				"method", c.Request().Method,
				slog.Int("status", status),
				"url", c.Request().URL,
				getCallerFile(),
			)
		}
		return EErrorDefined(c, er)
	}

	if status != http.StatusNotFound {
		slog.Error("API error",
			"err", err,
			"method", c.Request().Method,
			slog.Int("status", status),
			"url", c.Request().URL,
			getCallerFile(),
		)
	}
	er.Err = err.Error()
	return EErrorDefined(c, er)
}

// EErrorDefined возвращает JSON-ответ с ошибкой. Для неизвестного кода статуса используется 400 Bad Request.
func EErrorDefined(c echo.Context, err apierrors.DefinedError) error {
	if http.StatusText(err.StatusCode) == "" {
		err.StatusCode = http.StatusBadRequest
	}
	return c.JSON(err.StatusCode, err)
}

func getCallerFile() slog.Attr {
	_, path, no, ok := runtime.Caller(2)
	if !ok {
		return slog.Attr{}
	}
	_, file := filepath.Split(path)
	return slog.String("caller", fmt.Sprintf("%s:%d", file, no))
}
