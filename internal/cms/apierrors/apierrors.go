// Пакет содержит определения ошибок API редактора контента. Каждая ошибка имеет код, HTTP статус и описание на английском и русском.
//
// Основные возможности:
//   - Ошибки разбора и конвертации контента (HTML, markdown, блоки, payload).
//   - Ошибки операций над документом и черновиками.
//   - Ошибки работы с внешним API статей.
//   - Форматирование сообщений с аргументами.
package apierrors

import (
	"fmt"
	"net/http"
	"strings"
)

type DefinedError struct {
	Code       int    `json:"code"`
	StatusCode int    `json:"-"`
	Err        string `json:"error"`
	RuErr      string `json:"ru_error,omitempty"`
}

func (e DefinedError) Error() string {
	return e.Err
}

var (
	// 1*** - content conversion errors
	ErrInvalidBlocks   = DefinedError{Code: 1001, StatusCode: http.StatusBadRequest, Err: "invalid blocks: %s", RuErr: "Некорректный список блоков"}
	ErrInvalidPayload  = DefinedError{Code: 1002, StatusCode: http.StatusBadRequest, Err: "invalid content payload", RuErr: "Некорректный формат контента"}
	ErrInvalidHTML     = DefinedError{Code: 1003, StatusCode: http.StatusBadRequest, Err: "invalid html", RuErr: "Не удалось разобрать HTML"}
	ErrInvalidMarkdown = DefinedError{Code: 1004, StatusCode: http.StatusBadRequest, Err: "invalid markdown", RuErr: "Не удалось разобрать markdown"}
	ErrRenderFailed    = DefinedError{Code: 1005, StatusCode: http.StatusInternalServerError, Err: "content render failed", RuErr: "Ошибка формирования контента"}

	// 2*** - document errors
	ErrUnknownDocumentOp = DefinedError{Code: 2001, StatusCode: http.StatusNotFound, Err: "unknown document operation %s", RuErr: "Неизвестная операция над документом"}
	ErrIndexOutOfRange   = DefinedError{Code: 2002, StatusCode: http.StatusBadRequest, Err: "block index out of range", RuErr: "Блок с таким номером не найден"}
	ErrUnknownBlockType  = DefinedError{Code: 2003, StatusCode: http.StatusBadRequest, Err: "unknown block type %s", RuErr: "Неизвестный тип блока"}
	ErrInvalidPatch      = DefinedError{Code: 2004, StatusCode: http.StatusBadRequest, Err: "block patch must be a json object", RuErr: "Изменения блока должны быть объектом"}

	// 3*** - draft errors
	ErrDraftNotFound    = DefinedError{Code: 3001, StatusCode: http.StatusNotFound, Err: "draft not found", RuErr: "Черновик не найден"}
	ErrAssetNotFound    = DefinedError{Code: 3002, StatusCode: http.StatusNotFound, Err: "draft asset not found", RuErr: "Файл черновика не найден"}
	ErrAssetRequired    = DefinedError{Code: 3003, StatusCode: http.StatusBadRequest, Err: "file is required", RuErr: "Необходимо приложить файл"}
	ErrUnsupportedAsset = DefinedError{Code: 3004, StatusCode: http.StatusUnsupportedMediaType, Err: "only images are accepted", RuErr: "Допускается загрузка только изображений"}
	ErrInvalidDraftID   = DefinedError{Code: 3005, StatusCode: http.StatusBadRequest, Err: "invalid draft id", RuErr: "Некорректный идентификатор черновика"}

	// 4*** - articles API errors
	ErrArticlesDisabled    = DefinedError{Code: 4001, StatusCode: http.StatusServiceUnavailable, Err: "articles API is not configured", RuErr: "API статей не настроен"}
	ErrArticleNotFound     = DefinedError{Code: 4002, StatusCode: http.StatusNotFound, Err: "article not found", RuErr: "Статья не найдена"}
	ErrArticlesUnavailable = DefinedError{Code: 4003, StatusCode: http.StatusBadGateway, Err: "articles API request failed", RuErr: "Не удалось получить ответ от API статей"}

	// 5*** - generic errors
	ErrGeneric       = DefinedError{Code: 5000, StatusCode: http.StatusBadRequest, Err: "Something went wrong. Please try again later or contact the support team.", RuErr: "Что-то пошло не так. Повторите попытку позже или обратитесь в службу поддержки"}
	ErrEntityToLarge = DefinedError{Code: 5010, StatusCode: http.StatusRequestEntityTooLarge, Err: "size exceeds the allowed limit", RuErr: "Размер файла превышает допустимый."}
	ErrValidation    = DefinedError{Code: 5011, StatusCode: http.StatusBadRequest, Err: "request validation failed: %s", RuErr: "Запрос не прошел проверку"}
)

func (e DefinedError) WithFormattedMessage(args ...interface{}) DefinedError {
	if len(args) > 0 {
		e.Err = fmt.Sprintf(e.Err, args...)
		if strings.Contains(e.RuErr, "%") {
			e.RuErr = fmt.Sprintf(e.RuErr, args...)
		}
	} else {
		e.Err = strings.Replace(e.Err, "%s", "", -1)
		e.RuErr = strings.Replace(e.RuErr, "%s", "", -1)
	}
	return e
}
