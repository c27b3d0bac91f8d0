// Пакет хранит черновики статей вместе с локальными изображениями.
//
// Изображения, которые существуют только как временные blob:-дескрипторы, при сохранении
// черновика переносятся в хранилище файлов, а их адрес заменяется ссылкой draft://<ключ>.
// При загрузке ссылки снова превращаются в адреса, по которым файл можно получить.
package draft

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const (
	// RefScheme - префикс ссылки на файл черновика.
	RefScheme = "draft://"
	// BlobScheme - префикс временного дескриптора загруженного, но не сохраненного файла.
	BlobScheme = "blob:"

	recordPrefix = "draft:"
)

// ErrInvalidID - идентификатор черновика пустой или содержит разделитель ключей.
var ErrInvalidID = errors.New("invalid draft id")

// ValidID сообщает, можно ли использовать id в ключах файлов черновика.
// Двоеточие запрещено, иначе префикс одного черновика захватывает файлы другого.
func ValidID(id string) bool {
	return id != "" && !strings.Contains(id, ":")
}

// Ref - ссылка на файл черновика.
type Ref string

func NewRef(key string) Ref {
	return Ref(RefScheme + key)
}

// ParseRef возвращает ссылку, если src начинается с draft://.
func ParseRef(src string) (Ref, bool) {
	if !strings.HasPrefix(src, RefScheme) || len(src) == len(RefScheme) {
		return "", false
	}
	return Ref(src), true
}

func (r Ref) Key() string {
	return strings.TrimPrefix(string(r), RefScheme)
}

func (r Ref) String() string {
	return string(r)
}

func IsBlobHandle(src string) bool {
	return strings.HasPrefix(src, BlobScheme)
}

// RecordKey - ключ записи черновика статьи id.
func RecordKey(id string) string {
	return recordPrefix + id
}

// ImageKey - ключ i-го изображения блока: <id>:img:<i>:<ts>:<rand>.
func ImageKey(id string, i int, now time.Time) string {
	return fmt.Sprintf("%s:img:%d:%d:%s", id, i, now.UnixMilli(), randSuffix())
}

// FeaturedKey - ключ обложки статьи: <id>:featured:<ts>:<rand>.
func FeaturedKey(id string, now time.Time) string {
	return fmt.Sprintf("%s:featured:%d:%s", id, now.UnixMilli(), randSuffix())
}

// AssetPrefix - общий префикс ключей всех файлов черновика id.
func AssetPrefix(id string) string {
	return id + ":"
}

func randSuffix() string {
	return strconv.FormatUint(rand.Uint64(), 36)
}
