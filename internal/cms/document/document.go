// Пакет содержит операции над последовательностью блоков документа.
// Все операции возвращают новый срез и не изменяют переданный.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
)

var ErrIndexOutOfRange = errors.New("block index out of range")

// IndexOf возвращает позицию блока с id или -1.
func IndexOf(seq []edtypes.Block, id string) int {
	return slices.IndexFunc(seq, func(b edtypes.Block) bool {
		return b.ID == id
	})
}

// InsertAfter вставляет блок на позицию i+1. При i < 0 блок вставляется в начало,
// при i за концом последовательности - в конец.
func InsertAfter(seq []edtypes.Block, i int, b edtypes.Block) []edtypes.Block {
	pos := min(max(i+1, 0), len(seq))
	return slices.Insert(slices.Clone(seq), pos, b)
}

// Move убирает блок с позиции from и вставляет его на позицию to.
// Индексы должны быть в пределах последовательности.
func Move(seq []edtypes.Block, from, to int) []edtypes.Block {
	res := slices.Clone(seq)
	if from == to {
		return res
	}
	b := res[from]
	res = slices.Delete(res, from, from+1)
	return slices.Insert(res, to, b)
}

// MoveUp сдвигает блок на одну позицию вверх. Первый блок остается на месте.
func MoveUp(seq []edtypes.Block, i int) []edtypes.Block {
	if i <= 0 || i >= len(seq) {
		return slices.Clone(seq)
	}
	return Move(seq, i, i-1)
}

// MoveDown сдвигает блок на одну позицию вниз. Последний блок остается на месте.
func MoveDown(seq []edtypes.Block, i int) []edtypes.Block {
	if i < 0 || i >= len(seq)-1 {
		return slices.Clone(seq)
	}
	return Move(seq, i, i+1)
}

// UpdateAt заменяет данные блока i результатом fn. Если индекса нет, возвращается исходный срез.
func UpdateAt(seq []edtypes.Block, i int, fn func(edtypes.BlockData) edtypes.BlockData) []edtypes.Block {
	if i < 0 || i >= len(seq) || fn == nil {
		return seq
	}
	res := slices.Clone(seq)
	res[i].Data = fn(res[i].Data)
	return res
}

// PatchAt поверхностно объединяет JSON-патч с данными блока i: поля патча заменяют поля данных,
// null удаляет поле. Вид блока не меняется. Если индекса нет, возвращается исходный срез.
func PatchAt(seq []edtypes.Block, i int, patch json.RawMessage) ([]edtypes.Block, error) {
	if i < 0 || i >= len(seq) {
		return seq, nil
	}
	b := seq[i]
	current, err := json.Marshal(b.Data)
	if err != nil {
		return nil, err
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(current, &fields); err != nil {
		return nil, err
	}
	var changes map[string]json.RawMessage
	if err := json.Unmarshal(patch, &changes); err != nil {
		return nil, fmt.Errorf("patch must be a json object: %w", err)
	}
	for k, v := range changes {
		if string(v) == "null" {
			delete(fields, k)
			continue
		}
		fields[k] = v
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	data, err := edtypes.DecodeData(b.Type(), merged)
	if err != nil {
		return nil, err
	}
	res := slices.Clone(seq)
	res[i].Data = data
	return res, nil
}

// Duplicate вставляет после блока i его глубокую копию с новым id.
func Duplicate(seq []edtypes.Block, i int) ([]edtypes.Block, error) {
	if i < 0 || i >= len(seq) {
		return nil, ErrIndexOutOfRange
	}
	data, err := CloneData(seq[i].Data)
	if err != nil {
		return nil, err
	}
	return InsertAfter(seq, i, edtypes.NewBlock(data)), nil
}

// CloneData возвращает независимую копию данных блока.
func CloneData(d edtypes.BlockData) (edtypes.BlockData, error) {
	if d == nil {
		return nil, nil
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return edtypes.DecodeData(d.BlockType(), raw)
}

// RemoveAt убирает блок i. Состояние, привязанное к id удаленного блока, очищает вызывающий.
func RemoveAt(seq []edtypes.Block, i int) []edtypes.Block {
	if i < 0 || i >= len(seq) {
		return slices.Clone(seq)
	}
	return slices.Delete(slices.Clone(seq), i, i+1)
}
