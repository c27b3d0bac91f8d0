package edtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Blocks - упорядоченная последовательность блоков документа.
type Blocks []Block

// Value реализует driver.Valuer для хранения документа в JSON-колонке.
func (b Blocks) Value() (driver.Value, error) {
	if b == nil {
		b = Blocks{}
	}
	data, err := json.Marshal([]Block(b))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan реализует sql.Scanner для чтения документа из JSON-колонки.
func (b *Blocks) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*b = Blocks{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for Blocks", value)
	}
	var res []Block
	if err := json.Unmarshal(data, &res); err != nil {
		return err
	}
	*b = res
	return nil
}

// GormDataType указывает GORM использовать тип JSONB для PostgreSQL колонок.
func (Blocks) GormDataType() string {
	return "jsonb"
}
