package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Options is a custom type persisting answer options as a JSON column.
type Options []Option

// Option mirrors domain.AnswerOption at the storage boundary.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Value implements the driver.Valuer interface.
func (o Options) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface.
func (o *Options) Scan(value interface{}) error {
	if value == nil {
		*o = Options{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return fmt.Errorf("Options Scan: unsupported type %T", value)
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*o = Options{}
		return nil
	}
	return json.Unmarshal(bytesToParse, o)
}

// Category is the categories table row.
type Category struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	ParentID  sql.NullString `db:"parent_id"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// Question is the questions table row.
type Question struct {
	ID              string         `db:"id"`
	Text            string         `db:"text"`
	Options         Options        `db:"options"`
	CorrectAnswerID string         `db:"correct_answer_id"`
	CategoryID      string         `db:"category_id"`
	Explanation     sql.NullString `db:"explanation"`
	Source          sql.NullString `db:"source"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}
