package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day without time of day or zone. It is stored as a
// SQL date and exchanged over JSON as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate keeps only the calendar fields of t, as seen in t's location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// String renders the date as "YYYY-MM-DD".
func (d Date) String() string {
	return d.Format(dateLayout)
}

// GormDataType tells GORM which column type to create.
func (Date) GormDataType() string { return "date" }

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.Format(dateLayout), nil
}

// Scan implements sql.Scanner for the representations Postgres and SQLite return.
func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	case nil:
		*d = Date{}
		return nil
	}
	return fmt.Errorf("models: cannot scan %T into Date", value)
}

func (d *Date) scanString(s string) error {
	if len(s) < len(dateLayout) {
		return fmt.Errorf("models: invalid date %q", s)
	}
	parsed, err := ParseDate(s[:len(dateLayout)])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// StringList is a list of labels stored as a JSON array in a text column.
type StringList []string

// GormDataType tells GORM which column type to create.
func (StringList) GormDataType() string { return "text" }

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	case nil:
		*l = StringList{}
		return nil
	default:
		return fmt.Errorf("models: cannot scan %T into StringList", value)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(l))
}
