package custom

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"time"
)

// sqliteLayout is the format CURRENT_TIMESTAMP produces in SQLite.
const sqliteLayout = "2006-01-02 15:04:05"

// Datetime represents a datetime.
type Datetime time.Time

// MarshalJSON implements the json.Marshaler interface.
func (d *Datetime) MarshalJSON() ([]byte, error) {
	if d == nil || time.Time(*d).IsZero() {
		return nil, nil
	}
	return []byte(fmt.Sprintf(`%q`, time.Time(*d).UTC().Format(time.RFC3339))), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Datetime) UnmarshalJSON(text []byte) error {
	// Remove " from text if present with regex (e.g. "2020-01-01T00:00:00Z" -> 2020-01-01T00:00:00Z)
	reg := regexp.MustCompile(`"(.*)"`)
	text = reg.ReplaceAll(text, []byte("$1"))

	t, err := time.Parse(time.RFC3339, string(text))
	if err != nil {
		return err
	}
	*d = Datetime(t)
	return nil
}

// Scan implements the sql.Scanner interface.
func (d *Datetime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Datetime(time.Time{})
		return nil
	case time.Time:
		*d = Datetime(v)
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("invalid scan, type %T not supported for %T", src, d)
	}
}

func (d *Datetime) parse(src string) error {
	// SQLite stores CURRENT_TIMESTAMP without a timezone; fall back to
	// RFC3339 for values written by the application.
	t, err := time.Parse(sqliteLayout, src)
	if err != nil {
		t, err = time.Parse(time.RFC3339, src)
		if err != nil {
			return fmt.Errorf("invalid datetime: %s", src)
		}
	}
	*d = Datetime(t)
	return nil
}

// Value implements the driver.Valuer interface.
func (d Datetime) Value() (driver.Value, error) {
	if time.Time(d).IsZero() {
		return nil, nil
	}
	return time.Time(d).UTC().Format(sqliteLayout), nil
}

// String implements the fmt.Stringer interface.
func (d Datetime) String() string {
	return time.Time(d).Format(time.RFC3339)
}
