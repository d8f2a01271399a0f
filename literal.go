package sqlqb

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// sqlLiteral renders a column default as an SQL literal. Strings are
// single-quoted with embedded quotes doubled. Strings containing
// backslashes or NUL bytes are refused, since MySQL and SQLite disagree on
// how to read them.
func sqlLiteral(value interface{}) (string, error) {
	if valuer, ok := value.(driver.Valuer); ok {
		v, err := valuer.Value()
		if err != nil {
			return "", err
		}
		value = v
	}

	switch v := value.(type) {
	case nil:
		return "NULL", nil
	case bool:
		if v {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case time.Time:
		return quoteString(v.Format("2006-01-02 15:04:05.999999"))
	case []byte:
		return quoteString(string(v))
	case string:
		return quoteString(v)
	}

	return "", fmt.Errorf("%w: %T", ErrUnsupportedDefault, value)
}

func quoteString(s string) (string, error) {
	if strings.ContainsAny(s, "\\\x00") {
		return "", fmt.Errorf("%w: %q contains a backslash or NUL byte", ErrUnsupportedDefault, s)
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'", nil
}
