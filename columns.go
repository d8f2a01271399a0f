package sqlqb

import (
	"strconv"
	"strings"
)

// Behavior is a column modifier in a CREATE TABLE statement
type Behavior string

// Supported column behaviors. BehaviorDefault renders as "DEFAULT" followed
// by the placeholder of the column's default value.
const (
	BehaviorPrimaryKey    Behavior = "PRIMARY KEY"
	BehaviorNotNull       Behavior = "NOT NULL"
	BehaviorAutoIncrement Behavior = "AUTO_INCREMENT"
	BehaviorDefault       Behavior = "DEFAULT"
)

// Column is a column definition of a CREATE TABLE statement
type Column struct {
	Name      string
	Type      string
	Length    string
	Behaviors []Behavior
}

// addBehavior appends a behavior unless the column already has it
func (col *Column) addBehavior(behavior Behavior) {
	for _, existing := range col.Behaviors {
		if existing == behavior {
			return
		}
	}
	col.Behaviors = append(col.Behaviors, behavior)
}

func (col *Column) hasDefault() bool {
	for _, behavior := range col.Behaviors {
		if behavior == BehaviorDefault {
			return true
		}
	}
	return false
}

// toSQL renders the column definition, using defaultPlaceholder as the
// value of a DEFAULT behavior
func (col *Column) toSQL(defaultPlaceholder string) string {
	parts := []string{col.Name}

	if col.Type != "" {
		typ := col.Type
		if col.Length != "" {
			typ += "(" + col.Length + ")"
		}
		parts = append(parts, typ)
	}

	for _, behavior := range col.Behaviors {
		if behavior == BehaviorDefault {
			parts = append(parts, string(BehaviorDefault)+" "+defaultPlaceholder)
		} else {
			parts = append(parts, string(behavior))
		}
	}

	return strings.Join(parts, " ")
}

// Field opens a new column definition in a CREATE TABLE statement and
// focuses it. Type and behavior methods that follow apply to it.
func (b *Builder) Field(name string) *Builder {
	return b.Column(name, "", "")
}

// Column opens a new column definition with its type, length (may be
// empty) and behaviors given up front, and focuses it. A BehaviorDefault
// given here binds a nil default value; use Default to bind another one.
func (b *Builder) Column(name, sqlType, length string, behaviors ...Behavior) *Builder {
	col := &Column{Name: name, Type: sqlType, Length: length}
	b.state.columns = append(b.state.columns, col)
	b.focus = focus{kind: focusColumn, name: name, column: col}

	for _, behavior := range behaviors {
		if behavior == BehaviorDefault {
			b.Default(nil)
			continue
		}
		col.addBehavior(behavior)
	}

	return b
}

// focusedColumn returns the column in focus, recording an error for
// method if there isn't one
func (b *Builder) focusedColumn(method string) *Column {
	if b.focus.kind != focusColumn {
		b.errs = append(b.errs, focusError(method))
		return nil
	}
	return b.focus.column
}

// Type sets the SQL type and length of the focused column. Length may be
// empty.
func (b *Builder) Type(sqlType, length string) *Builder {
	if col := b.focusedColumn("Type"); col != nil {
		col.Type = sqlType
		col.Length = length
	}
	return b
}

// Int sets the focused column's type to INT, with a display width of 11
// unless one is provided
func (b *Builder) Int(length ...int) *Builder {
	return b.typeWithLength("Int", "INT", 11, length)
}

// Double sets the focused column's type to DOUBLE
func (b *Builder) Double() *Builder {
	return b.typeWithoutLength("Double", "DOUBLE")
}

// String sets the focused column's type to VARCHAR, with a length of 255
// unless one is provided
func (b *Builder) String(length ...int) *Builder {
	return b.typeWithLength("String", "VARCHAR", 255, length)
}

// Text sets the focused column's type to TEXT
func (b *Builder) Text() *Builder {
	return b.typeWithoutLength("Text", "TEXT")
}

// Date sets the focused column's type to DATE
func (b *Builder) Date() *Builder {
	return b.typeWithoutLength("Date", "DATE")
}

// DateTime sets the focused column's type to DATETIME
func (b *Builder) DateTime() *Builder {
	return b.typeWithoutLength("DateTime", "DATETIME")
}

// Timestamp sets the focused column's type to TIMESTAMP
func (b *Builder) Timestamp() *Builder {
	return b.typeWithoutLength("Timestamp", "TIMESTAMP")
}

func (b *Builder) typeWithLength(method, sqlType string, fallback int, length []int) *Builder {
	if col := b.focusedColumn(method); col != nil {
		n := fallback
		if len(length) > 0 {
			n = length[0]
		}
		col.Type = sqlType
		col.Length = strconv.Itoa(n)
	}
	return b
}

func (b *Builder) typeWithoutLength(method, sqlType string) *Builder {
	if col := b.focusedColumn(method); col != nil {
		col.Type = sqlType
		col.Length = ""
	}
	return b
}

// PrimaryKey marks the focused column as the table's primary key
func (b *Builder) PrimaryKey() *Builder {
	return b.behavior("PrimaryKey", BehaviorPrimaryKey)
}

// NotNull marks the focused column as NOT NULL
func (b *Builder) NotNull() *Builder {
	return b.behavior("NotNull", BehaviorNotNull)
}

// AutoIncrement marks the focused column as AUTO_INCREMENT
func (b *Builder) AutoIncrement() *Builder {
	return b.behavior("AutoIncrement", BehaviorAutoIncrement)
}

func (b *Builder) behavior(method string, behavior Behavior) *Builder {
	if col := b.focusedColumn(method); col != nil {
		col.addBehavior(behavior)
	}
	return b
}

// Default gives the focused column a default value. The value is bound
// as a parameter named after the column.
func (b *Builder) Default(value interface{}) *Builder {
	if col := b.focusedColumn("Default"); col != nil {
		col.addBehavior(BehaviorDefault)
		b.state.payload.Set(col.Name, value)
	}
	return b
}
