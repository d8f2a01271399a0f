package sqlqb

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the type of statement a builder produces
type Kind int

// KindNone is the kind of a builder no statement method was called on yet
const (
	KindNone Kind = iota
	KindSelect
	KindInsert
	KindUpdate
	KindDelete
	KindCreateTable
	KindDropTable
	KindDropDatabase
)

// String returns the string representation of the statement kind
// (e.g. "DROP TABLE")
func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "SELECT"
	case KindInsert:
		return "INSERT"
	case KindUpdate:
		return "UPDATE"
	case KindDelete:
		return "DELETE"
	case KindCreateTable:
		return "CREATE TABLE"
	case KindDropTable:
		return "DROP TABLE"
	case KindDropDatabase:
		return "DROP DATABASE"
	default:
		return "NONE"
	}
}

// paramStyle decides how placeholders are written
type paramStyle int

const (
	// named placeholders (":field", ":cfield"), parameters as Params
	namedStyle paramStyle = iota
	// positional placeholders ("?"), parameters as an ordered list
	positionalStyle
)

type optionalInt struct {
	value int64
	set   bool
}

func (o *optionalInt) to(value int64) {
	o.value = value
	o.set = true
}

// state is the accumulated clause information of one statement. Both the
// named-style Builder and the positional step builders keep their clauses
// in a state, and render them through it.
type state struct {
	kind       Kind
	table      string
	database   bool
	fields     []string
	payload    *Params
	conditions conditionList
	limit      optionalInt
	offset     optionalInt
	columns    []*Column
}

func newState() *state {
	return &state{payload: NewParams()}
}

// resolveKind returns the statement's final kind; a DROP statement
// targeting a database becomes DROP DATABASE
func (s *state) resolveKind() Kind {
	if s.kind == KindDropTable && s.database {
		return KindDropDatabase
	}
	return s.kind
}

func (s *state) setPayload(payload *Params) {
	s.payload = payload.Clone()
	s.fields = s.payload.Keys()
}

// render generates the statement's SQL and parameters. It never modifies
// the state, so rendering twice yields the same result.
func (s *state) render(style paramStyle) *Query {
	var asSQL string

	switch s.resolveKind() {
	case KindSelect:
		asSQL = s.selectSQL(style)
	case KindInsert:
		asSQL = s.insertSQL(style)
	case KindUpdate:
		asSQL = s.updateSQL(style)
	case KindDelete:
		asSQL = s.deleteSQL(style)
	case KindCreateTable:
		asSQL = s.createSQL(style)
	case KindDropTable:
		asSQL = "DROP TABLE IF EXISTS " + quoteIdent(s.table)
	case KindDropDatabase:
		asSQL = "DROP DATABASE IF EXISTS " + quoteIdent(s.table)
	case KindNone:
	}

	q := &Query{sql: strings.TrimSpace(asSQL) + ";"}

	if s.resolveKind() == KindCreateTable && s.hasDefaults() {
		inline, err := s.createLiteralSQL()
		if err != nil {
			q.inlineErr = err
		} else {
			q.inline = strings.TrimSpace(inline) + ";"
		}
	}

	if style == namedStyle {
		q.params = s.namedParams()
		q.args = q.params.Values()
	} else {
		q.args = s.positionalArgs()
	}

	return q
}

func (s *state) selectSQL(style paramStyle) string {
	fields := "*"
	if len(s.fields) > 0 {
		quoted := make([]string, len(s.fields))
		for i, field := range s.fields {
			quoted[i] = quoteField(field)
		}
		fields = strings.Join(quoted, ", ")
	}

	return "SELECT " + fields + " FROM " + quoteIdent(s.table) + " " + s.conditionsSQL(style)
}

func (s *state) insertSQL(style paramStyle) string {
	quoted := make([]string, len(s.fields))
	placeholders := make([]string, len(s.fields))
	for i, field := range s.fields {
		quoted[i] = quoteIdent(field)
		placeholders[i] = valuePlaceholder(style, field)
	}

	return "INSERT INTO " + quoteIdent(s.table) +
		"(" + strings.Join(quoted, ", ") + ")" +
		" VALUES(" + strings.Join(placeholders, ", ") + ")"
}

func (s *state) updateSQL(style paramStyle) string {
	updates := make([]string, len(s.fields))
	for i, field := range s.fields {
		updates[i] = field + " = " + valuePlaceholder(style, field)
	}

	return "UPDATE " + quoteIdent(s.table) +
		" SET " + strings.Join(updates, ", ") +
		" " + s.conditionsSQL(style)
}

func (s *state) deleteSQL(style paramStyle) string {
	return "DELETE FROM " + quoteIdent(s.table) + " " + s.conditionsSQL(style)
}

func (s *state) createSQL(style paramStyle) string {
	defs := make([]string, len(s.columns))
	for i, col := range s.columns {
		defs[i] = col.toSQL(valuePlaceholder(style, col.Name))
	}

	return "CREATE TABLE " + quoteIdent(s.table) + "(" + strings.Join(defs, ", ") + ")"
}

func (s *state) hasDefaults() bool {
	for _, col := range s.columns {
		if col.hasDefault() {
			return true
		}
	}
	return false
}

// createLiteralSQL renders a CREATE TABLE statement with column defaults
// written as literals
func (s *state) createLiteralSQL() (string, error) {
	defs := make([]string, len(s.columns))
	for i, col := range s.columns {
		value, _ := s.payload.Get(col.Name)

		literal, err := sqlLiteral(value)
		if err != nil && col.hasDefault() {
			return "", fmt.Errorf("default of column %s: %w", col.Name, err)
		}

		defs[i] = col.toSQL(literal)
	}

	return "CREATE TABLE " + quoteIdent(s.table) + "(" + strings.Join(defs, ", ") + ")", nil
}

// conditionsSQL renders the WHERE, LIMIT and OFFSET clauses, in that
// order, omitting those that are not set
func (s *state) conditionsSQL(style paramStyle) string {
	var clauses []string

	if len(s.conditions) > 0 {
		clauses = append(clauses, "WHERE "+s.keyedConditions().toSQL(func(cond Condition) string {
			if style == positionalStyle {
				return "?"
			}
			return ":" + cond.Key
		}))
	}

	if s.limit.set {
		clauses = append(clauses, "LIMIT "+strconv.FormatInt(s.limit.value, 10))
	}

	if s.offset.set {
		clauses = append(clauses, "OFFSET "+strconv.FormatInt(s.offset.value, 10))
	}

	return strings.Join(clauses, " ")
}

// keyedConditions allocates the conditions' placeholder names, avoiding
// the payload's keys
func (s *state) keyedConditions() conditionList {
	return s.conditions.keyed(s.payload.Keys())
}

// namedParams merges the payload with the condition values, keyed by
// the conditions' placeholder names
func (s *state) namedParams() *Params {
	params := s.payload.Clone()
	for _, cond := range s.keyedConditions() {
		params.Set(cond.Key, cond.Value)
	}
	return params
}

// positionalArgs lists the values bound to "?" placeholders, in the order
// the placeholders appear in the statement's SQL
func (s *state) positionalArgs() []interface{} {
	args := []interface{}{}

	switch s.resolveKind() {
	case KindInsert, KindUpdate:
		for _, field := range s.fields {
			val, _ := s.payload.Get(field)
			args = append(args, val)
		}
	case KindCreateTable:
		for _, col := range s.columns {
			if col.hasDefault() {
				val, _ := s.payload.Get(col.Name)
				args = append(args, val)
			}
		}
	}

	switch s.resolveKind() {
	case KindSelect, KindUpdate, KindDelete:
		for _, cond := range s.conditions {
			args = append(args, cond.Value)
		}
	}

	return args
}

func valuePlaceholder(style paramStyle, field string) string {
	if style == positionalStyle {
		return "?"
	}
	return ":" + field
}

// quoteIdent wraps an identifier in backticks. Identifiers that are
// already quoted are returned as-is.
func quoteIdent(name string) string {
	if len(name) > 1 && strings.HasPrefix(name, "`") && strings.HasSuffix(name, "`") {
		return name
	}
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// quoteField quotes a selected field. Expressions (anything with spaces,
// parentheses or wildcards) are used verbatim; "table.column" references
// are quoted part by part.
func quoteField(field string) string {
	if strings.ContainsAny(field, " (*") {
		return field
	}

	parts := strings.Split(field, ".")
	for i, part := range parts {
		parts[i] = quoteIdent(part)
	}
	return strings.Join(parts, ".")
}
