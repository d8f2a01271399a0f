// Package stmtfile decodes statement files: YAML documents describing
// statements that the sqlqb command line tool renders or executes.
//
// A file holds one or more YAML documents, each describing one statement:
//
//	name: active adults
//	kind: select
//	table: user
//	fields: [id, name]
//	where:
//	  - {field: age, op: ">=", value: 18}
//	  - {field: status, value: active, or: true}
//	limit: 10
//
// Values of insert and update statements keep the order they are written
// in:
//
//	kind: insert
//	table: user
//	values:
//	  name: Mamadou
//	  age: 23
package stmtfile

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ido50/sqlqb"
	"gopkg.in/yaml.v3"
)

// Placeholder styles a statement can be rendered in
const (
	StyleNamed      = "named"
	StylePositional = "positional"
)

// Statement describes one statement
type Statement struct {
	Name     string      `yaml:"name"`
	Style    string      `yaml:"style"`
	Kind     string      `yaml:"kind"`
	Table    string      `yaml:"table"`
	Database string      `yaml:"database"`
	Fields   StringList  `yaml:"fields"`
	Values   yaml.Node   `yaml:"values"`
	Where    []Condition `yaml:"where"`
	Limit    *int64      `yaml:"limit"`
	Offset   *int64      `yaml:"offset"`
	Columns  []Column    `yaml:"columns"`
}

// Condition describes one WHERE condition. The operator defaults to "=".
// A condition is joined to the previous ones with AND, unless Or is set or
// Join is "or".
type Condition struct {
	Field string      `yaml:"field"`
	Op    string      `yaml:"op"`
	Value interface{} `yaml:"value"`
	Or    bool        `yaml:"or"`
	Join  string      `yaml:"join"`
}

// Column describes one column of a CREATE TABLE statement
type Column struct {
	Name      string     `yaml:"name"`
	Type      string     `yaml:"type"`
	Length    string     `yaml:"length"`
	Behaviors StringList `yaml:"behaviors"`
	Default   *yaml.Node `yaml:"default"`
}

// StringList is a YAML type that can be either a string or a list of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler for StringList.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	default:
		return fmt.Errorf("expected string or list, got %v", node.Kind)
	}
}

// ReadFile decodes all statements of a statement file
func ReadFile(path string) ([]*Statement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read statement file: %w", err)
	}

	stmts, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse statement file %s: %w", path, err)
	}

	return stmts, nil
}

// Decode decodes all statements (YAML documents) from r
func Decode(r io.Reader) ([]*Statement, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var stmts []*Statement
	for {
		var stmt Statement
		err := dec.Decode(&stmt)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", len(stmts)+1, err)
		}

		stmts = append(stmts, &stmt)
	}

	if len(stmts) == 0 {
		return nil, errors.New("no statements found")
	}

	return stmts, nil
}

// Executable is a positional-style statement
type Executable interface {
	sqlqb.SQLStmt
	GetQuery() *sqlqb.Query
	Err() error
	Exec(ctx context.Context) (sql.Result, error)
	GetMaps(ctx context.Context) ([]map[string]interface{}, error)
}

// IsPositional reports whether the statement uses "?" placeholders
func (s *Statement) IsPositional() bool {
	return strings.EqualFold(s.Style, StylePositional)
}

// StatementKind parses the kind of the statement
func (s *Statement) StatementKind() (sqlqb.Kind, error) {
	switch strings.ToLower(s.Kind) {
	case "select":
		return sqlqb.KindSelect, nil
	case "insert":
		return sqlqb.KindInsert, nil
	case "update":
		return sqlqb.KindUpdate, nil
	case "delete":
		return sqlqb.KindDelete, nil
	case "create", "create table":
		return sqlqb.KindCreateTable, nil
	case "drop", "drop table":
		if s.Database != "" {
			return sqlqb.KindDropDatabase, nil
		}
		return sqlqb.KindDropTable, nil
	case "drop database":
		return sqlqb.KindDropDatabase, nil
	}

	return sqlqb.KindNone, fmt.Errorf("unknown statement kind %q", s.Kind)
}

// Payload decodes the statement's values, keeping their order
func (s *Statement) Payload() (*sqlqb.Params, error) {
	params := sqlqb.NewParams()

	switch {
	case s.Values.Kind == 0, s.Values.Tag == "!!null":
		return params, nil
	case s.Values.Kind == yaml.MappingNode:
	default:
		return nil, fmt.Errorf("values must be a mapping (line %d)", s.Values.Line)
	}

	for i := 0; i+1 < len(s.Values.Content); i += 2 {
		key, node := s.Values.Content[i], s.Values.Content[i+1]

		var value interface{}
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("value of %s: %w", key.Value, err)
		}

		params.Set(key.Value, value)
	}

	return params, nil
}

// Builder applies the statement to a named-style builder. The builder is
// reset first.
func (s *Statement) Builder(b *sqlqb.Builder) (*sqlqb.Builder, error) {
	kind, err := s.StatementKind()
	if err != nil {
		return nil, err
	}

	payload, err := s.Payload()
	if err != nil {
		return nil, err
	}

	b.Reset()

	switch kind {
	case sqlqb.KindSelect:
		b.Select(s.Fields...)
	case sqlqb.KindInsert:
		b.Insert(payload)
	case sqlqb.KindUpdate:
		b.Update(payload)
	case sqlqb.KindDelete:
		b.Delete()
	case sqlqb.KindCreateTable:
		b.Create()
		if err := s.applyColumns(b); err != nil {
			return nil, err
		}
	case sqlqb.KindDropTable, sqlqb.KindDropDatabase:
		b.Drop()
	}

	if kind == sqlqb.KindDropDatabase {
		b.Database(s.target())
	} else {
		b.From(s.target())
	}

	for _, cond := range s.Where {
		if cond.joiner() == sqlqb.Or {
			b.OrWhere(cond.Field)
		} else {
			b.Where(cond.Field)
		}
		b.Compare(cond.operator(), cond.Value)
	}

	if s.Limit != nil {
		b.Limit(*s.Limit)
	}
	if s.Offset != nil {
		b.Offset(*s.Offset)
	}

	return b, b.Err()
}

func (s *Statement) applyColumns(b *sqlqb.Builder) error {
	for _, col := range s.Columns {
		var behaviors []sqlqb.Behavior
		for _, name := range col.Behaviors {
			behavior, err := parseBehavior(name)
			if err != nil {
				return fmt.Errorf("column %s: %w", col.Name, err)
			}
			behaviors = append(behaviors, behavior)
		}

		// a "default" behavior without a default value binds NULL
		b.Column(col.Name, strings.ToUpper(col.Type), col.Length, behaviors...)

		if col.Default != nil {
			var value interface{}
			if err := col.Default.Decode(&value); err != nil {
				return fmt.Errorf("default of column %s: %w", col.Name, err)
			}
			b.Default(value)
		}
	}

	return nil
}

// Positional creates a positional-style statement. Only SELECT, INSERT,
// UPDATE and DELETE statements have a positional form. If db is nil, the
// statement can only be rendered.
func (s *Statement) Positional(db *sqlqb.DB) (Executable, error) {
	kind, err := s.StatementKind()
	if err != nil {
		return nil, err
	}

	payload, err := s.Payload()
	if err != nil {
		return nil, err
	}

	var stmt Executable

	switch kind {
	case sqlqb.KindSelect:
		sel := sqlqb.Select(s.Fields...)
		if db != nil {
			sel = db.Select(s.Fields...)
		}
		sel.From(s.target())
		for _, cond := range s.Where {
			if cond.joiner() == sqlqb.Or {
				sel.OrWhere(cond.Field, cond.operator(), cond.Value)
			} else {
				sel.Where(cond.Field, cond.operator(), cond.Value)
			}
		}
		if s.Limit != nil {
			sel.Limit(*s.Limit)
		}
		if s.Offset != nil {
			sel.Offset(*s.Offset)
		}
		stmt = sel
	case sqlqb.KindInsert:
		ins := sqlqb.Insert(payload)
		if db != nil {
			ins = db.Insert(payload)
		}
		stmt = ins.Into(s.target())
	case sqlqb.KindUpdate:
		upd := sqlqb.Update(payload)
		if db != nil {
			upd = db.Update(payload)
		}
		upd.Table(s.target())
		for _, cond := range s.Where {
			if cond.joiner() == sqlqb.Or {
				upd.OrWhere(cond.Field, cond.operator(), cond.Value)
			} else {
				upd.Where(cond.Field, cond.operator(), cond.Value)
			}
		}
		if s.Limit != nil {
			upd.Limit(*s.Limit)
		}
		stmt = upd
	case sqlqb.KindDelete:
		del := sqlqb.Delete()
		if db != nil {
			del = db.Delete()
		}
		del.From(s.target())
		for _, cond := range s.Where {
			if cond.joiner() == sqlqb.Or {
				del.OrWhere(cond.Field, cond.operator(), cond.Value)
			} else {
				del.Where(cond.Field, cond.operator(), cond.Value)
			}
		}
		if s.Limit != nil {
			del.Limit(*s.Limit)
		}
		stmt = del
	default:
		return nil, fmt.Errorf("%s statements have no positional form", kind)
	}

	return stmt, stmt.Err()
}

// Render renders the statement in its style, without a connection
func (s *Statement) Render() (*sqlqb.Query, error) {
	if s.IsPositional() {
		stmt, err := s.Positional(nil)
		if err != nil {
			return nil, err
		}
		return stmt.GetQuery(), nil
	}

	b, err := s.Builder(sqlqb.NewBuilder(nil))
	if err != nil {
		return nil, err
	}

	q, _ := b.GetQuery()
	return q, nil
}

func (s *Statement) target() string {
	if s.Database != "" {
		return s.Database
	}
	return s.Table
}

func (cond Condition) operator() string {
	if cond.Op == "" {
		return sqlqb.OpEq
	}
	return cond.Op
}

func (cond Condition) joiner() sqlqb.Joiner {
	if cond.Or {
		return sqlqb.Or
	}
	return sqlqb.ParseJoiner(cond.Join)
}

func parseBehavior(name string) (sqlqb.Behavior, error) {
	normalized := strings.Join(strings.Fields(strings.ToUpper(strings.ReplaceAll(name, "_", " "))), " ")

	switch normalized {
	case "PRIMARY KEY":
		return sqlqb.BehaviorPrimaryKey, nil
	case "NOT NULL":
		return sqlqb.BehaviorNotNull, nil
	case "AUTO INCREMENT", "AUTOINCREMENT":
		return sqlqb.BehaviorAutoIncrement, nil
	case "DEFAULT":
		return sqlqb.BehaviorDefault, nil
	}

	return "", fmt.Errorf("unknown column behavior %q", name)
}
