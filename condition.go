package sqlqb

import (
	"strconv"
	"strings"
)

// Joiner is the logical operator that connects a condition to the ones
// preceding it in a WHERE clause
type Joiner string

// And joins a condition with AND
// Or joins a condition with OR
const (
	And Joiner = "AND"
	Or  Joiner = "OR"
)

// Comparison operators supported out of the box. Conditions accept any
// operator string and render it verbatim, so only pass vetted literals.
const (
	OpEq  = "="
	OpNe  = "!="
	OpGt  = ">"
	OpLt  = "<"
	OpGte = ">="
	OpLte = "<="
)

// Condition represents one predicate of a WHERE clause: a field compared
// with a value using an operator, joined to the previous predicate with
// a Joiner.
type Condition struct {
	Field    string
	Operator string
	Value    interface{}
	Joiner   Joiner

	// Key is the name of the condition's placeholder in named-style
	// queries (without the leading colon). It is allocated when the
	// statement is rendered.
	Key string
}

// parse renders the condition with the provided placeholder, prefixed
// by its joiner
func (cond Condition) parse(placeholder string) string {
	return string(cond.Joiner) + " " + cond.Field + " " + cond.Operator + " " + placeholder
}

// conditionList is an ordered sequence of conditions. The same field may
// appear more than once (e.g. for range queries).
type conditionList []Condition

// add appends a condition
func (list conditionList) add(field, operator string, value interface{}, joiner Joiner) conditionList {
	return append(list, Condition{
		Field:    field,
		Operator: operator,
		Value:    value,
		Joiner:   joiner,
	})
}

// keyed returns a copy of the list with a unique named key allocated for
// every condition. The first condition on a field gets "c<field>", later
// ones "c<field>_<n>". A candidate that is already taken, by reserved
// (payload) keys or by an earlier condition, is skipped by bumping n.
func (list conditionList) keyed(reserved []string) conditionList {
	used := make(map[string]bool, len(reserved)+len(list))
	for _, key := range reserved {
		used[key] = true
	}

	seen := make(map[string]int, len(list))
	out := make(conditionList, len(list))

	for i, cond := range list {
		n := seen[cond.Field] + 1

		key := conditionKey(cond.Field, n)
		for used[key] {
			n++
			key = conditionKey(cond.Field, n)
		}

		seen[cond.Field] = n
		used[key] = true

		cond.Key = key
		out[i] = cond
	}

	return out
}

func conditionKey(field string, n int) string {
	if n < 2 {
		return "c" + field
	}
	return "c" + field + "_" + strconv.Itoa(n)
}

// toSQL joins the conditions into the body of a WHERE clause. Every
// condition is rendered with its joiner; the leading one is trimmed
// since the first condition has nothing to join to.
func (list conditionList) toSQL(placeholder func(Condition) string) string {
	var parts []string
	for _, cond := range list {
		parts = append(parts, cond.parse(placeholder(cond)))
	}

	asSQL := strings.Join(parts, " ")
	if trimmed := strings.TrimPrefix(asSQL, string(And)+" "); trimmed != asSQL {
		asSQL = trimmed
	} else {
		asSQL = strings.TrimPrefix(asSQL, string(Or)+" ")
	}

	return strings.TrimSpace(asSQL)
}

// ParseJoiner converts "or" (in any case) into Or; anything else is And
func ParseJoiner(joiner string) Joiner {
	if strings.EqualFold(joiner, string(Or)) {
		return Or
	}
	return And
}
