package sqlqb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams(t *testing.T) {
	p := NewParams().Set("name", "Mamadou").Set("age", 23).Set("name", "Aly")

	assert.Equal(t, 2, p.Len())
	assert.Equal(t, []string{"name", "age"}, p.Keys())
	assert.Equal(t, []interface{}{"Aly", 23}, p.Values())
	assert.Equal(t, map[string]interface{}{"name": "Aly", "age": 23}, p.Map())

	value, ok := p.Get("age")
	assert.True(t, ok)
	assert.Equal(t, 23, value)

	_, ok = p.Get("missing")
	assert.False(t, ok)
}

func TestMapParamsSortsKeys(t *testing.T) {
	p := MapParams(map[string]interface{}{"c": 3, "a": 1, "b": 2})
	assert.Equal(t, []string{"a", "b", "c"}, p.Keys())
	assert.Equal(t, []interface{}{1, 2, 3}, p.Values())
}

func TestParamsClone(t *testing.T) {
	p := NewParams().Set("a", 1)
	c := p.Clone().Set("b", 2)

	assert.Equal(t, []string{"a"}, p.Keys())
	assert.Equal(t, []string{"a", "b"}, c.Keys())
}

func TestNilParams(t *testing.T) {
	var p *Params

	assert.Equal(t, 0, p.Len())
	assert.Nil(t, p.Keys())
	assert.Nil(t, p.Values())
	assert.Equal(t, map[string]interface{}{}, p.Map())
	assert.Equal(t, 0, p.Clone().Len())

	_, ok := p.Get("a")
	assert.False(t, ok)

	var zero Params
	zero.Set("a", 1)
	assert.Equal(t, []string{"a"}, zero.Keys())
}

func TestQuery(t *testing.T) {
	q := NewQuery("SELECT * FROM `user` WHERE id = ?;", 1)
	assert.False(t, q.Named())
	assert.Nil(t, q.Params())
	assert.Equal(t, []interface{}{1}, q.Args())
	assert.Equal(t, "SELECT * FROM `user` WHERE id = ?;", q.String())

	params := NewParams().Set("cid", 1)
	named := NewNamedQuery("SELECT * FROM `user` WHERE id = :cid;", params)
	params.Set("cid", 2)

	assert.True(t, named.Named())
	assert.Equal(t, []interface{}{1}, named.Args())

	// queries don't change through returned values
	named.Args()[0] = 3
	named.Params().Set("cid", 4)
	assert.Equal(t, []interface{}{1}, named.Args())
	value, _ := named.Params().Get("cid")
	assert.Equal(t, 1, value)
}

func TestQueryErrorMessage(t *testing.T) {
	err := newPrepareError("SELECT 1;", assert.AnError)
	assert.Equal(t, "failed preparing statement: "+assert.AnError.Error()+" (query: SELECT 1;)", err.Error())

	err = &QueryError{Query: "SELECT 1;", Kind: ErrStatementPreparation}
	assert.Equal(t, "failed preparing statement (query: SELECT 1;)", err.Error())
}
