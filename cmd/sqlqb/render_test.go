package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const usersFile = `
name: adults
kind: select
table: user
fields: [id, name]
where:
  - {field: age, op: ">=", value: 18}
---
name: cleanup
style: positional
kind: delete
table: user
where:
  - {field: id, value: 3}
`

const productsFile = `
kind: insert
table: product
values:
  title: Pen
  price: 1.5
`

func writeStatements(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestRenderText(t *testing.T) {
	users := writeStatements(t, "users.yaml", usersFile)

	out, err := run(t, "render", users)
	require.NoError(t, err)

	assert.Equal(t, "-- "+users+": adults\n"+
		"SELECT `id`, `name` FROM `user` WHERE age >= :cage;\n"+
		"--   :cage = 18\n"+
		"\n"+
		"-- "+users+": cleanup\n"+
		"DELETE FROM `user` WHERE id = ?;\n"+
		"--   args: 3\n", out)
}

func TestRenderJSONKeepsFileOrder(t *testing.T) {
	users := writeStatements(t, "users.yaml", usersFile)
	products := writeStatements(t, "products.yaml", productsFile)

	out, err := run(t, "render", "--format", "json", "--workers", "2", products, users)
	require.NoError(t, err)

	var results []rendered
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)

	assert.Equal(t, "INSERT INTO `product`(`title`, `price`) VALUES(:title, :price);", results[0].SQL)
	assert.Equal(t, []param{{"title", "Pen"}, {"price", 1.5}}, results[0].Params)
	assert.Equal(t, "adults", results[1].Name)
	assert.Equal(t, "cleanup", results[2].Name)
	assert.Equal(t, []interface{}{float64(3)}, results[2].Args)
}

func TestRenderYAML(t *testing.T) {
	users := writeStatements(t, "users.yaml", usersFile)

	out, err := run(t, "render", "-f", "yaml", users)
	require.NoError(t, err)

	var results []rendered
	require.NoError(t, yaml.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "DELETE FROM `user` WHERE id = ?;", results[1].SQL)
	assert.Equal(t, []interface{}{3}, results[1].Args)
}

func TestRenderErrors(t *testing.T) {
	users := writeStatements(t, "users.yaml", usersFile)
	broken := writeStatements(t, "broken.yaml", "kind: merge\ntable: user\n")

	_, err := run(t, "render", "--format", "xml", users)
	assert.ErrorContains(t, err, "unknown output format")

	_, err = run(t, "render", users, broken)
	assert.ErrorContains(t, err, "unknown statement kind")

	_, err = run(t, "render")
	assert.Error(t, err)
}
