package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowsAffected(t *testing.T) {
	assert.Equal(t, "3", rowsAffected(sqlmock.NewResult(0, 3)))
	assert.Equal(t, "unknown", rowsAffected(sqlmock.NewErrorResult(errors.New("not supported"))))
}

func TestWriteRows(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, writeRows(&buf, "users", []map[string]interface{}{
		{"id": int64(1), "name": []byte("Mamadou")},
	}))
	assert.Equal(t, "# users: 1 rows\n- id: 1\n  name: Mamadou\n", buf.String())

	buf.Reset()
	require.NoError(t, writeRows(&buf, "none", nil))
	assert.Equal(t, "# none: 0 rows\n[]\n", buf.String())
}
