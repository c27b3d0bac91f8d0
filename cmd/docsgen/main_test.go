package main

import (
	"bytes"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const src = `package apierrors

import "net/http"

var (
	ErrA = DefinedError{Code: 1001, StatusCode: http.StatusNotFound, Err: "not " + "found", RuErr: "Не найдено"}
	ErrB = DefinedError{Code: 1002, Err: "bad"}
	other = 5
)
`

func TestGetRows(t *testing.T) {
	f, err := parser.ParseFile(token.NewFileSet(), "errors.go", src, 0)
	require.NoError(t, err)

	rows := getRows(f)
	require.Len(t, rows, 2)
	assert.Equal(t, "**1001**", rows[0][0])
	assert.Equal(t, "404 *StatusNotFound*", rows[0][1])
	assert.Equal(t, "`not found`", rows[0][2])
	assert.Equal(t, "`Не найдено`", rows[0][3])
	assert.Equal(t, "400 *StatusBadRequest*", rows[1][1])

	var buf bytes.Buffer
	require.NoError(t, render(&buf, rows))
	assert.Contains(t, buf.String(), "# Перечень кодов ошибок")
	assert.Contains(t, buf.String(), "**1001**")
}
