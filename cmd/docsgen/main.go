// Генерация документации об ошибках API в формате Markdown.
// Разбирает файл с определениями apierrors.DefinedError и строит таблицу с кодами, HTTP статусами и сообщениями.
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	md "github.com/nao1215/markdown"
)

// statusCodes - HTTP статусы, которые используются в определениях ошибок.
var statusCodes = map[string]int{
	"StatusBadRequest":            400,
	"StatusUnauthorized":          401,
	"StatusForbidden":             403,
	"StatusNotFound":              404,
	"StatusConflict":              409,
	"StatusRequestEntityTooLarge": 413,
	"StatusUnsupportedMediaType":  415,
	"StatusUnprocessableEntity":   422,
	"StatusTooManyRequests":       429,
	"StatusInternalServerError":   500,
	"StatusBadGateway":            502,
	"StatusServiceUnavailable":    503,
	"StatusGatewayTimeout":        504,
}

func main() {
	errorsFile := flag.String("src", "internal/cms/apierrors/apierrors.go", "Path of apierrors.go")
	outputMd := flag.String("out", "api_error.md", "Path to output md")
	flag.Parse()

	slog.Info("Generate api errors docs", "src", *errorsFile, "out", *outputMd)

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, *errorsFile, nil, 0)
	if err != nil {
		slog.Error("Parse errors file", "err", err)
		os.Exit(1)
	}

	ff, err := os.Create(*outputMd)
	if err != nil {
		slog.Error("Create docs file", "err", err)
		os.Exit(1)
	}
	defer ff.Close()

	if err := render(ff, getRows(f)); err != nil {
		slog.Error("Generate docs fail", "err", err)
		return
	}
	slog.Info("Docs generated")
}

func render(w io.Writer, rows [][]string) error {
	return md.NewMarkdown(w).
		H1("Перечень кодов ошибок").
		PlainText("Данный раздел посвящен описанию возможных ошибок от сервера.").
		CustomTable(md.TableSet{
			Header: []string{"Код", "HTTP код", "Сообщение", "Сообщение на русском"},
			Rows:   rows,
		}, md.TableOptions{
			AutoWrapText: false,
		}).Build()
}

// getRows собирает строки таблицы из составных литералов DefinedError в объявлениях var.
func getRows(f *ast.File) [][]string {
	var rows [][]string
	for _, d := range f.Decls {
		decl, ok := d.(*ast.GenDecl)
		if !ok || decl.Tok != token.VAR {
			continue
		}
		for _, spec := range decl.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for _, v := range vs.Values {
				lit, ok := v.(*ast.CompositeLit)
				if !ok || fmt.Sprint(lit.Type) != "DefinedError" {
					continue
				}
				rows = append(rows, definedErrorRow(lit))
			}
		}
	}
	return rows
}

func definedErrorRow(lit *ast.CompositeLit) []string {
	row := make([]string, 4)
	status := "StatusBadRequest"
	for _, elt := range lit.Elts {
		param, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			continue
		}
		switch fmt.Sprint(param.Key) {
		case "Code":
			row[0] = md.Bold(literal(param.Value))
		case "StatusCode":
			if sel, ok := param.Value.(*ast.SelectorExpr); ok {
				status = sel.Sel.Name
			}
		case "Err":
			row[2] = md.Code(literal(param.Value))
		case "RuErr":
			row[3] = md.Code(literal(param.Value))
		}
	}
	row[1] = fmt.Sprintf("%d %s", statusCodes[status], md.Italic(status))
	return row
}

// literal возвращает значение строкового или числового литерала, склеивая конкатенации.
func literal(expr ast.Expr) string {
	switch x := expr.(type) {
	case *ast.BasicLit:
		if s, err := strconv.Unquote(x.Value); err == nil {
			return s
		}
		return x.Value
	case *ast.BinaryExpr:
		return literal(x.X) + literal(x.Y)
	case *ast.ParenExpr:
		return literal(x.X)
	}
	return strings.TrimSpace(fmt.Sprint(expr))
}
