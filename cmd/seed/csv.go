package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
)

// seedRow línea del CSV ya convertida a request de cadastro.
type seedRow struct {
	Line    int
	Request dto.ProductRequest
}

// rowError línea descartada y el motivo.
type rowError struct {
	Line int
	Err  error
}

func (e rowError) Error() string { return fmt.Sprintf("línea %d: %v", e.Line, e.Err) }

// toUTF8 devuelve el contenido en UTF-8. Lo que no es UTF-8 válido se lee como ISO-8859-1
// (exportaciones de planillas antiguas).
func toUTF8(raw []byte) ([]byte, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return raw, nil
	}
	return charmap.ISO8859_1.NewDecoder().Bytes(raw)
}

// parseCSV lee nome;descricao;preco;qtd. La cabecera es opcional. El precio acepta coma o punto decimal.
func parseCSV(r io.Reader) ([]seedRow, []rowError, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("leer CSV: %w", err)
	}
	content, err := toUTF8(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("decodificar ISO-8859-1: %w", err)
	}

	cr := csv.NewReader(bytes.NewReader(content))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		rows    []seedRow
		invalid []rowError
		line    int
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			invalid = append(invalid, rowError{Line: line, Err: err})
			continue
		}
		if line == 1 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "nome") {
			continue
		}
		req, err := parseRecord(rec)
		if err == nil {
			err = req.Validate()
		}
		if err != nil {
			invalid = append(invalid, rowError{Line: line, Err: err})
			continue
		}
		rows = append(rows, seedRow{Line: line, Request: req})
	}
	return rows, invalid, nil
}

func parseRecord(rec []string) (dto.ProductRequest, error) {
	if len(rec) != 4 {
		return dto.ProductRequest{}, fmt.Errorf("se esperaban 4 columnas, hay %d", len(rec))
	}
	price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[2]), ",", "."))
	if err != nil {
		return dto.ProductRequest{}, fmt.Errorf("preco %q: %w", rec[2], err)
	}
	qty, err := strconv.ParseInt(strings.TrimSpace(rec[3]), 10, 64)
	if err != nil {
		return dto.ProductRequest{}, fmt.Errorf("qtd %q: %w", rec[3], err)
	}
	return dto.ProductRequest{
		Name:        strings.TrimSpace(rec[0]),
		Description: strings.TrimSpace(rec[1]),
		Price:       price,
		Quantity:    qty,
	}, nil
}
