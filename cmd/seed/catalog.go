package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jhoicas/inventario-portal/internal/application/dto"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// readCatalog lee el CSV de productos: nombre;descripcion;stock (la primera fila es cabecera).
// Las hojas de cálculo exportan en ISO-8859-1; con latin1 se convierte a UTF-8 antes de parsear.
func readCatalog(r io.Reader, latin1 bool) ([]dto.CreateProductRequest, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []dto.CreateProductRequest
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if line == 1 || len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		in := dto.CreateProductRequest{Name: strings.TrimSpace(rec[0])}
		if len(rec) > 1 {
			in.Description = strings.TrimSpace(rec[1])
		}
		if len(rec) > 2 && strings.TrimSpace(rec[2]) != "" {
			stock, err := strconv.Atoi(strings.TrimSpace(rec[2]))
			if err != nil || stock < 0 {
				return nil, fmt.Errorf("línea %d: stock inválido %q", line, rec[2])
			}
			in.StockQuantity = stock
		}
		if len(rec) > 3 {
			in.ImageURL = strings.TrimSpace(rec[3])
		}
		out = append(out, in)
	}
	return out, nil
}
