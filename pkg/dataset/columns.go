package dataset

import (
	"strings"
)

type column int

const (
	colName column = iota
	colLocation
	colUnitPrice
	colBagPrice
	colCertificate
	colBagType
	colProduct
	colBuyer

	colLooseLoad
	colBaggedGoods
)

// the feeds are maintained by hand, header names drift between sheets.
// columns are matched case-insensitively against these synonym lists once
// per feed, rows are then read through the resolved index.
var supplierSynonyms = map[column][]string{
	colName:        {"firma", "werk", "name"},
	colLocation:    {"ort", "stadt", "location", "standort", "adresse"},
	colUnitPrice:   {"preis", "€/srm", "werkspreis", "price"},
	colBagPrice:    {"preis_sack", "sackpreis", "bag_price"},
	colCertificate: {"zert", "cert"},
	colBagType:     {"sack", "bag"},
	colProduct:     {"produkt", "products"},
	colBuyer:       {"abnehmer", "kunde"},
}

var customerSynonyms = map[column][]string{
	colName:        {"name", "firma"},
	colLocation:    {"ort", "stadt", "location", "standort", "adresse"},
	colLooseLoad:   {"lose"},
	colBaggedGoods: {"sackware"},
}

// columnIndex maps every canonical column to its position in the header
// row, -1 when no synonym matched.
type columnIndex map[column]int

// resolveColumns also reports how many synonyms actually matched, so a
// caller can tell a real header row from a data row.
func resolveColumns(header []string, synonyms map[column][]string) (columnIndex, int) {
	idx := make(columnIndex, len(synonyms))
	for col := range synonyms {
		idx[col] = -1
	}

	matched := 0
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		for col, cands := range synonyms {
			if idx[col] != -1 {
				continue
			}
			for _, cand := range cands {
				if name == cand {
					idx[col] = i
					matched++
					break
				}
			}
		}
	}

	// name and location default to the two leading columns
	if idx[colName] == -1 {
		idx[colName] = 0
	}
	if idx[colLocation] == -1 {
		idx[colLocation] = 1
	}
	return idx, matched
}

// field reads one resolved column from a row, degrading to the empty string
// for missing columns and short rows.
func (idx columnIndex) field(row []string, col column) string {
	i, ok := idx[col]
	if !ok || i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
