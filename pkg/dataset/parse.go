package dataset

import (
	"strings"

	"github.com/angiepellets-dev/Holz-Markt/pkg/datastructure"
	"github.com/angiepellets-dev/Holz-Markt/pkg/util"
)

// supplierStrategy parses a raw row matrix into supplier rows. Strategies
// are tried in order, the first one producing a non-empty result wins.
type supplierStrategy struct {
	name  string
	parse func(rows [][]string, ds datastructure.Dataset) []*datastructure.Supplier
}

var supplierStrategies = []supplierStrategy{
	{name: "header", parse: parseSuppliersWithHeader},
	{name: "headerless", parse: parseSuppliersPositional},
}

// ParseSuppliers applies the ordered parse-strategy policy to one supplier
// feed. Rows missing a name or location are dropped silently, that is a
// data-quality issue rather than an error.
func ParseSuppliers(rows [][]string, ds datastructure.Dataset) []*datastructure.Supplier {
	for _, strategy := range supplierStrategies {
		if out := strategy.parse(rows, ds); len(out) > 0 {
			return out
		}
	}
	return nil
}

func parseSuppliersWithHeader(rows [][]string, ds datastructure.Dataset) []*datastructure.Supplier {
	if len(rows) < 2 {
		return nil
	}
	idx, matched := resolveColumns(rows[0], supplierSynonyms)
	if matched == 0 {
		// no recognized header name anywhere: this is not a header feed
		return nil
	}

	out := make([]*datastructure.Supplier, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if s := supplierFromRow(idx, row, ds); s != nil {
			out = append(out, s)
		}
	}
	return out
}

// parseSuppliersPositional is the fallback for feeds exported without a
// header row: columns are taken in the sheet's native order.
func parseSuppliersPositional(rows [][]string, ds datastructure.Dataset) []*datastructure.Supplier {
	idx := columnIndex{
		colName: 0, colLocation: 1, colUnitPrice: 2, colBagPrice: 3,
		colCertificate: 4, colBagType: 5, colProduct: 6, colBuyer: 7,
	}

	out := make([]*datastructure.Supplier, 0, len(rows))
	for _, row := range rows {
		if s := supplierFromRow(idx, row, ds); s != nil {
			out = append(out, s)
		}
	}
	return out
}

func supplierFromRow(idx columnIndex, row []string, ds datastructure.Dataset) *datastructure.Supplier {
	name := idx.field(row, colName)
	location := idx.field(row, colLocation)
	if name == "" || location == "" {
		return nil
	}

	return &datastructure.Supplier{
		CompanyName:  name,
		LocationText: location,
		UnitPrice:    util.ParseLocaleFloat(idx.field(row, colUnitPrice)),
		BagPrice:     util.ParseLocaleFloat(idx.field(row, colBagPrice)),
		Certificate:  idx.field(row, colCertificate),
		BagType:      idx.field(row, colBagType),
		ProductText:  idx.field(row, colProduct),
		BuyerText:    idx.field(row, colBuyer),
		Dataset:      ds,
	}
}

// ParseCustomers parses the customer feed. Loose-load and bagged-goods
// acceptance are "ja"-valued columns in the sheet.
func ParseCustomers(rows [][]string) []*datastructure.Customer {
	if len(rows) < 2 {
		return nil
	}
	idx, _ := resolveColumns(rows[0], customerSynonyms)

	out := make([]*datastructure.Customer, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := idx.field(row, colName)
		location := idx.field(row, colLocation)
		if name == "" || location == "" {
			continue
		}
		out = append(out, &datastructure.Customer{
			Name:               name,
			LocationText:       location,
			AcceptsLooseLoad:   strings.EqualFold(idx.field(row, colLooseLoad), "ja"),
			AcceptsBaggedGoods: strings.EqualFold(idx.field(row, colBaggedGoods), "ja"),
		})
	}
	return out
}
