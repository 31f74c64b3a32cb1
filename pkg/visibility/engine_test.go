package visibility

import (
	"context"
	"testing"

	"github.com/angiepellets-dev/Holz-Markt/pkg/catalog"
	"github.com/angiepellets-dev/Holz-Markt/pkg/datastructure"
	"github.com/angiepellets-dev/Holz-Markt/pkg/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubResolver struct {
	locations map[string]*datastructure.Location
}

func (r *stubResolver) Resolve(_ context.Context, query string) (*datastructure.Location, error) {
	return r.locations[query], nil
}

// allOn enables every dimension so single predicates can be switched off
// per test
func allOn() datastructure.FilterConfiguration {
	return datastructure.FilterConfiguration{
		ShowPellets:        true,
		ShowResidualWood:   true,
		ShowPlainCustomers: true,
		ShowBagCustomers:   true,
		Certificates:       []string{"enplus"},
		AllowNoCertificate: true,
		Tiers: []datastructure.PriceTier{
			datastructure.TierNeutral, datastructure.TierLow,
			datastructure.TierMedium, datastructure.TierHigh,
		},
	}
}

func buildCatalog(t *testing.T, suppliers []*datastructure.Supplier,
	customers []*datastructure.Customer) *catalog.Catalog {
	t.Helper()

	resolver := &stubResolver{locations: map[string]*datastructure.Location{
		"Hamburg": datastructure.NewLocation(53.55, 9.99, "Deutschland", "de"),
		"Graz":    datastructure.NewLocation(47.07, 15.44, "Österreich", "at"),
	}}

	pricing.Normalize(suppliers)
	return catalog.Build(context.Background(), suppliers, customers, resolver, zap.NewNop())
}

func labels(markers []datastructure.VisibleMarker) []string {
	out := make([]string, len(markers))
	for i, m := range markers {
		out[i] = m.Label
	}
	return out
}

func TestCustomersAreAnAccessoryLayerOfThePrimaryDataset(t *testing.T) {
	cat := buildCatalog(t, nil, []*datastructure.Customer{
		{Name: "Kunde Eins", LocationText: "Hamburg", AcceptsLooseLoad: true},
		{Name: "Kunde Zwei", LocationText: "Graz", AcceptsBaggedGoods: true},
	})

	cfg := allOn()
	markers := ComputeVisible(cat, cfg, datastructure.PriceModeUnit)
	require.Len(t, markers, 2)
	assert.Equal(t, datastructure.MarkerCustomer, markers[0].Kind)
	assert.Equal(t, datastructure.MarkerBagCustomer, markers[1].Kind)

	cfg.ShowPellets = false
	assert.Empty(t, ComputeVisible(cat, cfg, datastructure.PriceModeUnit))

	cfg = allOn()
	cfg.ShowBagCustomers = false
	markers = ComputeVisible(cat, cfg, datastructure.PriceModeUnit)
	assert.Equal(t, []string{"Kunde Eins"}, labels(markers))

	cfg = allOn()
	cfg.Countries = []string{"at"}
	markers = ComputeVisible(cat, cfg, datastructure.PriceModeUnit)
	assert.Equal(t, []string{"Kunde Zwei"}, labels(markers))
}

func TestCrossDatasetOfftakerException(t *testing.T) {
	cat := buildCatalog(t, []*datastructure.Supplier{
		{CompanyName: "Werk A", LocationText: "Hamburg", Dataset: datastructure.DatasetPellets,
			UnitPrice: 250, BuyerText: "Sägerestholz GmbH"},
		{CompanyName: "Werk B", LocationText: "Hamburg", Dataset: datastructure.DatasetPellets,
			UnitPrice: 250},
	}, nil)

	cfg := allOn()
	cfg.ShowPellets = false

	markers := ComputeVisible(cat, cfg, datastructure.PriceModeUnit)
	require.Len(t, markers, 1, "only the offtaker survives the pellets toggle")
	assert.Equal(t, "Werk A", markers[0].Label)
	assert.Equal(t, datastructure.MarkerOfftakerVariant, markers[0].Kind)

	// with the residual-wood toggle also off the exception vanishes
	cfg.ShowResidualWood = false
	assert.Empty(t, ComputeVisible(cat, cfg, datastructure.PriceModeUnit))

	// with both datasets on the offtaker renders as a plain supplier
	cfg = allOn()
	markers = ComputeVisible(cat, cfg, datastructure.PriceModeUnit)
	require.Len(t, markers, 2)
	assert.Equal(t, datastructure.MarkerSupplier, markers[0].Kind)
}

func TestBagTypeFilterOnlyInBagMode(t *testing.T) {
	cat := buildCatalog(t, []*datastructure.Supplier{
		{CompanyName: "Werk A", LocationText: "Hamburg", Dataset: datastructure.DatasetPellets,
			UnitPrice: 250, BagPrice: 300, BagType: "15kg Sack"},
		{CompanyName: "Werk B", LocationText: "Hamburg", Dataset: datastructure.DatasetPellets,
			UnitPrice: 250, BagPrice: 300},
	}, nil)

	cfg := allOn()
	cfg.BagTypes = []string{"15KG"}

	// unit mode ignores bag-type filters
	markers := ComputeVisible(cat, cfg, datastructure.PriceModeUnit)
	assert.Len(t, markers, 2)

	// bag mode: entities without matching (or any) bag-type text fail
	markers = ComputeVisible(cat, cfg, datastructure.PriceModeBag)
	assert.Equal(t, []string{"Werk A"}, labels(markers))

	// no enabled bag-type filter passes everything through
	cfg.BagTypes = nil
	markers = ComputeVisible(cat, cfg, datastructure.PriceModeBag)
	assert.Len(t, markers, 2)
}

func TestCertificateFilter(t *testing.T) {
	cat := buildCatalog(t, []*datastructure.Supplier{
		{CompanyName: "Werk A", LocationText: "Hamburg", Dataset: datastructure.DatasetPellets,
			UnitPrice: 250, Certificate: "ENplus A1"},
		{CompanyName: "Werk B", LocationText: "Hamburg", Dataset: datastructure.DatasetPellets,
			UnitPrice: 250},
	}, nil)

	cfg := allOn()
	cfg.AllowNoCertificate = false
	markers := ComputeVisible(cat, cfg, datastructure.PriceModeUnit)
	assert.Equal(t, []string{"Werk A"}, labels(markers),
		"uncertified entity needs the no-certificate toggle")

	cfg.Certificates = nil
	assert.Empty(t, ComputeVisible(cat, cfg, datastructure.PriceModeUnit),
		"no toggle covers either entity")

	cfg.AllowNoCertificate = true
	markers = ComputeVisible(cat, cfg, datastructure.PriceModeUnit)
	assert.Equal(t, []string{"Werk B"}, labels(markers))
}

func TestColorTierToggleMonotonicity(t *testing.T) {
	cat := buildCatalog(t, []*datastructure.Supplier{
		{CompanyName: "Low", LocationText: "Hamburg", Dataset: datastructure.DatasetPellets, UnitPrice: 250},
		{CompanyName: "Medium", LocationText: "Hamburg", Dataset: datastructure.DatasetPellets, UnitPrice: 270},
		{CompanyName: "High", LocationText: "Hamburg", Dataset: datastructure.DatasetPellets, UnitPrice: 290},
	}, nil)

	cfg := allOn()
	cfg.Tiers = []datastructure.PriceTier{datastructure.TierLow}

	visible := labels(ComputeVisible(cat, cfg, datastructure.PriceModeUnit))
	assert.Equal(t, []string{"Low"}, visible)

	// enabling one more tier toggle can only grow the set
	cfg.Tiers = append(cfg.Tiers, datastructure.TierHigh)
	grown := labels(ComputeVisible(cat, cfg, datastructure.PriceModeUnit))
	assert.Subset(t, grown, visible)
	assert.Equal(t, []string{"Low", "High"}, grown)
}

func TestComputeVisibleIsIdempotent(t *testing.T) {
	cat := buildCatalog(t, []*datastructure.Supplier{
		{CompanyName: "Werk A", LocationText: "Hamburg", Dataset: datastructure.DatasetPellets,
			UnitPrice: 250, BuyerText: "Sägerestholz GmbH"},
	}, []*datastructure.Customer{
		{Name: "Kunde Eins", LocationText: "Graz", AcceptsLooseLoad: true},
	})

	cfg := allOn()
	first := ComputeVisible(cat, cfg, datastructure.PriceModeUnit)
	second := ComputeVisible(cat, cfg, datastructure.PriceModeUnit)
	assert.Equal(t, first, second)
}

func TestViewportCoversVisibleSet(t *testing.T) {
	cat := buildCatalog(t, []*datastructure.Supplier{
		{CompanyName: "Werk A", LocationText: "Hamburg", Dataset: datastructure.DatasetPellets, UnitPrice: 250},
	}, []*datastructure.Customer{
		{Name: "Kunde Eins", LocationText: "Graz", AcceptsLooseLoad: true},
	})

	markers := ComputeVisible(cat, allOn(), datastructure.PriceModeUnit)
	vp := Viewport(markers)
	require.True(t, vp.Valid)
	assert.LessOrEqual(t, vp.MinLat, 47.07)
	assert.GreaterOrEqual(t, vp.MaxLat, 53.55)

	assert.False(t, Viewport(nil).Valid)
}
