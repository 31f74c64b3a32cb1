package pkg

// Fixed business constants of the price-tier rule. Prices are assumed to be
// pre-converted to a common currency/unit before normalization, the
// thresholds apply regardless of where a price came from.
const (
	LOW_TIER_MAX_PRICE  float64 = 260.0
	HIGH_TIER_MIN_PRICE float64 = 285.0
)

// Standard pellet transport economics.
const (
	TRUCK_PAYLOAD_DIVISOR  float64 = 24.0
	SHORT_HAUL_RATE_PER_KM float64 = 2.15
	LONG_HAUL_RATE_PER_KM  float64 = 1.85
	LONG_HAUL_THRESHOLD_KM float64 = 250.0
	TRANSPORT_SURCHARGE    float64 = 1.05
)

// Bulk sawdust/wood-chip transport economics. Cost is normalized back to a
// per-volume-unit figure over one full truckload.
const (
	BULK_LOAD_CAPACITY float64 = 85.0
	BULK_RATE_PER_KM   float64 = 2.5
)

// GEOCACHE_NAMESPACE is the fixed key the serialized geocode cache is
// persisted under, kept stable across releases so old caches stay valid.
const GEOCACHE_NAMESPACE = "geoCachePellets_EU"
