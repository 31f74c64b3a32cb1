package datastructure

import (
	"strings"
)

// FilterConfiguration is the snapshot of every toggle the map UI exposes.
// It is supplied fresh by the caller on each recomputation and never owned
// by the engine.
type FilterConfiguration struct {
	ShowPellets      bool `json:"show_pellets"`
	ShowResidualWood bool `json:"show_residual_wood"`

	ShowPlainCustomers bool `json:"show_plain_customers"`
	ShowBagCustomers   bool `json:"show_bag_customers"`

	// enabled certificate keyword toggles, matched as case-insensitive
	// substrings of the certificate text
	Certificates       []string `json:"certificates"`
	AllowNoCertificate bool     `json:"allow_no_certificate"`

	Tiers []PriceTier `json:"tiers"`

	// empty slice = no country filter
	Countries []string `json:"countries"`

	// enabled bag-type keyword filters, only consulted in bag pricing mode
	BagTypes []string `json:"bag_types"`
}

func (f FilterConfiguration) TierEnabled(t PriceTier) bool {
	for _, enabled := range f.Tiers {
		if enabled == t {
			return true
		}
	}
	return false
}

func (f FilterConfiguration) CountryFilterActive() bool {
	return len(f.Countries) > 0
}

func (f FilterConfiguration) CountryEnabled(code string) bool {
	for _, c := range f.Countries {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}

func (f FilterConfiguration) AnyBagTypeEnabled() bool {
	return len(f.BagTypes) > 0
}

// BagTypeMatches ORs the enabled bag-type keywords against the entity's
// bag-type text. Entities with no bag-type text never match.
func (f FilterConfiguration) BagTypeMatches(bagType string) bool {
	if strings.TrimSpace(bagType) == "" {
		return false
	}
	lower := strings.ToLower(bagType)
	for _, keyword := range f.BagTypes {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// CertificateMatches applies the certificate dimension: either the
// certificate text matches one enabled keyword toggle, or the entity has no
// certificate text and the "no certificate" toggle is on.
func (f FilterConfiguration) CertificateMatches(certificate string) bool {
	if strings.TrimSpace(certificate) == "" {
		return f.AllowNoCertificate
	}
	lower := strings.ToLower(certificate)
	for _, keyword := range f.Certificates {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
