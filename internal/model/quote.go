package model

import "time"

type ProvenanceKind string

const (
	ProvenanceLive      ProvenanceKind = "live"
	ProvenanceSynthetic ProvenanceKind = "synthetic"
)

// SyntheticSource is the Source name stamped on generated records.
const SyntheticSource = "synthetic"

// Provenance records which adapter produced a record and whether it is live data.
type Provenance struct {
	Kind   ProvenanceKind `json:"kind"`
	Source string         `json:"source"`
}

func Live(source string) Provenance {
	return Provenance{Kind: ProvenanceLive, Source: source}
}

func Synthetic() Provenance {
	return Provenance{Kind: ProvenanceSynthetic, Source: SyntheticSource}
}

func (p Provenance) IsSynthetic() bool {
	return p.Kind == ProvenanceSynthetic
}

type QuoteRecord struct {
	Symbol        string     `json:"symbol"`
	DisplayName   string     `json:"display_name"`
	Price         float64    `json:"price"`
	PercentChange float64    `json:"percent_change"`
	ChangeAmount  float64    `json:"change_amount"`
	Volume        int64      `json:"volume"`
	Sector        string     `json:"sector,omitempty"`
	LastUpdate    time.Time  `json:"last_update"`
	Provenance    Provenance `json:"provenance"`
}
