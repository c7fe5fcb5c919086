package models

// CollectionEfficiencies carries per-dpd collection efficiency rates for one
// due day, split by user segment. Keys are dpd offsets ("-7".."45").
type CollectionEfficiencies struct {
	New map[string]float64 `json:"New"`
	Old map[string]float64 `json:"Old"`
}

// CollectionPollResponse is the upstream poll payload: NBFC name -> due day of
// month ("1".."31") -> efficiencies.
type CollectionPollResponse struct {
	Data map[string]map[string]CollectionEfficiencies `json:"data"`
}

// DueAmountResponse maps NBFC name to the total amount falling due on the
// requested date.
type DueAmountResponse struct {
	Data map[string]float64 `json:"data"`
}
