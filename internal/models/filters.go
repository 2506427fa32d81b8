package models

// ATMFilter represents query parameters for ranking and filtering ATMs.
// Lat/Lon is the reference point distances are computed against.
type ATMFilter struct {
	Lat      float64 `form:"lat"`
	Lon      float64 `form:"lon"`
	Query    string  `form:"q"`        // substring match against name/bank
	OpenNow  bool    `form:"open"`     // keep only ATMs flagged open
	RadiusKm float64 `form:"radiusKm"` // keep ATMs within N km, 0 = unbounded
	Bank     string  `form:"bank"`     // exact bank match
	Service  string  `form:"service"`  // service tag match
	Limit    int     `form:"limit"`
}

// NearbyFilter represents parameters for the nearby-place search.
type NearbyFilter struct {
	Lat      float64 `form:"lat"`
	Lon      float64 `form:"lon"`
	RadiusKm float64 `form:"radiusKm"`
	Service  string  `form:"service"`
	Limit    int     `form:"limit"`
}
