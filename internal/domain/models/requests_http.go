package models

// Requests for trend HTTP endpoints. Defined in domain for consistency and reuse.

type EvaluateRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	At     string `query:"at" json:"at"` // RFC3339 or unix seconds; empty means now
}

type PairlistRequest struct {
	Symbols []string `json:"symbols" validate:"required,min=1,max=2000,dive,required"`
	At      string   `json:"at"`
}

type PairlistResponse struct {
	Kept    []string `json:"kept"`
	Removed []string `json:"removed"`
}

type StatusResponse struct {
	Description  string       `json:"description"`
	NeedsTickers bool         `json:"needs_tickers"`
	Enabled      bool         `json:"enabled"`
	CacheSize    int          `json:"cache_size"`
	Config       FilterConfig `json:"config"`
	Stats        FilterStats  `json:"stats"`
}

// FilterStats counts symbols seen by the pairlist since start.
type FilterStats struct {
	TotalProcessed int64 `json:"total_processed"`
	PassedThrough  int64 `json:"passed_through"`
	FilteredOut    int64 `json:"filtered_out"`
}
