package models

// Requests for the HTTP endpoints. Defined in domain for consistency and reuse.

type NFTRequest struct {
	ContractAddress string `json:"contractAddress" validate:"required"`
	TokenID         string `json:"tokenId" validate:"required"`
	Chain           string `json:"chain" default:"ethereum"`
}

type CollectionRequest struct {
	Slug string `query:"slug" json:"slug" validate:"required"`
}

type AnalyzeRequest struct {
	Input           string `json:"input"`
	ContractAddress string `json:"contractAddress"`
	TokenID         string `json:"tokenId"`
	Chain           string `json:"chain"`
	Horizon         int    `json:"horizon" validate:"gte=0"` // 0 uses the configured default
}

type ForecastRequest struct {
	Series  []PricePoint `json:"series" validate:"required,min=1,dive"`
	Model   string       `json:"model" default:"all" validate:"oneof=all gradient sequential bootstrap autoregressive ensemble"`
	Horizon int          `json:"horizon" validate:"gte=0"`
}

type LiveRequest struct {
	Price float64 `query:"price" default:"45.2" validate:"gt=0"`
}
