package models

import "time"

// NFTRef identifies a single token on a chain.
type NFTRef struct {
	Chain           string `json:"chain"`
	ContractAddress string `json:"contractAddress"`
	TokenID         string `json:"tokenId"`
}

// Identifier is the resolved form of user input: either a token or a collection slug.
type Identifier struct {
	NFT  *NFTRef
	Slug string
}

// IsCollection reports whether the identifier points at a collection only.
func (i Identifier) IsCollection() bool { return i.NFT == nil && i.Slug != "" }

type Trait struct {
	TraitType   string `json:"trait_type"`
	Value       any    `json:"value"`
	DisplayType string `json:"display_type,omitempty"`
}

// NFTDetails is the display metadata returned to the dashboard.
type NFTDetails struct {
	Name            string  `json:"name"`
	Collection      string  `json:"collection"`
	ContractAddress string  `json:"contractAddress"`
	TokenID         string  `json:"tokenId"`
	Image           string  `json:"image"`
	OpenSeaURL      string  `json:"opensea_url"`
	Description     string  `json:"description"`
	Traits          []Trait `json:"traits"`
	FloorPrice      float64 `json:"floor_price"`
	CollectionSlug  string  `json:"collection_slug"`
	IsDisabled      bool    `json:"is_disabled"`
	IsNSFW          bool    `json:"is_nsfw"`
	TokenStandard   string  `json:"token_standard"`
	MetadataURL     string  `json:"metadata_url"`
	UpdatedAt       string  `json:"updated_at"`
}

// CollectionStats mirrors the marketplace stats payload.
type CollectionStats struct {
	Total     CollectionTotals     `json:"total"`
	Intervals []CollectionInterval `json:"intervals,omitempty"`
}

type CollectionTotals struct {
	Volume           float64 `json:"volume"`
	Sales            float64 `json:"sales"`
	AveragePrice     float64 `json:"average_price"`
	NumOwners        float64 `json:"num_owners"`
	MarketCap        float64 `json:"market_cap"`
	FloorPrice       float64 `json:"floor_price"`
	FloorPriceSymbol string  `json:"floor_price_symbol"`
}

type CollectionInterval struct {
	Interval     string  `json:"interval"`
	Volume       float64 `json:"volume"`
	VolumeDiff   float64 `json:"volume_diff"`
	VolumeChange float64 `json:"volume_change"`
	Sales        float64 `json:"sales"`
	SalesDiff    float64 `json:"sales_diff"`
	AveragePrice float64 `json:"average_price"`
}

// FloorSnapshot is a recorded floor price observation.
type FloorSnapshot struct {
	ContractAddress string
	CollectionSlug  string
	FloorPrice      float64
	ObservedAt      time.Time
}
