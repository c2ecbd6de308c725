package opensea

import (
	"fmt"
	"time"

	"NFTCast/internal/domain/models"
	"NFTCast/pkg/util"
)

type nftEnvelope struct {
	NFT        *nftPayload        `json:"nft"`
	Collection *collectionPayload `json:"collection"`
}

type nftPayload struct {
	Identifier      string         `json:"identifier"`
	Collection      string         `json:"collection"`
	Contract        string         `json:"contract"`
	TokenStandard   string         `json:"token_standard"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	ImageURL        string         `json:"image_url"`
	DisplayImageURL string         `json:"display_image_url"`
	MetadataURL     string         `json:"metadata_url"`
	OpenSeaURL      string         `json:"opensea_url"`
	UpdatedAt       string         `json:"updated_at"`
	IsDisabled      bool           `json:"is_disabled"`
	IsNSFW          bool           `json:"is_nsfw"`
	Traits          []models.Trait `json:"traits"`
}

type collectionPayload struct {
	Collection string `json:"collection"`
	Name       string `json:"name"`
}

// slug prefers the collection object and falls back to the nft's own collection field.
func (e nftEnvelope) slug() string {
	if e.Collection != nil && e.Collection.Collection != "" {
		return e.Collection.Collection
	}
	if e.NFT != nil {
		return e.NFT.Collection
	}
	return ""
}

func (e nftEnvelope) format(ref models.NFTRef, floor float64, now time.Time) models.NFTDetails {
	n := e.NFT
	if n == nil {
		n = &nftPayload{}
	}
	collName := ""
	if e.Collection != nil {
		collName = e.Collection.Name
	}

	d := models.NFTDetails{
		Name:            n.Name,
		Collection:      collName,
		ContractAddress: ref.ContractAddress,
		TokenID:         ref.TokenID,
		Image:           n.ImageURL,
		OpenSeaURL:      n.OpenSeaURL,
		Description:     n.Description,
		Traits:          n.Traits,
		FloorPrice:      floor,
		CollectionSlug:  e.slug(),
		IsDisabled:      n.IsDisabled,
		IsNSFW:          n.IsNSFW,
		TokenStandard:   n.TokenStandard,
		MetadataURL:     n.MetadataURL,
		UpdatedAt:       n.UpdatedAt,
	}
	if d.Name == "" {
		if collName != "" {
			d.Name = fmt.Sprintf("%s #%s", collName, ref.TokenID)
		} else {
			d.Name = "NFT #" + ref.TokenID
		}
	}
	if d.Collection == "" {
		d.Collection = "Unknown Collection"
	}
	if d.Image == "" {
		d.Image = n.DisplayImageURL
	}
	if d.Traits == nil {
		d.Traits = []models.Trait{}
	}
	// unparseable timestamps pass through untouched
	if t, ok := util.ParseTime(d.UpdatedAt); ok {
		d.UpdatedAt = t.UTC().Format(time.RFC3339)
	} else if d.UpdatedAt == "" {
		d.UpdatedAt = now.UTC().Format(time.RFC3339)
	}
	return d
}
