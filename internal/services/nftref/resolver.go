package nftref

import (
    "fmt"
    "regexp"
    "strings"

    "NFTCast/internal/domain/models"
    "NFTCast/internal/domain/service"
)

// DefaultChain is assumed when a link or pair carries no chain segment.
const DefaultChain = "ethereum"

var (
    addressRe = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
    tokenRe   = regexp.MustCompile(`^\d+$`)
    slugRe    = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,99}$`)

    // ordered: the explicit ethereum form must win over the generic chain form
    ethLinkRe    = regexp.MustCompile(`opensea\.io/assets/ethereum/(0x[a-fA-F0-9]{40})/(\d+)`)
    legacyLinkRe = regexp.MustCompile(`opensea\.io/assets/(0x[a-fA-F0-9]{40})/(\d+)`)
    chainLinkRe  = regexp.MustCompile(`opensea\.io/assets/([^/]+)/(0x[a-fA-F0-9]{40})/(\d+)`)
    collectionRe = regexp.MustCompile(`opensea\.io/collection/([A-Za-z0-9_-]+)`)
    pairRe       = regexp.MustCompile(`^(0x[a-fA-F0-9]{40})[\s/:#]+(\d+)$`)
)

// Resolver parses free-form dashboard input.
type Resolver struct{}

var _ service.IdentifierResolver = Resolver{}

func (Resolver) Resolve(input string) (models.Identifier, error) { return Parse(input) }

// Parse accepts marketplace deep links, collection links, "0x<addr> <id>" pairs and bare slugs.
// Anything else fails with models.ErrMalformedIdentifier.
func Parse(input string) (models.Identifier, error) {
    s := strings.TrimSpace(input)
    if s == "" {
        return models.Identifier{}, fmt.Errorf("%w: empty input", models.ErrMalformedIdentifier)
    }

    if m := ethLinkRe.FindStringSubmatch(s); m != nil {
        return token(DefaultChain, m[1], m[2]), nil
    }
    if m := legacyLinkRe.FindStringSubmatch(s); m != nil {
        return token(DefaultChain, m[1], m[2]), nil
    }
    if m := chainLinkRe.FindStringSubmatch(s); m != nil {
        return token(strings.ToLower(m[1]), m[2], m[3]), nil
    }
    if m := collectionRe.FindStringSubmatch(s); m != nil {
        return models.Identifier{Slug: strings.ToLower(m[1])}, nil
    }
    if m := pairRe.FindStringSubmatch(s); m != nil {
        return token(DefaultChain, m[1], m[2]), nil
    }
    if ValidAddress(s) {
        return models.Identifier{}, fmt.Errorf("%w: token id required", models.ErrMalformedIdentifier)
    }
    if strings.Contains(s, "opensea.io") {
        return models.Identifier{}, fmt.Errorf("%w: unsupported link %q", models.ErrMalformedIdentifier, s)
    }
    if slug := strings.ToLower(s); slugRe.MatchString(slug) && !strings.HasPrefix(slug, "0x") {
        return models.Identifier{Slug: slug}, nil
    }
    return models.Identifier{}, fmt.Errorf("%w: %q", models.ErrMalformedIdentifier, s)
}

// ParseRef validates an explicit contract/token pair.
func ParseRef(chain, contract, tokenID string) (models.NFTRef, error) {
    contract = strings.TrimSpace(contract)
    tokenID = strings.TrimSpace(tokenID)
    if !ValidAddress(contract) {
        return models.NFTRef{}, fmt.Errorf("%w: invalid contract address format", models.ErrMalformedIdentifier)
    }
    if !tokenRe.MatchString(tokenID) {
        return models.NFTRef{}, fmt.Errorf("%w: invalid token id %q", models.ErrMalformedIdentifier, tokenID)
    }
    if chain == "" {
        chain = DefaultChain
    }
    return models.NFTRef{Chain: strings.ToLower(chain), ContractAddress: contract, TokenID: tokenID}, nil
}

// ValidAddress reports whether s is a 0x-prefixed 40-hex-digit address.
func ValidAddress(s string) bool { return addressRe.MatchString(s) }

func token(chain, contract, id string) models.Identifier {
    return models.Identifier{NFT: &models.NFTRef{Chain: chain, ContractAddress: contract, TokenID: id}}
}
