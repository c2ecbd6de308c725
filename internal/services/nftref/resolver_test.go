package nftref

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "NFTCast/internal/domain/models"
)

const addr = "0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D"

func TestParse(t *testing.T) {
    tests := []struct {
        name  string
        input string
        want  models.Identifier
    }{
        {"ethereum link", "https://opensea.io/assets/ethereum/" + addr + "/1234", token("ethereum", addr, "1234")},
        {"legacy link", "https://opensea.io/assets/" + addr + "/7", token("ethereum", addr, "7")},
        {"chain link", "https://opensea.io/assets/Matic/" + addr + "/99?tab=offers", token("matic", addr, "99")},
        {"collection link", "https://opensea.io/collection/Bored-Ape-Yacht-Club", models.Identifier{Slug: "bored-ape-yacht-club"}},
        {"pair with space", "  " + addr + " 42 ", token("ethereum", addr, "42")},
        {"pair with slash", addr + "/42", token("ethereum", addr, "42")},
        {"bare slug", "azuki", models.Identifier{Slug: "azuki"}},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            got, err := Parse(tt.input)
            require.NoError(t, err)
            assert.Equal(t, tt.want, got)
        })
    }
}

func TestParseMalformed(t *testing.T) {
    for _, in := range []string{
        "",
        "   ",
        "https://opensea.io/assets/ethereum/0x123/1",
        "https://opensea.io/account/someone",
        addr,
        "0xZZ4CA0EdA7647A8aB7C2061c2E118A18a936f13D 1",
        "bored ape",
        "x",
    } {
        _, err := Parse(in)
        assert.ErrorIs(t, err, models.ErrMalformedIdentifier, in)
    }
}

func TestParseRef(t *testing.T) {
    ref, err := ParseRef("", addr, " 5 ")
    require.NoError(t, err)
    assert.Equal(t, models.NFTRef{Chain: "ethereum", ContractAddress: addr, TokenID: "5"}, ref)

    _, err = ParseRef("ethereum", "0x1234", "5")
    assert.ErrorIs(t, err, models.ErrMalformedIdentifier)

    _, err = ParseRef("ethereum", addr, "five")
    assert.ErrorIs(t, err, models.ErrMalformedIdentifier)
}

func TestIdentifierKinds(t *testing.T) {
    id, err := Resolver{}.Resolve("azuki")
    require.NoError(t, err)
    assert.True(t, id.IsCollection())

    id, err = Resolver{}.Resolve(addr + " 1")
    require.NoError(t, err)
    assert.False(t, id.IsCollection())
}
