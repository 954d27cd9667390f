package pricing

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestResolvePostcodeFullPattern(t *testing.T) {
    m, ok := ResolvePostcode("Unit 3, Severalls Park, CO4 9TD, Colchester")
    require.True(t, ok)
    assert.Equal(t, "CO4 9TD", m.Postcode)
    assert.False(t, m.Approximate)
}

func TestResolvePostcodeCaseInsensitive(t *testing.T) {
    m, ok := ResolvePostcode("warehouse 7, gu26 6hx")
    require.True(t, ok)
    assert.Equal(t, "GU26 6HX", m.Postcode)
}

func TestResolvePostcodeNoSpace(t *testing.T) {
    m, ok := ResolvePostcode("depot M901QX Manchester")
    require.True(t, ok)
    assert.Equal(t, "M901QX", m.Postcode)
}

func TestResolvePostcodeBarePrefixSampled(t *testing.T) {
    for addr, want := range map[string]string{
        "CO7": "CO7 7AB",
        "CO1": "CO1 1AB",
        "BH2": "BH1 1AB",
        "B1":  "B1 1AB",
    } {
        m, ok := ResolvePostcode(addr)
        require.True(t, ok, addr)
        assert.Equal(t, want, m.Postcode, addr)
        assert.True(t, m.Approximate, addr)
    }
}

func TestResolvePostcodeBarePrefixSynthesized(t *testing.T) {
    m, ok := ResolvePostcode("ZE1")
    require.True(t, ok)
    assert.Equal(t, "ZE1 1AB", m.Postcode)
    assert.True(t, m.Approximate)
}

func TestResolvePostcodeAirportCode(t *testing.T) {
    m, ok := ResolvePostcode("LHR cargo terminal 4")
    require.True(t, ok)
    assert.Equal(t, "TW6 1EW", m.Postcode)
    assert.False(t, m.Approximate)
}

func TestResolvePostcodeLocationName(t *testing.T) {
    m, ok := ResolvePostcode("Freight village, Birmingham Airport")
    require.True(t, ok)
    assert.Equal(t, "B26 3QJ", m.Postcode)
}

func TestResolvePostcodeUnresolvable(t *testing.T) {
    for _, addr := range []string{"", "   ", "somewhere up north", "123456"} {
        _, ok := ResolvePostcode(addr)
        assert.False(t, ok, "%q should not resolve", addr)
    }
}
