package pricing

import (
    "regexp"
    "strings"
)

// PostcodeMatch is a resolved pickup postcode. Approximate marks results
// synthesized from a bare district prefix (sampled or filler-suffixed) so
// callers can tell resolved-exact from resolved-heuristic.
type PostcodeMatch struct {
    Postcode    string
    Approximate bool
}

var (
    fullPostcodeRe = regexp.MustCompile(`(?i)[A-Z]{1,2}\d[A-Z\d]?\s*\d[A-Z]{2}`)
    barePrefixRe   = regexp.MustCompile(`^[A-Z]{1,2}\d{1,2}[A-Z]?$`)
)

// samplePostcodes maps common district prefixes to a representative postcode.
// Checked in order; longer prefixes first so "CO7" beats "CO".
var samplePostcodes = []struct{ prefix, postcode string }{
    {"CO7", "CO7 7AB"},
    {"CO", "CO1 1AB"},
    {"BHX", "B26 3QJ"},
    {"BH", "BH1 1AB"},
    {"AB", "AB1 1AB"},
    {"B", "B1 1AB"},
}

// airportPostcodes maps IATA-style codes embedded in an address to the
// airport's postcode. Slice, not map: scan order must be deterministic.
var airportPostcodes = []struct{ code, postcode string }{
    {"BHX", "B26 3QJ"},  // Birmingham
    {"LHR", "TW6 1EW"},  // Heathrow
    {"LGW", "RH6 0NP"},  // Gatwick
    {"MAN", "M90 1QX"},  // Manchester
    {"STN", "CM24 1RW"}, // Stansted
    {"EDI", "EH12 9DN"}, // Edinburgh
    {"GLA", "PA3 2SW"},  // Glasgow
    {"CO7", "CO7 7AB"},  // Colchester area
}

var locationPostcodes = []struct{ name, postcode string }{
    {"BIRMINGHAM AIRPORT", "B26 3QJ"},
    {"HEATHROW AIRPORT", "TW6 1EW"},
    {"GATWICK AIRPORT", "RH6 0NP"},
    {"MANCHESTER AIRPORT", "M90 1QX"},
    {"STANSTED AIRPORT", "CM24 1RW"},
    {"EDINBURGH AIRPORT", "EH12 9DN"},
    {"GLASGOW AIRPORT", "PA3 2SW"},
    {"COLCHESTER", "CO1 1AB"},
}

// ResolvePostcode extracts a UK postcode from a free-text address. Pure
// function over the fixed mapping tables; first rule that matches wins:
//  1. standard postcode pattern anywhere in the text
//  2. the whole address is a bare district prefix -> sampled, or synthesized
//     with a filler suffix (both flagged Approximate)
//  3. known airport IATA code embedded in the text
//  4. known airport/location name
func ResolvePostcode(address string) (PostcodeMatch, bool) {
    if strings.TrimSpace(address) == "" {
        return PostcodeMatch{}, false
    }
    if m := fullPostcodeRe.FindString(address); m != "" {
        return PostcodeMatch{Postcode: strings.ToUpper(m)}, true
    }

    upper := strings.ToUpper(strings.TrimSpace(address))
    if barePrefixRe.MatchString(upper) {
        for _, s := range samplePostcodes {
            if strings.HasPrefix(upper, s.prefix) {
                return PostcodeMatch{Postcode: s.postcode, Approximate: true}, true
            }
        }
        // No sample known: synthesize a plausible inward code. Low confidence,
        // hence Approximate.
        return PostcodeMatch{Postcode: upper + " 1AB", Approximate: true}, true
    }

    for _, a := range airportPostcodes {
        if strings.Contains(upper, a.code) {
            return PostcodeMatch{Postcode: a.postcode}, true
        }
    }
    for _, l := range locationPostcodes {
        if strings.Contains(upper, l.name) {
            return PostcodeMatch{Postcode: l.postcode}, true
        }
    }
    return PostcodeMatch{}, false
}
