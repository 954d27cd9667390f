package pricing

import (
    "regexp"
    "sort"
    "strconv"
    "strings"

    "haulquote/internal/tables"
)

// ZoneMatch is a resolved pricing zone and the service levels it offers.
type ZoneMatch struct {
    Zone     string
    Services []string
}

// Match priorities, most specific first. A postcode is checked against every
// compiled rule in (priority, dataset order), so a "GU (REST)" catch-all can
// never shadow "GU26-35" regardless of how the rows were ordered on disk.
const (
    prioRange = iota // base letters + inclusive numeric range, e.g. GU26-35
    prioPlus         // base letters + open-ended lower bound, e.g. PA20+
    prioExact        // bare letter prefix, e.g. CO
    prioRest         // catch-all for a letter prefix, e.g. GU (REST)
)

type zoneRule struct {
    prio     int
    base     string // leading letters
    lo, hi   int    // numeric bounds; hi unused for prioPlus
    zone     string
    services []string
}

var (
    rangePrefixRe = regexp.MustCompile(`^([A-Z]{1,2})(\d+)-(\d+)$`)
    plusPrefixRe  = regexp.MustCompile(`^([A-Z]{1,2})(\d+)\+$`)
    restPrefixRe  = regexp.MustCompile(`^([A-Z]{1,2})\s*\(REST\)$`)
    exactPrefixRe = regexp.MustCompile(`^[A-Z]{1,2}$`)
    leadLettersRe = regexp.MustCompile(`^[A-Z]{1,2}`)
    inwardRe      = regexp.MustCompile(`\d[A-Z]{2}$`)
)

// ZoneResolver maps normalized postcodes to zones. Rules are compiled once
// from the zone dataset and immutable afterwards.
type ZoneResolver struct {
    rules []zoneRule
}

// NewZoneResolver compiles the zone dataset into the priority-ordered rule
// list. Unparseable prefix patterns are dropped.
func NewZoneResolver(t *tables.Tables) *ZoneResolver {
    rules := make([]zoneRule, 0, len(t.Zones))
    for _, row := range t.Zones {
        prefix := strings.ToUpper(strings.TrimSpace(row.Prefix))
        r := zoneRule{zone: row.Zone, services: row.Services}
        switch {
        case rangePrefixRe.MatchString(prefix):
            m := rangePrefixRe.FindStringSubmatch(prefix)
            r.prio, r.base = prioRange, m[1]
            r.lo, _ = strconv.Atoi(m[2])
            r.hi, _ = strconv.Atoi(m[3])
        case plusPrefixRe.MatchString(prefix):
            m := plusPrefixRe.FindStringSubmatch(prefix)
            r.prio, r.base = prioPlus, m[1]
            r.lo, _ = strconv.Atoi(m[2])
        case restPrefixRe.MatchString(prefix):
            m := restPrefixRe.FindStringSubmatch(prefix)
            r.prio, r.base = prioRest, m[1]
        case exactPrefixRe.MatchString(prefix):
            r.prio, r.base = prioExact, prefix
        default:
            continue
        }
        rules = append(rules, r)
    }
    // Stable: dataset order breaks ties within a priority class.
    sort.SliceStable(rules, func(i, j int) bool { return rules[i].prio < rules[j].prio })
    return &ZoneResolver{rules: rules}
}

// Resolve maps a postcode to its zone and available service levels.
// Deterministic: same postcode, same table, same answer.
func (z *ZoneResolver) Resolve(postcode string) (ZoneMatch, bool) {
    clean := strings.ToUpper(strings.ReplaceAll(postcode, " ", ""))
    letters := leadLettersRe.FindString(clean)
    if letters == "" {
        return ZoneMatch{}, false
    }
    num, hasNum := districtNumber(clean, letters)

    for _, r := range z.rules {
        if r.base != letters { continue }
        switch r.prio {
        case prioRange:
            if hasNum && num >= r.lo && num <= r.hi {
                return ZoneMatch{Zone: r.zone, Services: r.services}, true
            }
        case prioPlus:
            if hasNum && num >= r.lo {
                return ZoneMatch{Zone: r.zone, Services: r.services}, true
            }
        case prioExact, prioRest:
            return ZoneMatch{Zone: r.zone, Services: r.services}, true
        }
    }
    return ZoneMatch{}, false
}

// Rules exposes the compiled rule list for diagnostics (GET /v1/zones).
func (z *ZoneResolver) Rules() []ZoneRuleInfo {
    out := make([]ZoneRuleInfo, 0, len(z.rules))
    for _, r := range z.rules {
        out = append(out, ZoneRuleInfo{
            Kind:     ruleKind(r.prio),
            Base:     r.base,
            Low:      r.lo,
            High:     r.hi,
            Zone:     r.zone,
            Services: r.services,
        })
    }
    return out
}

// ZoneRuleInfo is a read-only view of one compiled zone rule.
type ZoneRuleInfo struct {
    Kind     string   `json:"kind"`
    Base     string   `json:"base"`
    Low      int      `json:"low,omitempty"`
    High     int      `json:"high,omitempty"`
    Zone     string   `json:"zone"`
    Services []string `json:"services"`
}

func ruleKind(prio int) string {
    switch prio {
    case prioRange: return "range"
    case prioPlus: return "plus"
    case prioExact: return "exact"
    default: return "rest"
    }
}

// districtNumber extracts the outward district number: strip the inward code
// (digit + two letters) when present, then parse the digits after the letter
// prefix. "CO77AB" -> 7, "M901QX" -> 90, "GU264PX" -> 26.
func districtNumber(clean, letters string) (int, bool) {
    outward := clean
    if loc := inwardRe.FindStringIndex(clean); loc != nil && loc[0] > len(letters) {
        outward = clean[:loc[0]]
    }
    digits := outward[len(letters):]
    i := 0
    for i < len(digits) && digits[i] >= '0' && digits[i] <= '9' { i++ }
    if i == 0 {
        return 0, false
    }
    n, err := strconv.Atoi(digits[:i])
    if err != nil {
        return 0, false
    }
    return n, true
}
