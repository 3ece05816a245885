package domain

// CountryName holds the common and official spellings of a country name in a
// single locale.
type CountryName struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

// Country is one record of the world-country dataset. Translations are keyed
// by locale code (e.g. "fra", "deu").
type Country struct {
	CCA2         string                 `json:"cca2"`
	Name         CountryName            `json:"name"`
	AltSpellings []string               `json:"altSpellings"`
	Translations map[string]CountryName `json:"translations"`
}

// Match strategies recorded in the resolver's audit log.
const (
	MatchStrategyDirect  = "direct"
	MatchStrategyFuzzy   = "fuzzy"
	MatchStrategyNoMatch = "no match"
)

// AuditKeyUnresolved is the audit-log key under which failed resolutions are
// collected. ISO codes are two uppercase letters, so it cannot collide.
const AuditKeyUnresolved = "unresolved"

// MatchRecord is one resolution attempt: the raw input, the name (or input)
// that decided the outcome, and the strategy that produced it.
type MatchRecord struct {
	Input      string `json:"input"`
	MatchedKey string `json:"matchedKey"`
	Strategy   string `json:"strategy"`
}
