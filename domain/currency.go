package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// BTC is the base currency of every rate the node publishes
const BTC = "BTC"

const pairSeparator = "_"

// ErrMalformedPair is returned for pair symbols that are not BASE_COUNTER
var ErrMalformedPair = errors.New("malformed currency pair")

// CurrencyPair is a base/counter pair. A price is counter units per one base unit.
type CurrencyPair struct {
	Base    string
	Counter string
}

// ParseCurrencyPair splits a symbol like "BTC_LTC" into its base and counter codes
func ParseCurrencyPair(symbol string) (CurrencyPair, error) {
	parts := strings.Split(symbol, pairSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return CurrencyPair{}, fmt.Errorf("%w: %q", ErrMalformedPair, symbol)
	}

	return CurrencyPair{Base: parts[0], Counter: parts[1]}, nil
}

func (p CurrencyPair) String() string {
	return p.Base + pairSeparator + p.Counter
}

// CurrencySet is a read-only set of currency codes. Build it once with
// NewCurrencySet and share it freely.
type CurrencySet struct {
	codes map[string]struct{}
}

// NewCurrencySet creates a set from the given codes, upper-cased and trimmed.
// Empty codes are ignored.
func NewCurrencySet(codes ...string) CurrencySet {
	set := CurrencySet{codes: make(map[string]struct{}, len(codes))}

	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		set.codes[code] = struct{}{}
	}

	return set
}

// Contains reports whether code is in the set
func (s CurrencySet) Contains(code string) bool {
	_, ok := s.codes[code]
	return ok
}

// Len returns the number of codes in the set
func (s CurrencySet) Len() int {
	return len(s.codes)
}

// Codes returns the codes in sorted order
func (s CurrencySet) Codes() []string {
	codes := make([]string, 0, len(s.codes))
	for code := range s.codes {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	return codes
}
