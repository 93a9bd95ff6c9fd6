package blocking

import (
	"fmt"
	"sort"
	"strings"

	"gazetteer/internal/compare"
	"gazetteer/internal/record"
)

// Kind selects how a predicate derives index keys from a field value.
type Kind string

const (
	// KindExact keys on the whole normalized field value.
	KindExact Kind = "exact"
	// KindToken keys on each whitespace-separated token.
	KindToken Kind = "token"
	// KindPrefix keys on the first four characters of the value.
	KindPrefix Kind = "prefix"
)

const prefixLength = 4

// Predicate derives blocking keys from one field of a record.
type Predicate struct {
	Field string `json:"field"`
	Kind  Kind   `json:"kind"`
}

func (p Predicate) String() string {
	return fmt.Sprintf("%s(%s)", p.Kind, p.Field)
}

// Keys returns the sorted, de-duplicated index keys the predicate derives
// from rec. A record missing the field yields no keys.
func (p Predicate) Keys(rec *record.Record) []string {
	value, ok := rec.Field(p.Field)
	if !ok {
		return nil
	}

	switch p.Kind {
	case KindExact:
		return []string{value}
	case KindPrefix:
		runes := []rune(value)
		if len(runes) > prefixLength {
			runes = runes[:prefixLength]
		}
		return []string{string(runes)}
	case KindToken:
		tokens := strings.Fields(value)
		seen := make(map[string]struct{}, len(tokens))
		keys := tokens[:0]
		for _, token := range tokens {
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			keys = append(keys, token)
		}
		sort.Strings(keys)
		return keys
	default:
		return nil
	}
}

// Covers reports whether the predicate puts both records of a pair into at
// least one common block.
func (p Predicate) Covers(a, b *record.Record) bool {
	left := p.Keys(a)
	if len(left) == 0 {
		return false
	}
	right := p.Keys(b)
	if len(right) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(left))
	for _, key := range left {
		set[key] = struct{}{}
	}
	for _, key := range right {
		if _, ok := set[key]; ok {
			return true
		}
	}
	return false
}

// AllPredicates enumerates every exact, token, and prefix predicate over the
// distinct field names of a comparator configuration, in a stable order.
func AllPredicates(fields []compare.Field) []Predicate {
	seen := make(map[string]struct{}, len(fields))
	var predicates []Predicate
	for _, field := range fields {
		if _, dup := seen[field.Name]; dup {
			continue
		}
		seen[field.Name] = struct{}{}
		for _, kind := range []Kind{KindExact, KindToken, KindPrefix} {
			predicates = append(predicates, Predicate{Field: field.Name, Kind: kind})
		}
	}
	return predicates
}
