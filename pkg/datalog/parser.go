// Package datalog evaluates conjunctive triple-pattern queries such as
//
//	triples(?c, <http://www.w3.org/2000/01/rdf-schema#subClassOf>, ?d), ?c != ?d
//
// against a graph. Terms are variables (?x or a capitalised name) or
// N-Triples constants: <iri>, "literal", _:blank; 'text' is a plain literal
// and the bare word a stands for rdf:type.
package datalog

import (
	"fmt"
	"strings"
)

// Atom represents a single unit in a query (e.g., triples(S, P, O) or neq(A, B)).
type Atom struct {
	Predicate string
	Args      []string
}

// Parse parses a query string which may contain multiple atoms.
// It supports 'triples', the constraints 'neq' and 'regex', and the sugar A != B.
func Parse(query string) ([]Atom, error) {
	query = strings.TrimSpace(query)
	// Handle "Head :- Body" syntax by taking Body (ignore Head as it's just the Goal)
	if idx := strings.Index(query, ":-"); idx != -1 {
		query = query[idx+2:]
	}
	query = strings.TrimSpace(query)
	query = strings.TrimSuffix(query, ".")

	rawAtoms := SmartSplit(query)
	if len(rawAtoms) == 0 {
		return nil, fmt.Errorf("empty query")
	}

	var parsedAtoms []Atom
	for _, raw := range rawAtoms {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		// Handle syntactic sugar: A != B
		if !strings.Contains(raw, "(") && strings.Contains(raw, "!=") {
			parts := strings.SplitN(raw, "!=", 2)
			lhs := strings.TrimSpace(parts[0])
			rhs := strings.TrimSpace(parts[1])
			if lhs == "" || rhs == "" {
				return nil, fmt.Errorf("invalid inequality format: %s", raw)
			}
			parsedAtoms = append(parsedAtoms, Atom{
				Predicate: "neq",
				Args:      []string{lhs, rhs},
			})
			continue
		}

		pred, args, err := parseAtomString(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse atom '%s': %w", raw, err)
		}
		parsedAtoms = append(parsedAtoms, Atom{
			Predicate: pred,
			Args:      args,
		})
	}
	if len(parsedAtoms) == 0 {
		return nil, fmt.Errorf("empty query")
	}

	return parsedAtoms, nil
}

// parseAtomString parses "predicate(arg1, arg2, ...)". Arguments are kept
// verbatim apart from surrounding whitespace.
func parseAtomString(s string) (string, []string, error) {
	s = strings.TrimSpace(s)
	start := strings.Index(s, "(")
	end := strings.LastIndex(s, ")")

	if start == -1 || end == -1 || start >= end || end != len(s)-1 {
		return "", nil, fmt.Errorf("expected format 'predicate(args...)' but got '%s'", s)
	}

	predicate := strings.TrimSpace(s[:start])
	if predicate == "" {
		return "", nil, fmt.Errorf("missing predicate in '%s'", s)
	}
	return predicate, SmartSplit(s[start+1 : end]), nil
}

// SmartSplit splits a string by comma, correctly handling quotes, IRIs and
// parentheses.
// e.g. "a, b, 'c,d'" -> ["a", "b", "'c,d'"]
func SmartSplit(s string) []string {
	var results []string
	var current strings.Builder
	depth := 0
	inQuote := false
	inIRI := false
	var quoteChar rune

	for _, r := range s {
		switch {
		case inIRI:
			if r == '>' {
				inIRI = false
			}
		case r == '"' || r == '\'':
			if inQuote {
				if r == quoteChar {
					inQuote = false // Close quote
				}
			} else {
				inQuote = true
				quoteChar = r
			}
		case inQuote:
		case r == '<':
			inIRI = true
		case r == '(':
			depth++
		case r == ')':
			depth--
		case r == ',' && depth == 0:
			results = append(results, strings.TrimSpace(current.String()))
			current.Reset()
			continue
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		results = append(results, strings.TrimSpace(current.String()))
	}
	return results
}
