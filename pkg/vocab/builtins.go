package vocab

import "strings"

var builtinClasses = map[string]bool{
	OWLThing:   true,
	OWLNothing: true,
}

var builtinObjectProperties = map[string]bool{
	OWLTopObjectProperty:    true,
	OWLBottomObjectProperty: true,
}

var builtinDataProperties = map[string]bool{
	OWLTopDataProperty:    true,
	OWLBottomDataProperty: true,
}

var builtinAnnotationProperties = map[string]bool{
	RDFSLabel:                 true,
	RDFSComment:               true,
	RDFSSeeAlso:               true,
	RDFSIsDefinedBy:           true,
	OWLVersionInfo:            true,
	OWLDeprecated:             true,
	OWLPriorVersion:           true,
	OWLBackwardCompatibleWith: true,
	OWLIncompatibleWith:       true,
}

var builtinDatatypes = map[string]bool{
	RDFSLiteral:     true,
	RDFPlainLiteral: true,
	RDFLangString:   true,
	RDFXMLLiteral:   true,
	OWLRational:     true,
	OWLReal:         true,
}

var facets = map[string]bool{
	XSDMinInclusive: true,
	XSDMaxInclusive: true,
	XSDMinExclusive: true,
	XSDMaxExclusive: true,
	XSDLength:       true,
	XSDMinLength:    true,
	XSDMaxLength:    true,
	XSDPattern:      true,
}

// IsBuiltinClass reports whether iri is owl:Thing or owl:Nothing.
func IsBuiltinClass(iri string) bool { return builtinClasses[iri] }

// IsBuiltinObjectProperty reports whether iri is the top or bottom object property.
func IsBuiltinObjectProperty(iri string) bool { return builtinObjectProperties[iri] }

// IsBuiltinDataProperty reports whether iri is the top or bottom data property.
func IsBuiltinDataProperty(iri string) bool { return builtinDataProperties[iri] }

// IsBuiltinAnnotationProperty reports whether iri is one of the annotation
// properties every OWL 2 ontology may use without declaring it.
func IsBuiltinAnnotationProperty(iri string) bool { return builtinAnnotationProperties[iri] }

// IsBuiltinDatatype reports whether iri is an XSD datatype or one of the
// RDF/RDFS/OWL datatypes of the OWL 2 datatype map.
func IsBuiltinDatatype(iri string) bool {
	if builtinDatatypes[iri] {
		return true
	}
	return strings.HasPrefix(iri, XSD) && !facets[iri]
}

// IsFacet reports whether iri is a constraining facet usable in datatype restrictions.
func IsFacet(iri string) bool { return facets[iri] }

// IsReserved reports whether iri belongs to one of the reserved vocabularies.
// Reserved terms never denote user entities, with the exception of the
// built-ins above.
func IsReserved(iri string) bool {
	for _, ns := range []string{RDF, RDFS, OWL, XSD, SWRL} {
		if strings.HasPrefix(iri, ns) {
			return true
		}
	}
	return false
}
