// Package vocab holds the RDF, RDFS, OWL 2, XSD and SWRL terms used by the
// graph mapping, plus tables of built-in entities that need no declaration.
package vocab

// Namespaces.
const (
	RDF   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS  = "http://www.w3.org/2000/01/rdf-schema#"
	OWL   = "http://www.w3.org/2002/07/owl#"
	XSD   = "http://www.w3.org/2001/XMLSchema#"
	SWRL  = "http://www.w3.org/2003/11/swrl#"
	SWRLB = "http://www.w3.org/2003/11/swrlb#"
)

// RDF terms.
const (
	RDFType         = RDF + "type"
	RDFFirst        = RDF + "first"
	RDFRest         = RDF + "rest"
	RDFNil          = RDF + "nil"
	RDFList         = RDF + "List"
	RDFPlainLiteral = RDF + "PlainLiteral"
	RDFLangString   = RDF + "langString"
	RDFXMLLiteral   = RDF + "XMLLiteral"
)

// RDFS terms.
const (
	RDFSClass         = RDFS + "Class"
	RDFSDatatype      = RDFS + "Datatype"
	RDFSLiteral       = RDFS + "Literal"
	RDFSSubClassOf    = RDFS + "subClassOf"
	RDFSSubPropertyOf = RDFS + "subPropertyOf"
	RDFSDomain        = RDFS + "domain"
	RDFSRange         = RDFS + "range"
	RDFSLabel         = RDFS + "label"
	RDFSComment       = RDFS + "comment"
	RDFSSeeAlso       = RDFS + "seeAlso"
	RDFSIsDefinedBy   = RDFS + "isDefinedBy"
)

// OWL entity and axiom-node types.
const (
	OWLClass                     = OWL + "Class"
	OWLRestriction               = OWL + "Restriction"
	OWLObjectProperty            = OWL + "ObjectProperty"
	OWLDatatypeProperty          = OWL + "DatatypeProperty"
	OWLAnnotationProperty        = OWL + "AnnotationProperty"
	OWLNamedIndividual           = OWL + "NamedIndividual"
	OWLOntology                  = OWL + "Ontology"
	OWLAxiom                     = OWL + "Axiom"
	OWLAnnotation                = OWL + "Annotation"
	OWLAllDisjointClasses        = OWL + "AllDisjointClasses"
	OWLAllDisjointProperties     = OWL + "AllDisjointProperties"
	OWLAllDifferent              = OWL + "AllDifferent"
	OWLNegativePropertyAssertion = OWL + "NegativePropertyAssertion"

	OWLFunctionalProperty        = OWL + "FunctionalProperty"
	OWLInverseFunctionalProperty = OWL + "InverseFunctionalProperty"
	OWLReflexiveProperty         = OWL + "ReflexiveProperty"
	OWLIrreflexiveProperty       = OWL + "IrreflexiveProperty"
	OWLSymmetricProperty         = OWL + "SymmetricProperty"
	OWLAsymmetricProperty        = OWL + "AsymmetricProperty"
	OWLTransitiveProperty        = OWL + "TransitiveProperty"
)

// OWL predicates.
const (
	OWLEquivalentClass         = OWL + "equivalentClass"
	OWLDisjointWith            = OWL + "disjointWith"
	OWLDisjointUnionOf         = OWL + "disjointUnionOf"
	OWLEquivalentProperty      = OWL + "equivalentProperty"
	OWLPropertyDisjointWith    = OWL + "propertyDisjointWith"
	OWLInverseOf               = OWL + "inverseOf"
	OWLPropertyChainAxiom      = OWL + "propertyChainAxiom"
	OWLHasKey                  = OWL + "hasKey"
	OWLSameAs                  = OWL + "sameAs"
	OWLDifferentFrom           = OWL + "differentFrom"
	OWLMembers                 = OWL + "members"
	OWLDistinctMembers         = OWL + "distinctMembers"
	OWLSourceIndividual        = OWL + "sourceIndividual"
	OWLAssertionProperty       = OWL + "assertionProperty"
	OWLTargetIndividual        = OWL + "targetIndividual"
	OWLTargetValue             = OWL + "targetValue"
	OWLAnnotatedSource         = OWL + "annotatedSource"
	OWLAnnotatedProperty       = OWL + "annotatedProperty"
	OWLAnnotatedTarget         = OWL + "annotatedTarget"
	OWLIntersectionOf          = OWL + "intersectionOf"
	OWLUnionOf                 = OWL + "unionOf"
	OWLComplementOf            = OWL + "complementOf"
	OWLDatatypeComplementOf    = OWL + "datatypeComplementOf"
	OWLOneOf                   = OWL + "oneOf"
	OWLOnProperty              = OWL + "onProperty"
	OWLOnClass                 = OWL + "onClass"
	OWLOnDataRange             = OWL + "onDataRange"
	OWLOnDatatype              = OWL + "onDatatype"
	OWLWithRestrictions        = OWL + "withRestrictions"
	OWLSomeValuesFrom          = OWL + "someValuesFrom"
	OWLAllValuesFrom           = OWL + "allValuesFrom"
	OWLHasValue                = OWL + "hasValue"
	OWLHasSelf                 = OWL + "hasSelf"
	OWLMinCardinality          = OWL + "minCardinality"
	OWLMaxCardinality          = OWL + "maxCardinality"
	OWLCardinality             = OWL + "cardinality"
	OWLMinQualifiedCardinality = OWL + "minQualifiedCardinality"
	OWLMaxQualifiedCardinality = OWL + "maxQualifiedCardinality"
	OWLQualifiedCardinality    = OWL + "qualifiedCardinality"
)

// Built-in OWL entities.
const (
	OWLThing                  = OWL + "Thing"
	OWLNothing                = OWL + "Nothing"
	OWLTopObjectProperty      = OWL + "topObjectProperty"
	OWLBottomObjectProperty   = OWL + "bottomObjectProperty"
	OWLTopDataProperty        = OWL + "topDataProperty"
	OWLBottomDataProperty     = OWL + "bottomDataProperty"
	OWLVersionInfo            = OWL + "versionInfo"
	OWLDeprecated             = OWL + "deprecated"
	OWLPriorVersion           = OWL + "priorVersion"
	OWLBackwardCompatibleWith = OWL + "backwardCompatibleWith"
	OWLIncompatibleWith       = OWL + "incompatibleWith"
	OWLRational               = OWL + "rational"
	OWLReal                   = OWL + "real"
)

// XSD datatypes and facets.
const (
	XSDString             = XSD + "string"
	XSDBoolean            = XSD + "boolean"
	XSDDecimal            = XSD + "decimal"
	XSDInteger            = XSD + "integer"
	XSDNonNegativeInteger = XSD + "nonNegativeInteger"
	XSDInt                = XSD + "int"
	XSDLong               = XSD + "long"
	XSDDouble             = XSD + "double"
	XSDFloat              = XSD + "float"
	XSDDateTime           = XSD + "dateTime"
	XSDAnyURI             = XSD + "anyURI"

	XSDMinInclusive = XSD + "minInclusive"
	XSDMaxInclusive = XSD + "maxInclusive"
	XSDMinExclusive = XSD + "minExclusive"
	XSDMaxExclusive = XSD + "maxExclusive"
	XSDLength       = XSD + "length"
	XSDMinLength    = XSD + "minLength"
	XSDMaxLength    = XSD + "maxLength"
	XSDPattern      = XSD + "pattern"
)

// SWRL terms.
const (
	SWRLImp                      = SWRL + "Imp"
	SWRLVariable                 = SWRL + "Variable"
	SWRLAtomList                 = SWRL + "AtomList"
	SWRLBody                     = SWRL + "body"
	SWRLHead                     = SWRL + "head"
	SWRLClassAtom                = SWRL + "ClassAtom"
	SWRLDataRangeAtom            = SWRL + "DataRangeAtom"
	SWRLIndividualPropertyAtom   = SWRL + "IndividualPropertyAtom"
	SWRLDatavaluedPropertyAtom   = SWRL + "DatavaluedPropertyAtom"
	SWRLBuiltinAtom              = SWRL + "BuiltinAtom"
	SWRLSameIndividualAtom       = SWRL + "SameIndividualAtom"
	SWRLDifferentIndividualsAtom = SWRL + "DifferentIndividualsAtom"
	SWRLClassPredicate           = SWRL + "classPredicate"
	SWRLPropertyPredicate        = SWRL + "propertyPredicate"
	SWRLDataRange                = SWRL + "dataRange"
	SWRLBuiltin                  = SWRL + "builtin"
	SWRLArguments                = SWRL + "arguments"
	SWRLArgument1                = SWRL + "argument1"
	SWRLArgument2                = SWRL + "argument2"
)
