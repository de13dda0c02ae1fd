package translate

// Options tune how axioms are read from the graph.
type Options struct {
	// LoadAnnotationAxioms materializes annotation assertions and annotation
	// property axioms. When false those shapes read as empty.
	LoadAnnotationAxioms bool `yaml:"load_annotation_axioms"`

	// AllowBulkAnnotationAssertions reads annotation triples on declared
	// entities as separate annotation assertions. When false they are folded
	// into the annotations of the entity's declarations.
	AllowBulkAnnotationAssertions bool `yaml:"allow_bulk_annotation_assertions"`

	// IgnoreAnnotationAxiomOverlaps suppresses annotation property domain,
	// range and sub-property axioms whose property is also an object or data
	// property; the triple then reads only as the object or data axiom.
	IgnoreAnnotationAxiomOverlaps bool `yaml:"ignore_annotation_axiom_overlaps"`

	// AllowReadDeclarations reads declaration triples as axioms.
	AllowReadDeclarations bool `yaml:"allow_read_declarations"`

	// SplitAxiomAnnotations reads one axiom per owl:Axiom node instead of a
	// single axiom carrying the annotations of all of them.
	SplitAxiomAnnotations bool `yaml:"split_axiom_annotations"`

	// IgnoreAxiomReadErrors skips, with a warning, an axiom whose graph
	// fragment has an unsupported shape instead of failing the whole load.
	// Recursive structures always fail.
	IgnoreAxiomReadErrors bool `yaml:"ignore_axiom_read_errors"`
}

// DefaultOptions returns the default read options.
func DefaultOptions() Options {
	return Options{
		LoadAnnotationAxioms:          true,
		AllowBulkAnnotationAssertions: true,
		IgnoreAnnotationAxiomOverlaps: true,
		AllowReadDeclarations:         true,
	}
}
