package tracing

// Span attribute keys.
const (
	AttrFormat     = "sbol.format"
	AttrPath       = "sbol.path"
	AttrTriples    = "sbol.triples"
	AttrObjects    = "sbol.objects"
	AttrDefinition = "sbol.definition"
	AttrParts      = "sbol.parts"

	AttrErrorCode = "error.code"
)

// Span names.
const (
	SpanWrite    = "sbol.write"
	SpanRead     = "sbol.read"
	SpanAssemble = "sbol.assemble"
	SpanSequence = "sbol.update_sequence"
)
