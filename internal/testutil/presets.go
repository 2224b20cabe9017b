package testutil

// Standard part elements used by WithExpressionCassette.
const (
	PromoterElements   = "ttgacagctagctcagtcctaggtataatgctagc"
	RBSElements        = "aaagaggagaaa"
	CDSElements        = "atggctagcaaaggagaagaactttt"
	TerminatorElements = "ccaggcatcaaataaaacgaaaggctcagtcgaaagactgggcctttcgttttat"
)

// WithExpressionCassette adds the leaf parts promoter, rbs, cds and terminator, and the
// composite cassette assembled from them in that order.
func (b *Builder) WithExpressionCassette() *Builder {
	b.t.Helper()
	return b.
		WithPart("promoter", PromoterElements).
		WithPart("rbs", RBSElements).
		WithPart("cds", CDSElements).
		WithPart("terminator", TerminatorElements).
		WithComposite("cassette", "promoter", "rbs", "cds", "terminator")
}

// CassetteElements is the composed sequence of WithExpressionCassette.
const CassetteElements = PromoterElements + RBSElements + CDSElements + TerminatorElements

// WithTwoLevelHierarchy adds leaves a (AAA), b (TTT), c (GGG), the composite ab of a and b, and
// the composite abc of ab and c.
func (b *Builder) WithTwoLevelHierarchy() *Builder {
	b.t.Helper()
	return b.
		WithPart("a", "AAA").
		WithPart("b", "TTT").
		WithPart("c", "GGG").
		WithComposite("ab", "a", "b").
		WithComposite("abc", "ab", "c")
}
