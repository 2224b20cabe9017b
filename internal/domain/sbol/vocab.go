package sbol

// Namespaces
const (
	SBOLNamespace   = "http://sbols.org/v2"
	PROVNamespace   = "http://www.w3.org/ns/prov"
	PURLNamespace   = "http://purl.org/dc/terms/"
	SysBioNamespace = "http://sys-bio.org"
	RDFNamespace    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
)

// RDFType is the predicate carrying an object's type tag on the wire.
const RDFType = RDFNamespace + "type"

// Class IRIs
const (
	TypeComponentDefinition = SBOLNamespace + "#ComponentDefinition"
	TypeComponent           = SBOLNamespace + "#Component"
	TypeSequenceConstraint  = SBOLNamespace + "#SequenceConstraint"
	TypeSequence            = SBOLNamespace + "#Sequence"
	TypeModel               = SBOLNamespace + "#Model"
	TypeModuleDefinition    = SBOLNamespace + "#ModuleDefinition"
	TypeImplementation      = SBOLNamespace + "#Implementation"
	TypeCollection          = SBOLNamespace + "#Collection"
	TypeActivity            = PROVNamespace + "#Activity"
	TypeUsage               = PROVNamespace + "#Usage"
	TypeDesign              = SysBioNamespace + "#Design"
	TypeAnalysis            = SysBioNamespace + "#Analysis"

	// Build and Test share the wire type of Implementation and Collection; these IRIs are only
	// their collection keys.
	KeyBuild = SysBioNamespace + "#Build"
	KeyTest  = SysBioNamespace + "#Test"
)

// Identified properties
const (
	PropIdentity           = SBOLNamespace + "#identity"
	PropPersistentIdentity = SBOLNamespace + "#persistentIdentity"
	PropDisplayID          = SBOLNamespace + "#displayId"
	PropVersion            = SBOLNamespace + "#version"
	PropWasDerivedFrom     = PROVNamespace + "#wasDerivedFrom"
	PropName               = PURLNamespace + "title"
	PropDescription        = PURLNamespace + "description"
)

// Structural properties and owned-collection keys
const (
	PropTypes               = SBOLNamespace + "#type"
	PropRoles               = SBOLNamespace + "#role"
	PropSequence            = SBOLNamespace + "#sequence"
	PropComponents          = SBOLNamespace + "#component"
	PropSequenceConstraints = SBOLNamespace + "#sequenceConstraint"
	PropDefinition          = SBOLNamespace + "#definition"
	PropAccess              = SBOLNamespace + "#access"
	PropSubject             = SBOLNamespace + "#subject"
	PropObject              = SBOLNamespace + "#object"
	PropRestriction         = SBOLNamespace + "#restriction"
	PropElements            = SBOLNamespace + "#elements"
	PropEncoding            = SBOLNamespace + "#encoding"
	PropSource              = SBOLNamespace + "#source"
	PropLanguage            = SBOLNamespace + "#language"
	PropFramework           = SBOLNamespace + "#framework"
	PropMembers             = SBOLNamespace + "#member"
	PropModels              = SBOLNamespace + "#model"
	PropBuilt               = SBOLNamespace + "#built"
)

// Workflow properties
const (
	PropStructure      = SysBioNamespace + "#_structure"
	PropFunction       = SysBioNamespace + "#_function"
	PropRawData        = SysBioNamespace + "#rawData"
	PropDataModel      = SysBioNamespace + "#dataModel"
	PropStartedAtTime  = PROVNamespace + "#startedAtTime"
	PropEndedAtTime    = PROVNamespace + "#endedAtTime"
	PropQualifiedUsage = PROVNamespace + "#qualifiedUsage"
	PropEntity         = PROVNamespace + "#entity"
	PropHadRole        = PROVNamespace + "#hadRole"

	// PropSysBioType marks the collection key of an aliased object on the wire.
	PropSysBioType = SysBioNamespace + "#type"
)

// Vocabulary values
const (
	RestrictionPrecedes = SBOLNamespace + "#precedes"
	AccessPublic        = SBOLNamespace + "#public"
	AccessPrivate       = SBOLNamespace + "#private"

	EncodingIUPACDNA = "http://www.chem.qmul.ac.uk/iubmb/misc/naseq.html"
	TypeDNARegion    = "http://www.biopax.org/release/biopax-level3.owl#DnaRegion"

	RoleDesign = SBOLNamespace + "#design"
	RoleBuild  = SBOLNamespace + "#build"
	RoleTest   = SBOLNamespace + "#test"
	RoleLearn  = SBOLNamespace + "#learn"
)
