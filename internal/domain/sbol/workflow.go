package sbol

import (
	"fmt"

	"github.com/nroehner/libSBOL/internal/domain/sbolerr"
)

// Model points at an external computational model.
type Model struct {
	*Object
	Source    URIProperty
	Language  URIProperty
	Framework URIProperty
}

func newModel(o *Object) Entity {
	return &Model{
		Object:    o,
		Source:    uriProperty(o, PropSource),
		Language:  uriProperty(o, PropLanguage),
		Framework: uriProperty(o, PropFramework),
	}
}

// ModuleDefinition groups the functional description of a design.
type ModuleDefinition struct {
	*Object
	Roles  URIProperty
	Models URIProperty
}

func newModuleDefinition(o *Object) Entity {
	return &ModuleDefinition{
		Object: o,
		Roles:  uriProperty(o, PropRoles),
		Models: uriProperty(o, PropModels),
	}
}

// Implementation records a physical realization of a design.
type Implementation struct {
	*Object
	Built ReferencedObject
}

func implementationOf(o *Object) *Implementation {
	return &Implementation{Object: o, Built: referencedObject(o, PropBuilt, TypeComponentDefinition)}
}

func newImplementation(o *Object) Entity { return implementationOf(o) }

// Build is the workflow name for an Implementation; it is filed under KeyBuild.
type Build struct {
	*Implementation
}

func newBuild(o *Object) Entity { return &Build{Implementation: implementationOf(o)} }

// Collection groups references to other top-levels.
type Collection struct {
	*Object
	Members URIProperty
}

func collectionOf(o *Object) *Collection {
	return &Collection{Object: o, Members: uriProperty(o, PropMembers)}
}

func newCollection(o *Object) Entity { return collectionOf(o) }

// Test is the workflow name for a Collection of experimental data; it is filed under KeyTest.
type Test struct {
	*Collection
}

func newTest(o *Object) Entity { return &Test{Collection: collectionOf(o)} }

// Design pairs a structural and a functional description. Both references are resolved when the
// design is fetched with Get.
type Design struct {
	*Object
	Structure ReferencedObject
	Function  ReferencedObject

	structure *ComponentDefinition
	function  *ModuleDefinition
}

func newDesign(o *Object) Entity {
	return &Design{
		Object:    o,
		Structure: referencedObject(o, PropStructure, TypeComponentDefinition),
		Function:  referencedObject(o, PropFunction, TypeModuleDefinition),
	}
}

// StructureDefinition returns the resolved structure, or nil before resolution or when unset.
func (d *Design) StructureDefinition() *ComponentDefinition { return d.structure }

// FunctionDefinition returns the resolved function, or nil before resolution or when unset.
func (d *Design) FunctionDefinition() *ModuleDefinition { return d.function }

func (d *Design) deferredRefs() []ReferencedObject {
	return []ReferencedObject{d.Structure, d.Function}
}

func (d *Design) bindResolved(resolved []Entity) {
	d.structure, _ = at(resolved, 0).(*ComponentDefinition)
	d.function, _ = at(resolved, 1).(*ModuleDefinition)
}

// Analysis links a Test's raw data with the Model fitted to it.
type Analysis struct {
	*Object
	RawData   ReferencedObject
	DataModel ReferencedObject

	rawData   *Test
	dataModel *Model
}

func newAnalysis(o *Object) Entity {
	return &Analysis{
		Object:    o,
		RawData:   referencedObject(o, PropRawData, KeyTest),
		DataModel: referencedObject(o, PropDataModel, TypeModel),
	}
}

// Test returns the resolved raw data, or nil.
func (a *Analysis) Test() *Test { return a.rawData }

// Model returns the resolved data model, or nil.
func (a *Analysis) Model() *Model { return a.dataModel }

func (a *Analysis) deferredRefs() []ReferencedObject {
	return []ReferencedObject{a.RawData, a.DataModel}
}

func (a *Analysis) bindResolved(resolved []Entity) {
	a.rawData, _ = at(resolved, 0).(*Test)
	a.dataModel, _ = at(resolved, 1).(*Model)
}

func at(list []Entity, i int) Entity {
	if i >= len(list) {
		return nil
	}
	return list[i]
}

// Activity is a provenance record of one workflow step.
type Activity struct {
	*Object
	StartedAtTime DateTimeProperty
	EndedAtTime   DateTimeProperty
	Types         URIProperty
	Usages        *OwnedObjects[*Usage]
}

func newActivity(o *Object) Entity {
	a := &Activity{
		Object:        o,
		StartedAtTime: dateTimeProperty(o, PropStartedAtTime),
		EndedAtTime:   dateTimeProperty(o, PropEndedAtTime),
		Types:         uriProperty(o, PropTypes),
	}
	a.Usages = ownedObjects[*Usage](o, PropQualifiedUsage, TypeUsage)
	return a
}

// Use records that the activity consumed entity in the given role, e.g. RoleDesign.
func (a *Activity) Use(displayID, entity, role string) (*Usage, error) {
	if entity == "" || role == "" {
		return nil, a.env.fail("Activity.Use", fmt.Errorf("%w: a usage needs an entity and a role", sbolerr.ErrInvalidArgument))
	}
	u, err := a.Usages.Create(displayID)
	if err != nil || u == nil {
		return nil, err
	}
	if err := u.EntityRef.Set(entity); err != nil {
		return nil, err
	}
	if err := u.Roles.Add(role); err != nil {
		return nil, err
	}
	return u, nil
}

// Usage is a qualified reference from an Activity to an entity it used.
type Usage struct {
	*Object
	EntityRef URIProperty
	Roles     URIProperty
}

func newUsage(o *Object) Entity {
	return &Usage{
		Object:    o,
		EntityRef: uriProperty(o, PropEntity),
		Roles:     uriProperty(o, PropHadRole),
	}
}
