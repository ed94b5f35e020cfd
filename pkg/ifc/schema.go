package ifc

import "strings"

// Entity and relation names used by the extractor
const (
	TypeSpace                   = "IfcSpace"
	TypeDoor                    = "IfcDoor"
	TypeWindow                  = "IfcWindow"
	TypeRelSpaceBoundary        = "IfcRelSpaceBoundary"
	TypeRelVoidsElement         = "IfcRelVoidsElement"
	TypeRelFillsElement         = "IfcRelFillsElement"
	TypeRelDefinesByProperties  = "IfcRelDefinesByProperties"
	TypePropertySet             = "IfcPropertySet"
	TypePropertySingleValue     = "IfcPropertySingleValue"
	TypeSpatialStructureElement = "IfcSpatialStructureElement"
)

// Attribute positions shared by IFC2X3 and IFC4 for everything the extractor reads.
const (
	// IfcRoot
	attrGlobalID    = 0
	attrName        = 2
	attrDescription = 3
	// IfcObject
	attrObjectType = 4

	// IfcRelSpaceBoundary
	attrRelatingSpace          = 4
	attrRelatedBuildingElement = 5
	// IfcRelVoidsElement
	attrVoidsRelatingElement = 4
	attrVoidsRelatedOpening  = 5
	// IfcRelFillsElement
	attrFillsRelatingOpening = 4
	attrFillsRelatedElement  = 5
	// IfcRelDefinesByProperties
	attrDefinesRelatedObjects     = 4
	attrDefinesRelatingDefinition = 5

	// IfcPropertySet
	attrHasProperties = 4
	// IfcProperty
	attrPropertyName = 0
	// IfcPropertySingleValue
	attrNominalValue = 2
)

// longNameIndex maps entity types that expose LongName to its position.
var longNameIndex = map[string]int{
	"IfcSite":                   7,
	"IfcBuilding":               7,
	"IfcBuildingStorey":         7,
	"IfcSpace":                  7,
	"IfcSpatialZone":            7,
	"IfcExternalSpatialElement": 7,
	"IfcFacility":               7,
	"IfcFacilityPart":           7,
	"IfcBridge":                 7,
	"IfcBridgePart":             7,
	"IfcRoad":                   7,
	"IfcRoadPart":               7,
	"IfcRailway":                7,
	"IfcRailwayPart":            7,
	"IfcMarineFacility":         7,
	"IfcMarinePart":             7,
	"IfcZone":                   5,
}

// subtypes lists the direct subtypes of the supertypes ByType is asked about.
var subtypes = map[string][]string{
	"IfcRelSpaceBoundary":         {"IfcRelSpaceBoundary1stLevel"},
	"IfcRelSpaceBoundary1stLevel": {"IfcRelSpaceBoundary2ndLevel"},
	"IfcSpatialStructureElement":  {"IfcSite", "IfcBuilding", "IfcBuildingStorey", "IfcSpace"},
	"IfcWall":                     {"IfcWallStandardCase", "IfcWallElementedCase"},
	"IfcDoor":                     {"IfcDoorStandardCase"},
	"IfcWindow":                   {"IfcWindowStandardCase"},
	"IfcOpeningElement":           {"IfcOpeningStandardCase"},
	"IfcSlab":                     {"IfcSlabStandardCase", "IfcSlabElementedCase"},
	"IfcBeam":                     {"IfcBeamStandardCase"},
	"IfcColumn":                   {"IfcColumnStandardCase"},
	"IfcMember":                   {"IfcMemberStandardCase"},
	"IfcPlate":                    {"IfcPlateStandardCase"},
}

// knownTypes is the schema spelling of entity and defined-type names; STEP
// files store them upper-cased.
var knownTypes = buildTypeIndex(
	// spatial structure
	"IfcProject", "IfcSite", "IfcBuilding", "IfcBuildingStorey", "IfcSpace",
	"IfcSpatialZone", "IfcExternalSpatialElement", "IfcZone",
	"IfcFacility", "IfcFacilityPart", "IfcBridge", "IfcBridgePart", "IfcRoad", "IfcRoadPart",
	"IfcRailway", "IfcRailwayPart", "IfcMarineFacility", "IfcMarinePart",
	// building elements
	"IfcWall", "IfcWallStandardCase", "IfcWallElementedCase", "IfcCurtainWall",
	"IfcSlab", "IfcSlabStandardCase", "IfcSlabElementedCase", "IfcRoof",
	"IfcBeam", "IfcBeamStandardCase", "IfcColumn", "IfcColumnStandardCase",
	"IfcDoor", "IfcDoorStandardCase", "IfcWindow", "IfcWindowStandardCase",
	"IfcStair", "IfcStairFlight", "IfcRamp", "IfcRampFlight", "IfcRailing",
	"IfcCovering", "IfcPlate", "IfcPlateStandardCase", "IfcMember", "IfcMemberStandardCase",
	"IfcFooting", "IfcPile", "IfcChimney", "IfcShadingDevice",
	"IfcBuildingElementProxy", "IfcBuildingElementPart", "IfcElementAssembly",
	"IfcFurnishingElement", "IfcFurniture", "IfcSystemFurnitureElement",
	"IfcDistributionElement", "IfcFlowTerminal", "IfcFlowSegment", "IfcFlowFitting",
	"IfcVirtualElement", "IfcOpeningElement", "IfcOpeningStandardCase",
	// relationships
	"IfcRelSpaceBoundary", "IfcRelSpaceBoundary1stLevel", "IfcRelSpaceBoundary2ndLevel",
	"IfcRelVoidsElement", "IfcRelFillsElement", "IfcRelDefinesByProperties",
	"IfcRelDefinesByType", "IfcRelAggregates", "IfcRelContainedInSpatialStructure",
	"IfcRelAssociatesMaterial", "IfcRelConnectsPathElements",
	// properties
	"IfcPropertySet", "IfcPropertySingleValue", "IfcPropertyEnumeratedValue",
	"IfcPropertyBoundedValue", "IfcPropertyListValue", "IfcPropertyReferenceValue",
	"IfcPropertyTableValue", "IfcComplexProperty", "IfcElementQuantity",
	// defined types
	"IfcLabel", "IfcText", "IfcIdentifier", "IfcBoolean", "IfcLogical", "IfcInteger",
	"IfcReal", "IfcLengthMeasure", "IfcAreaMeasure", "IfcVolumeMeasure",
	"IfcPositiveLengthMeasure", "IfcCountMeasure", "IfcThermalTransmittanceMeasure",
	"IfcComplexNumber",
)

func buildTypeIndex(names ...string) map[string]string {
	index := make(map[string]string, len(names))
	for _, name := range names {
		index[strings.ToUpper(name)] = name
	}
	return index
}

// CanonicalType converts an upper-case STEP entity name to schema spelling.
// Names outside the built-in table get "Ifc" followed by the remainder in
// lower case, e.g. IFCFOOBAR becomes IfcFoobar.
func CanonicalType(stepName string) string {
	upper := strings.ToUpper(stepName)
	if name, ok := knownTypes[upper]; ok {
		return name
	}
	if strings.HasPrefix(upper, "IFC") && len(upper) > 3 {
		rest := strings.ToLower(upper[3:])
		return "Ifc" + strings.ToUpper(rest[:1]) + rest[1:]
	}
	return stepName
}

// IsSubtypeOf reports whether typ equals supertype or descends from it
// through the subtype table.
func IsSubtypeOf(typ, supertype string) bool {
	if typ == supertype {
		return true
	}
	for _, child := range subtypes[supertype] {
		if IsSubtypeOf(typ, child) {
			return true
		}
	}
	return false
}
