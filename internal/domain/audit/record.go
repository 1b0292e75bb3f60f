package audit

// Item keys under which the record's sections and metadata are persisted.
// Each key maps to at most one stored entry per audit.
const (
	KeyFacilityInfrastructure = "facilityInfrastructure"
	KeyWasteStreams           = "wasteStreams"
	KeySpecialWaste           = "specialWaste"
	KeyOrganicWaste           = "organicWaste"
	KeyPreventionMeasures     = "preventionMeasures"
	KeyBehaviourTraining      = "behaviourTraining"

	KeyCompletedSections = "completedSections"
	KeyIsQuickMode       = "isQuickMode"
	KeyLastSaved         = "lastSaved"
	KeySyncStatus        = "syncStatus"
)

// SectionKeys lists the six section keys in their fixed declaration order.
var SectionKeys = []string{
	KeyFacilityInfrastructure,
	KeyWasteStreams,
	KeySpecialWaste,
	KeyOrganicWaste,
	KeyPreventionMeasures,
	KeyBehaviourTraining,
}

// SyncStatus describes a record's synchronization state with the client.
type SyncStatus string

const (
	SyncSynced  SyncStatus = "synced"
	SyncPending SyncStatus = "pending"
	SyncOffline SyncStatus = "offline"
)

// ValidSyncStatuses contains all valid sync status values.
var ValidSyncStatuses = []SyncStatus{SyncSynced, SyncPending, SyncOffline}

// BinType classifies a waste bin or a collected waste stream.
type BinType string

const (
	BinGeneral        BinType = "general"
	BinDryRecyclables BinType = "dry-recyclables"
	BinOrganic        BinType = "organic"
	BinGlass          BinType = "glass"
	BinHazardous      BinType = "hazardous"
)

// CompostingSystem describes the on-site composting arrangement.
type CompostingSystem string

const (
	CompostingNone     CompostingSystem = "none"
	CompostingHome     CompostingSystem = "home-compost"
	CompostingBrownBin CompostingSystem = "brown-bin"
	CompostingWormery  CompostingSystem = "wormery"
)

// MeasureStatus is the implementation state of a waste prevention measure.
type MeasureStatus string

const (
	MeasureFull           MeasureStatus = "full"
	MeasurePartial        MeasureStatus = "partial"
	MeasurePlanned        MeasureStatus = "planned"
	MeasureNotImplemented MeasureStatus = "not-implemented"
)

// Prevention measure names. The scoring engine evaluates exactly this fixed set.
const (
	MeasureReusableCups       = "reusable-cups"
	MeasureDoubleSidedPrint   = "double-sided-printing"
	MeasurePaperlessComms     = "paperless-communications"
	MeasureDonationScheme     = "donation-scheme"
	MeasureRepairCafe         = "repair-cafe"
	MeasureBulkPurchasing     = "bulk-purchasing"
	MeasureWaterRefillStation = "water-refill-stations"
	MeasureEventWastePlanning = "event-waste-planning"
)

// MeasureNames lists the eight prevention measures in scoring order.
var MeasureNames = []string{
	MeasureReusableCups,
	MeasureDoubleSidedPrint,
	MeasurePaperlessComms,
	MeasureDonationScheme,
	MeasureRepairCafe,
	MeasureBulkPurchasing,
	MeasureWaterRefillStation,
	MeasureEventWastePlanning,
}

// Bin is a single bin in the facility's inventory.
type Bin struct {
	Location       string  `json:"location"`
	BinType        BinType `json:"binType"`
	CapacityLitres float64 `json:"capacityLitres"`
	SignagePresent bool    `json:"signagePresent"`
	SignageQuality int     `json:"signageQuality"` // 1 (poor) to 5 (excellent); 0 = unrated
}

// FacilityInfrastructure covers the bin inventory and storage arrangements.
type FacilityInfrastructure struct {
	Bins                   []Bin  `json:"bins"`
	StorageAreaDescription string `json:"storageAreaDescription,omitempty"`
	CollectionPointCovered bool   `json:"collectionPointCovered"`
	Notes                  string `json:"notes,omitempty"`
}

// WasteStream is one assessed waste stream leaving the facility.
type WasteStream struct {
	StreamType                  BinType `json:"streamType"`
	Contractor                  string  `json:"contractor,omitempty"`
	CollectionFrequency         string  `json:"collectionFrequency,omitempty"`
	EstimatedWeeklyVolumeLitres float64 `json:"estimatedWeeklyVolumeLitres"`
	ContaminationLevel          int     `json:"contaminationLevel"` // 1 (clean) to 5 (severe); 0 = unassessed
	AnnualCostEuros             float64 `json:"annualCostEuros"`
}

// WasteStreams is the waste streams assessment section.
type WasteStreams struct {
	Streams []WasteStream `json:"streams"`
	Notes   string        `json:"notes,omitempty"`
}

// SpecialWaste covers hazardous and other special waste arrangements.
type SpecialWaste struct {
	WEEECollection      bool   `json:"weeeCollection"` // WEEE collection arrangement in place
	WEEEContractor      string `json:"weeeContractor,omitempty"`
	BatteryRecycling    bool   `json:"batteryRecycling"`
	ChemicalsStoredSafe bool   `json:"chemicalsStoredSafe"`
	PaintDisposalRoute  string `json:"paintDisposalRoute,omitempty"`
	Notes               string `json:"notes,omitempty"`
}

// OrganicWaste covers the kitchen and composting arrangements.
type OrganicWaste struct {
	HasKitchen           bool             `json:"hasKitchen"`
	CompostingSystem     CompostingSystem `json:"compostingSystem"`
	FoodWasteSeparated   bool             `json:"foodWasteSeparated"`
	GardenWasteComposted bool             `json:"gardenWasteComposted"`
	Notes                string           `json:"notes,omitempty"`
}

// PreventionMeasures records the implementation status of the fixed measure set.
// Keys are measure names; measures absent from the map score zero.
type PreventionMeasures struct {
	Statuses map[string]MeasureStatus `json:"statuses"`
	Notes    string                   `json:"notes,omitempty"`
}

// BehaviourTraining covers staff engagement and monitoring practices.
type BehaviourTraining struct {
	WasteChampionAppointed      bool   `json:"wasteChampionAppointed"`
	ChampionName                string `json:"championName,omitempty"`
	StaffTrainingDelivered      bool   `json:"staffTrainingDelivered"`
	EducationMaterialsDisplayed bool   `json:"educationMaterialsDisplayed"`
	MonitoringFrequency         string `json:"monitoringFrequency,omitempty"` // never, monthly, termly, weekly
	Notes                       string `json:"notes,omitempty"`
}

// Record is the reconstructed in-memory audit record, one per audit ID.
// Nil section pointers mean the section has not been saved (or failed to
// decode). Metadata pointers distinguish "unset" from zero values.
type Record struct {
	FacilityInfrastructure *FacilityInfrastructure `json:"facilityInfrastructure,omitempty"`
	WasteStreams           *WasteStreams           `json:"wasteStreams,omitempty"`
	SpecialWaste           *SpecialWaste           `json:"specialWaste,omitempty"`
	OrganicWaste           *OrganicWaste           `json:"organicWaste,omitempty"`
	PreventionMeasures     *PreventionMeasures     `json:"preventionMeasures,omitempty"`
	BehaviourTraining      *BehaviourTraining      `json:"behaviourTraining,omitempty"`

	CompletedSections *int       `json:"completedSections,omitempty"` // 0..6, advisory
	IsQuickMode       *bool      `json:"isQuickMode,omitempty"`
	LastSaved         string     `json:"lastSaved,omitempty"` // RFC 3339, assigned by the store
	SyncStatus        SyncStatus `json:"syncStatus,omitempty"`
}

// IsEmpty reports whether the record carries no sections and no metadata.
func (r Record) IsEmpty() bool {
	return r.FacilityInfrastructure == nil &&
		r.WasteStreams == nil &&
		r.SpecialWaste == nil &&
		r.OrganicWaste == nil &&
		r.PreventionMeasures == nil &&
		r.BehaviourTraining == nil &&
		r.CompletedSections == nil &&
		r.IsQuickMode == nil &&
		r.SyncStatus == ""
}
