package features

// Transform identifies a fixed derived-feature conversion applied to a raw
// input before it is placed in the vector.
type Transform int

const (
	TransformNone Transform = iota
	// TransformCreatinine converts the value to mg/dL using the unit
	// selected on the raw inputs.
	TransformCreatinine
	// TransformMonthsToDays scales a months interval to days.
	TransformMonthsToDays
)

// FieldSpec declares one raw input field and the model feature it feeds.
// Continuous fields use Min/Max; categorical fields enumerate Choices.
type FieldSpec struct {
	Name      string    `json:"name"`              // raw input key
	Feature   string    `json:"feature"`           // model feature name, exactly as the artifact expects
	Label     string    `json:"label"`             // human-readable description for the form collaborator
	Unit      string    `json:"unit,omitempty"`    // display unit, if any
	Min       float64   `json:"min"`               // continuous domain, inclusive
	Max       float64   `json:"max"`               // continuous domain, inclusive
	Choices   []float64 `json:"choices,omitempty"` // categorical domain; nil means continuous
	Transform Transform `json:"-"`
}

// Schema is the complete ordered input schema for one outcome model.
type Schema struct {
	Outcome string
	Fields  []FieldSpec
}

var yesNo = []float64{0, 1}

// survivalFields is the canonical four-feature schema of the published
// survival models (CKD, RRT, CIC).
var survivalFields = []FieldSpec{
	{
		Name:    "high_grade_vur",
		Feature: "Max VUR grade",
		Label:   "High-grade VUR (grade IV-V) on initial VCUG",
		Choices: yesNo,
	},
	{
		Name:      "nadir_creatinine",
		Feature:   "SNC1 (mg/dL)",
		Label:     "Serum nadir creatinine at first year of presentation",
		Unit:      UnitMgDL,
		Min:       0,
		Max:       1000,
		Transform: TransformCreatinine,
	},
	{
		Name:    "renal_dysplasia",
		Feature: "Antenatal/Postnatal renal dysplasia",
		Label:   "Renal dysplasia at presentation",
		Choices: yesNo,
	},
	{
		Name:    "baseline_egfr",
		Feature: "Baseline eGFR",
		Label:   "Baseline eGFR at one year, or at time of presentation",
		Unit:    "mL/min/1.73m²",
		Min:     0,
		Max:     1000,
	},
}

var schemas = map[string]Schema{
	OutcomeCKD: {Outcome: OutcomeCKD, Fields: survivalFields},
	OutcomeRRT: {Outcome: OutcomeRRT, Fields: survivalFields},
	OutcomeCIC: {Outcome: OutcomeCIC, Fields: survivalFields},
	OutcomeAnyProgression: {
		Outcome: OutcomeAnyProgression,
		Fields: []FieldSpec{
			{Name: "baseline_egfr", Feature: "Baseline eGFR", Label: "Baseline eGFR", Unit: "mL/min/1.73m²", Min: 0, Max: 1000},
			{Name: "oligohydramnios", Feature: "Antenatal oligohydramnios", Label: "Antenatal oligohydramnios", Choices: yesNo},
			{Name: "birth_weight", Feature: "Birth weight", Label: "Birth weight", Unit: "kg", Min: 0, Max: 50},
			{Name: "gestational_age", Feature: "Gestational age", Label: "Gestational age", Unit: "weeks", Min: 0, Max: 50},
			{Name: "renal_dysplasia", Feature: "Antenatal/Postnatal renal dysplasia", Label: "Antenatal/postnatal renal dysplasia", Choices: yesNo},
			{Name: "vur_grade", Feature: "Max VUR grade", Label: "Maximum VUR grade", Choices: []float64{0, 1, 2, 3, 4, 5}},
			{Name: "perinatal_aki", Feature: "Perinatal AKI", Label: "Perinatal AKI", Choices: yesNo},
		},
	},
	OutcomeEGFR12M: {
		Outcome: OutcomeEGFR12M,
		Fields: []FieldSpec{
			{Name: "baseline_egfr", Feature: "Baseline eGFR", Label: "Baseline eGFR", Unit: "mL/min/1.73m²", Min: 0, Max: 1000},
			{Name: "vur_grade", Feature: "Max VUR grade", Label: "Maximum VUR grade", Choices: []float64{0, 1, 2, 3, 4, 5}},
			{Name: "followup_months", Feature: "time from first follow-up", Label: "Time to next follow-up", Unit: "months", Min: 0, Max: 36, Transform: TransformMonthsToDays},
		},
	},
}

// SchemaFor returns the input schema for an outcome.
func SchemaFor(outcome string) (Schema, bool) {
	s, ok := schemas[outcome]
	return s, ok
}

// Outcomes lists all outcome ids with a declared schema, in presentation
// order.
func Outcomes() []string {
	return []string{OutcomeCKD, OutcomeRRT, OutcomeCIC, OutcomeAnyProgression, OutcomeEGFR12M}
}
