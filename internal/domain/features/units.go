package features

import "fmt"

// Creatinine units accepted from the input collaborator. Models are trained
// on mg/dL.
const (
	UnitMgDL  = "mg/dL"
	UnitUmolL = "umol/L"
)

// CreatinineUmolPerMgDL converts serum creatinine between µmol/L and mg/dL.
// A value entered in µmol/L is divided by this factor before it reaches a
// model (44.21 µmol/L == 0.5 mg/dL).
const CreatinineUmolPerMgDL = 88.42

// DaysPerMonth scales follow-up intervals entered in months to the day axis
// the models were trained on. 30.4 is the calendar-average month; every
// conversion goes through this one constant.
const DaysPerMonth = 30.4

// CreatinineToMgDL converts a serum creatinine value from the given unit to
// mg/dL.
func CreatinineToMgDL(value float64, unit string) (float64, error) {
	switch unit {
	case "", UnitMgDL:
		return value, nil
	case UnitUmolL:
		return value / CreatinineUmolPerMgDL, nil
	default:
		return 0, fmt.Errorf("unknown creatinine unit %q", unit)
	}
}

// CreatinineFromMgDL converts a canonical mg/dL creatinine value back to the
// given unit, for echoing inputs in responses.
func CreatinineFromMgDL(value float64, unit string) (float64, error) {
	switch unit {
	case "", UnitMgDL:
		return value, nil
	case UnitUmolL:
		return value * CreatinineUmolPerMgDL, nil
	default:
		return 0, fmt.Errorf("unknown creatinine unit %q", unit)
	}
}

// MonthsToDays converts a follow-up interval from months to days.
func MonthsToDays(months float64) float64 {
	return months * DaysPerMonth
}
