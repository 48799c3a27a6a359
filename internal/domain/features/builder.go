package features

import "fmt"

// RawInputs is the field map handed over by the input-collection
// collaborator. Values carries every entered field; CreatinineUnit selects
// the unit creatinine was entered in ("" means mg/dL).
type RawInputs struct {
	Values         map[string]float64
	CreatinineUnit string
}

// Build validates raw inputs against an outcome schema and produces the
// model feature vector. Every schema field must be present and inside its
// declared domain; failures return a *FieldError and no vector.
func Build(schema Schema, raw RawInputs) (*FeatureVector, error) {
	vec := NewVector(len(schema.Fields))

	for _, f := range schema.Fields {
		value, ok := raw.Values[f.Name]
		if !ok {
			return nil, &FieldError{Field: f.Name, Reason: "required field is missing"}
		}

		if f.Choices != nil {
			if !contains(f.Choices, value) {
				return nil, &FieldError{
					Field:  f.Name,
					Reason: fmt.Sprintf("value %v is not one of the allowed choices %v", value, f.Choices),
				}
			}
		} else if value < f.Min || value > f.Max {
			return nil, &FieldError{
				Field:  f.Name,
				Reason: fmt.Sprintf("value %v is outside the allowed range [%v, %v]", value, f.Min, f.Max),
			}
		}

		switch f.Transform {
		case TransformCreatinine:
			converted, err := CreatinineToMgDL(value, raw.CreatinineUnit)
			if err != nil {
				return nil, &FieldError{Field: f.Name, Reason: err.Error()}
			}
			value = converted
		case TransformMonthsToDays:
			value = MonthsToDays(value)
		}

		vec.Set(f.Feature, value)
	}

	return vec, nil
}

func contains(choices []float64, v float64) bool {
	for _, c := range choices {
		if c == v {
			return true
		}
	}
	return false
}
