package validation

// Validation rule bounds
var (
	// Placement years the catalog accepts
	YearMin = 1900
	YearMax = 2100

	// Row identifiers start at 1
	IDMin int64 = 1
)

// Numeric validation
type NumericValidation struct {
	Value int64
	Min   int64
	Max   int64
	// HasMax enables the upper bound; Min is always checked.
	HasMax bool
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation(value int64) *NumericValidation {
	return &NumericValidation{Value: value}
}

// WithMin sets minimum value
func (v *NumericValidation) WithMin(min int64) *NumericValidation {
	v.Min = min
	return v
}

// WithMax sets maximum value
func (v *NumericValidation) WithMax(max int64) *NumericValidation {
	v.Max = max
	v.HasMax = true
	return v
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	if v.Value < v.Min {
		return false
	}
	if v.HasMax && v.Value > v.Max {
		return false
	}
	return true
}

// ValidYear reports whether year is a plausible placement year
func ValidYear(year int) bool {
	return NewNumericValidation(int64(year)).
		WithMin(int64(YearMin)).
		WithMax(int64(YearMax)).
		Validate()
}

// ValidID reports whether id can name a stored row
func ValidID(id int64) bool {
	return NewNumericValidation(id).WithMin(IDMin).Validate()
}
