package fsdoc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Quantity_String(t *testing.T) {
	t.Run("should render meters without rescaling", func(t *testing.T) {
		q := Quantity{Magnitude: 0.1414213562373095, Units: []UnitPower{{Meter, 1}}}

		assert.Equal(t, "0.14 meter", q.String())
	})

	t.Run("should pass other units through", func(t *testing.T) {
		q := Quantity{Magnitude: 0.1414213562373095, Units: []UnitPower{{Millimeter, 3}}}

		assert.Equal(t, "0.14 millimeter ** 3", q.String())
	})

	t.Run("should render a dimensionless value", func(t *testing.T) {
		assert.Equal(t, "2.0 dimensionless", Quantity{Magnitude: 2}.String())
	})
}

func Test_FormatQuantity(t *testing.T) {
	m := func(e int) []UnitPower { return []UnitPower{{Meter, e}} }

	tests := []struct {
		name      string
		magnitude float64
		units     []UnitPower
		want      string
	}{
		{"length in centimeters", 0.641, m(1), "64.1 cm"},
		{"integral centimeters keep a decimal", 0.2, m(1), "20.0 cm"},
		{"small length in centimeters", 0.0222, m(1), "2.22 cm"},
		{"length in millimeters", 0.0012, m(1), "1.2 mm"},
		{"length in meters", 3.5, m(1), "3.5 m"},
		{"length in kilometers", 12346, m(1), "12.35 km"},
		{"area in square meters", 2, m(2), "2.0 m ** 2"},
		{"area in square centimeters", 0.0015, m(2), "15.0 cm ** 2"},
		{"area in square millimeters", 0.000004, m(2), "4.0 mm ** 2"},
		{"area in square kilometers", 3e6, m(2), "3.0 km ** 2"},
		{"volume in liters", 0.05, m(3), "50.0 l"},
		{"volume in milliliters", 0.00002, m(3), "20.0 ml"},
		{"volume in kiloliters", 4, m(3), "4.0 kl"},
		{"zero length is not rescaled", 0, m(1), "0.0 m"},
		{"negative length is not rescaled", -0.5, m(1), "-0.5 m"},
		{"non-meter length passes through", 0.1414, []UnitPower{{Millimeter, 3}}, "0.14 mm ** 3"},
		{"flow rate rescales its volume term", 0.0035, []UnitPower{{Meter, 3}, {Second, -1}}, "3.5 l / s"},
		{"velocity rescales its length term", 0.0123, []UnitPower{{Meter, 1}, {Second, -1}}, "1.23 cm / s"},
		{"inverse time passes through", 2, []UnitPower{{Second, -1}}, "2.0 1 / s"},
		{"plain number", 13, nil, "13.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatQuantity(tt.magnitude, tt.units))
		})
	}
}

func Test_Formatter_Format(t *testing.T) {
	t.Run("should rescale with long names", func(t *testing.T) {
		f := Formatter{Normalize: true}

		assert.Equal(t, "64.1 centimeter", f.Format(0.641, []UnitPower{{Meter, 1}}))
	})

	t.Run("should cancel opposite exponents", func(t *testing.T) {
		f := Formatter{Abbreviate: true}

		assert.Equal(t, "0.5", f.Format(0.5, []UnitPower{{Meter, 1}, {Meter, -1}}))
	})
}

func Test_formatPyFloat(t *testing.T) {
	tests := map[float64]string{
		13:          "13.0",
		0.5:         "0.5",
		-2:          "-2.0",
		0:           "0.0",
		1e-05:       "1e-05",
		1e16:        "1e+16",
		123456.789:  "123456.789",
		math.Inf(1): "inf",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatPyFloat(in), "%v", in)
	}
	assert.Equal(t, "nan", formatPyFloat(math.NaN()))
}
