package fsdoc

import (
	"math"
	"strconv"
	"strings"
)

// Unit is a FeatureScript unit key such as "METER".
type Unit string

const (
	Meter      Unit = "METER"
	Centimeter Unit = "CENTIMETER"
	Millimeter Unit = "MILLIMETER"
	Kilometer  Unit = "KILOMETER"
	Inch       Unit = "INCH"
	Foot       Unit = "FOOT"
	Yard       Unit = "YARD"
	Kilogram   Unit = "KILOGRAM"
	Gram       Unit = "GRAM"
	Pound      Unit = "POUND"
	Ounce      Unit = "OUNCE"
	Second     Unit = "SECOND"
	Minute     Unit = "MINUTE"
	Hour       Unit = "HOUR"
	Radian     Unit = "RADIAN"
	Degree     Unit = "DEGREE"
	Liter      Unit = "LITER"
	Kiloliter  Unit = "KILOLITER"
	Milliliter Unit = "MILLILITER"
)

var unitSymbols = map[Unit]string{
	Meter:      "m",
	Centimeter: "cm",
	Millimeter: "mm",
	Kilometer:  "km",
	Inch:       "in",
	Foot:       "ft",
	Yard:       "yd",
	Kilogram:   "kg",
	Gram:       "g",
	Pound:      "lb",
	Ounce:      "oz",
	Second:     "s",
	Minute:     "min",
	Hour:       "h",
	Radian:     "rad",
	Degree:     "deg",
	Liter:      "l",
	Kiloliter:  "kl",
	Milliliter: "ml",
}

// Name returns the long unit name ("meter").
func (u Unit) Name() string {
	return strings.ToLower(string(u))
}

// Symbol returns the abbreviated unit name ("m"). Keys without a known
// abbreviation fall back to the long name.
func (u Unit) Symbol() string {
	if s, ok := unitSymbols[u]; ok {
		return s
	}
	return u.Name()
}

// UnitPower is one unit raised to an integer exponent.
type UnitPower struct {
	Unit     Unit
	Exponent int
}

// Quantity is a magnitude with an ordered list of unit powers.
type Quantity struct {
	Magnitude float64
	Units     []UnitPower
}

// String renders q without rescaling, using long unit names:
// "0.14 millimeter ** 3".
func (q Quantity) String() string {
	return Formatter{}.Format(q.Magnitude, q.Units)
}

// FormatQuantity renders a quantity in its natural unit scale with
// abbreviated units, e.g. 0.641 meter becomes "64.1 cm".
func FormatQuantity(magnitude float64, units []UnitPower) string {
	return Formatter{Normalize: true, Abbreviate: true}.Format(magnitude, units)
}

// Formatter renders quantities. Normalize enables rescaling of pure length,
// area, and volume quantities into a unit matching their magnitude.
type Formatter struct {
	Normalize  bool
	Abbreviate bool
}

// Format multiplies the unit powers in order and renders the result rounded
// to two decimals.
func (f Formatter) Format(magnitude float64, units []UnitPower) string {
	value := magnitude
	var acc []UnitPower
	for _, up := range units {
		acc = mulUnit(acc, up)
		if !f.Normalize || up.Unit != Meter || up.Exponent < 1 || up.Exponent > 3 {
			continue
		}
		if len(acc) != 1 || acc[0] != up {
			continue
		}
		log, ok := floorLog10(value)
		if !ok {
			continue
		}
		value, acc = rescaleMeter(value, up.Exponent, log)
	}

	s := formatPyFloat(roundTo(value, 2))
	if u := f.unitString(acc); u != "" {
		s += " " + u
	}
	return s
}

func mulUnit(acc []UnitPower, up UnitPower) []UnitPower {
	for i := range acc {
		if acc[i].Unit == up.Unit {
			acc[i].Exponent += up.Exponent
			if acc[i].Exponent == 0 {
				acc = append(acc[:i], acc[i+1:]...)
			}
			return acc
		}
	}
	if up.Exponent == 0 {
		return acc
	}
	return append(acc, up)
}

// rescaleMeter converts a pure meter^exp value using the floor of its
// decimal logarithm.
func rescaleMeter(value float64, exp, log int) (float64, []UnitPower) {
	pow := func(u Unit, e int) []UnitPower { return []UnitPower{{Unit: u, Exponent: e}} }
	switch exp {
	case 1:
		switch {
		case log >= 3:
			return value / 1e3, pow(Kilometer, 1)
		case log >= -2 && log <= -1:
			return value * 1e2, pow(Centimeter, 1)
		case log <= -3:
			return value * 1e3, pow(Millimeter, 1)
		}
	case 2:
		switch {
		case log >= 6:
			return value / 1e6, pow(Kilometer, 2)
		case log >= -4 && log <= -1:
			return value * 1e4, pow(Centimeter, 2)
		case log <= -5:
			return value * 1e6, pow(Millimeter, 2)
		}
	case 3:
		// one cubic meter is a thousand liters
		log += 3
		switch {
		case log >= 3:
			return value, pow(Kiloliter, 1)
		case log <= -1:
			return value * 1e6, pow(Milliliter, 1)
		default:
			return value * 1e3, pow(Liter, 1)
		}
	}
	return value, pow(Meter, exp)
}

func floorLog10(v float64) (int, bool) {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return int(math.Floor(math.Log10(v))), true
}

func (f Formatter) unitString(units []UnitPower) string {
	name := func(u Unit) string {
		if f.Abbreviate {
			return u.Symbol()
		}
		return u.Name()
	}
	term := func(u Unit, e int) string {
		if e == 1 {
			return name(u)
		}
		return name(u) + " ** " + strconv.Itoa(e)
	}

	var num, den []string
	for _, up := range units {
		switch {
		case up.Exponent > 0:
			num = append(num, term(up.Unit, up.Exponent))
		case up.Exponent < 0:
			den = append(den, term(up.Unit, -up.Exponent))
		}
	}
	switch {
	case len(num) == 0 && len(den) == 0:
		if f.Abbreviate {
			return ""
		}
		return "dimensionless"
	case len(num) == 0:
		return "1 / " + strings.Join(den, " / ")
	case len(den) == 0:
		return strings.Join(num, " * ")
	}
	return strings.Join(num, " * ") + " / " + strings.Join(den, " / ")
}

func roundTo(v float64, places int) float64 {
	s := strconv.FormatFloat(v, 'f', places, 64)
	r, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return v
	}
	return r
}

// formatPyFloat prints v the way Python's repr does: shortest round-trip
// digits, always with a decimal point or exponent.
func formatPyFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
