package fsdoc

import (
	"errors"
	"strings"
	"testing"
)

func Test_Validator_Should_Accept_Matching_Quantity(t *testing.T) {
	reg := NewValidatorRegistry()
	if err := reg.RegisterRegex("W.Et", `^\d+(\.\d+)? cm$`, "a length in centimeters"); err != nil {
		t.Fatalf("unexpected error registering pattern: %v", err)
	}

	if err := reg.ValidateVariables(Variables{"W.Et": "64.1 cm"}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func Test_Validator_Should_Check_List_Items(t *testing.T) {
	reg := NewValidatorRegistry()
	if err := reg.RegisterRegex("H.LfomOrifices", `^\d+(\.\d+)? cm$`, "centimeters"); err != nil {
		t.Fatal(err)
	}

	err := reg.ValidateVariables(Variables{"H.LfomOrifices": []any{"2.22 cm", "7.41 mm"}})
	if err == nil {
		t.Fatal("expected error for the millimeter item, got nil")
	}

	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if valErr.Variable != "H.LfomOrifices" {
		t.Errorf("expected variable 'H.LfomOrifices', got %q", valErr.Variable)
	}
	if !strings.Contains(err.Error(), "['2.22 cm', '7.41 mm']") {
		t.Errorf("expected the list to be printed in the message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "centimeters") {
		t.Errorf("expected the description in the message, got %q", err.Error())
	}
}

func Test_Validator_Should_Match_Numbers_As_Floats(t *testing.T) {
	reg := NewValidatorRegistry()
	if err := reg.RegisterRegex("N", `^\d+\.0$`, "a whole number"); err != nil {
		t.Fatal(err)
	}

	if err := reg.ValidateVariables(Variables{"N": 13.0}); err != nil {
		t.Fatalf("expected 13.0 to match, got: %v", err)
	}
}

func Test_Validator_Should_Report_Missing_Required_Variable(t *testing.T) {
	reg := NewValidatorRegistry()
	reg.Require("W.Et", "HL.Lfom")

	err := reg.ValidateVariables(Variables{"W.Et": "64.1 cm"})

	var missing *MissingVariableError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingVariableError, got %T: %v", err, err)
	}
	if missing.Variable != "HL.Lfom" {
		t.Errorf("expected variable 'HL.Lfom', got %q", missing.Variable)
	}
}

func Test_Validator_Should_Skip_Absent_Optional_Variables(t *testing.T) {
	reg := NewValidatorRegistry()
	reg.RegisterFunc("W.Et", func(string, any) error { return errors.New("should not run") })

	if err := reg.ValidateVariables(Variables{}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func Test_Validator_Should_Report_First_Failure_By_Name(t *testing.T) {
	reg := NewValidatorRegistry()
	fail := func(name string, value any) error { return NewValidationError(name, value, "rejected") }
	reg.RegisterFunc("b", fail)
	reg.RegisterFunc("a", fail)

	err := reg.ValidateVariables(Variables{"a": 1.0, "b": 2.0})

	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if valErr.Variable != "a" {
		t.Errorf("expected the first failure to be 'a', got %q", valErr.Variable)
	}
}

func Test_Validator_Should_Run_Every_Validator_Of_A_Variable(t *testing.T) {
	reg := NewValidatorRegistry()
	var calls int
	reg.RegisterFunc("x", func(string, any) error { calls++; return nil })
	reg.RegisterFunc("x", func(string, any) error { calls++; return nil })
	reg.Register("x", nil)

	if err := reg.ValidateVariables(Variables{"x": "y"}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 validator calls, got %d", calls)
	}
}

func Test_Validator_Should_Reject_Invalid_Pattern(t *testing.T) {
	reg := NewValidatorRegistry()

	err := reg.RegisterRegex("x", `([`, "broken")

	if err == nil {
		t.Fatal("expected error for invalid pattern, got nil")
	}
	if !strings.Contains(err.Error(), "invalid regex pattern for variable x") {
		t.Errorf("unexpected error message: %v", err)
	}
}
