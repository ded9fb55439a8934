package flow

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLiteralJSONRoundTrip(t *testing.T) {
	cases := []Literal{Null(), Bool(true), Bool(false), Int(-104), Float(3.5), Str("hi")}
	for _, l := range cases {
		data, err := json.Marshal(l)
		if err != nil {
			t.Fatalf("marshal %v: %v", l, err)
		}
		var out Literal
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if out.Kind() != l.Kind() || out.String() != l.String() {
			t.Errorf("round trip mismatch: %v -> %s -> %v", l, data, out)
		}
	}
}

func TestBinaryArithmeticPromotion(t *testing.T) {
	// (a-6)*~b with a=32, b=3 -> -104
	a := Int(32)
	b := Int(3)
	sub, err := EvaluateBinary(BinarySubtract, a, Int(6))
	if err != nil {
		t.Fatal(err)
	}
	notB, err := EvaluateUnary(UnaryBitwiseNot, b)
	if err != nil {
		t.Fatal(err)
	}
	result, err := EvaluateBinary(BinaryMultiply, sub, notB)
	if err != nil {
		t.Fatal(err)
	}
	if result.Kind() != KindInteger || result.rawInt() != -104 {
		t.Fatalf("want Integer(-104), got %v", result)
	}
}

func TestComparisonModuloBoolean(t *testing.T) {
	// 9 % a >= 6 with a=5 -> false
	a := Int(5)
	mod, err := EvaluateBinary(BinaryModulo, Int(9), a)
	if err != nil {
		t.Fatal(err)
	}
	cmpResult, err := EvaluateComparator(ComparatorGreaterThanOrEqual, mod, Int(6))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := cmpResult.Boolean()
	if b {
		t.Fatalf("want false, got true")
	}
}

func TestBooleanConversionTable(t *testing.T) {
	tests := []struct {
		in   Literal
		want bool
	}{
		{Null(), false},
		{Bool(true), true},
		{Int(0), false},
		{Int(5), true},
		{Float(0), false},
		{Float(1.2), true},
		{Str(""), false},
		{Str("x"), true},
	}
	for _, tc := range tests {
		got, err := tc.in.Boolean()
		if err != nil {
			t.Fatalf("%v: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("%v.Boolean() = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNonNullIntegerRejectsNull(t *testing.T) {
	if _, err := Null().NonNullInteger(); err == nil {
		t.Fatal("expected conversion error for null -> non-null integer")
	}
}

func TestBitwiseRequiresIntegerOrBoolean(t *testing.T) {
	if _, err := EvaluateBinary(BinaryBitwiseAnd, Float(1.0), Int(2)); err == nil {
		t.Fatal("expected type error for float bitwise-and")
	}
	got, err := EvaluateBinary(BinaryBitwiseAnd, Bool(true), Int(1))
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind() != KindInteger || got.rawInt() != 1 {
		t.Fatalf("want Integer(1), got %v", got)
	}
}

func TestStringMultiplyRepeat(t *testing.T) {
	got, err := EvaluateBinary(BinaryMultiply, Str("ab"), Int(3))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("ababab", got.rawString()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
