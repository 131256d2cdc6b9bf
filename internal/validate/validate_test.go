package validate_test

import (
	"testing"

	"bathstore/internal/validate"
)

func TestPhone(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"0771234001", true},
		{" 0771234001 ", true},
		{"077123400", false},
		{"07712340011", false},
		{"07712b4001", false},
		{"+771234001", false},
		{"", false},
	}
	for _, c := range cases {
		if _, ok := validate.Phone(c.in); ok != c.ok {
			t.Errorf("Phone(%q) = %v, want %v", c.in, ok, c.ok)
		}
	}
}

func TestPassword(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"Passw0rd!", true},
		{"Sh0rt!a", false},          // too short
		{"alllowercase1!", false},   // no upper
		{"ALLUPPERCASE1!", false},   // no lower
		{"NoDigitsHere!", false},    // no digit
		{"NoSymbolsHere1", false},   // no symbol
		{"Way2LongPasswordIsHere!!", false}, // over 20
	}
	for _, c := range cases {
		if got := validate.Password(c.in); got != c.ok {
			t.Errorf("Password(%q) = %v, want %v", c.in, got, c.ok)
		}
	}
}

func TestQtyClamps(t *testing.T) {
	cases := map[string]int{
		"3":   3,
		"0":   1,
		"-5":  1,
		"":    1,
		"abc": 1,
		"999": 50,
	}
	for in, want := range cases {
		if got := validate.Qty(in); got != want {
			t.Errorf("Qty(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestPrice(t *testing.T) {
	if _, ok := validate.Price("5400.00"); !ok {
		t.Error("expected 5400.00 to parse")
	}
	if _, ok := validate.Price("0"); ok {
		t.Error("zero price should be rejected")
	}
	if _, ok := validate.Price("-10"); ok {
		t.Error("negative price should be rejected")
	}
	if _, ok := validate.Price("ten"); ok {
		t.Error("non-numeric price should be rejected")
	}
}

func TestStock(t *testing.T) {
	if n, ok := validate.Stock("0"); !ok || n != 0 {
		t.Error("zero stock is valid")
	}
	if _, ok := validate.Stock("-1"); ok {
		t.Error("negative stock should be rejected")
	}
}

func TestID(t *testing.T) {
	if _, ok := validate.ID("shower-rain-01"); !ok {
		t.Error("expected id to be valid")
	}
	if _, ok := validate.ID("../etc/passwd"); ok {
		t.Error("traversal-looking id should be rejected")
	}
	if _, ok := validate.ID(""); ok {
		t.Error("blank id should be rejected")
	}
}
