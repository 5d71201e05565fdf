package core

import "testing"

func TestParseSignedAmount(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"5000.00", 500000, true},
		{"-25,50", -2550, true},
		{"R$ 1.234,56", 123456, true},
		{"R$ -1.234,56", -123456, true},
		{"-R$ 12,00", -1200, true},
		{"0", 0, true},
		{"  42,1  ", 4210, true},
		{"1.000.000,99", 100000099, true},
		{"12.34", 1234, true},
		{"", 0, false},
		{"R$", 0, false},
		{"abc", 0, false},
		{"12,34,56", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseSignedAmount(tc.in)
		if tc.ok && err != nil {
			t.Errorf("ParseSignedAmount(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if !tc.ok {
			if err == nil {
				t.Errorf("ParseSignedAmount(%q) expected error, got %d", tc.in, got)
			}
			continue
		}
		if got != tc.cents {
			t.Errorf("ParseSignedAmount(%q) = %d, want %d", tc.in, got, tc.cents)
		}
	}
}

func TestAbs(t *testing.T) {
	if Abs(-2550) != 2550 {
		t.Fatalf("Abs(-2550) = %d", Abs(-2550))
	}
	if Abs(100) != 100 {
		t.Fatalf("Abs(100) = %d", Abs(100))
	}
	if Abs(0) != 0 {
		t.Fatalf("Abs(0) = %d", Abs(0))
	}
}

func TestMoneyReais(t *testing.T) {
	if (Money{Cents: 2550}).Reais() != 25.50 {
		t.Fatalf("unexpected reais value")
	}
}
