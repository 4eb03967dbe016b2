package services

import "testing"

func TestFormatPHP_Values(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		expect string
	}{
		{"zero", 0, "PHP 0.00"},
		{"small integer", 5, "PHP 5.00"},
		{"with decimals", 42.50, "PHP 42.50"},
		{"thousands", 1234.56, "PHP 1,234.56"},
		{"millions", 1234567.89, "PHP 1,234,567.89"},
		{"rounds half up", 1.005, "PHP 1.01"},
		{"negative", -250000.50, "-PHP 250,000.50"},
		{"grand total", 1485, "PHP 1,485.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatPHP(tt.input)
			if got != tt.expect {
				t.Errorf("FormatPHP(%v) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		input  float64
		expect string
	}{
		{0, "0"},
		{3, "3"},
		{3.5, "4"},
		{0.2, "1"},
		{1499.01, "1,500"},
	}

	for _, tt := range tests {
		if got := FormatQuantity(tt.input); got != tt.expect {
			t.Errorf("FormatQuantity(%v) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}
