package pricing

import "testing"

func TestFormatIDR(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{2500, "Rp 2.500"},
		{25000, "Rp 25.000"},
		{50000, "Rp 50.000"},
		{1250000, "Rp 1.250.000"},
		{1000000000, "Rp 1.000.000.000"},
		{-7500, "-Rp 7.500"},
	}

	for _, c := range cases {
		if got := FormatIDR(c.amount); got != c.want {
			t.Errorf("FormatIDR(%d) = %q, want %q", c.amount, got, c.want)
		}
	}
}
