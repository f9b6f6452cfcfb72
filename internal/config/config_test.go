package config

import "testing"

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"set", "7", 7},
		{"not an integer", "veinte", 15},
		{"unset", "", 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DENUNCIAS_TEST_INT", tt.value)
			if got := GetEnvInt("DENUNCIAS_TEST_INT", 15); got != tt.want {
				t.Errorf("GetEnvInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDefaultReadsSniffRowsFromEnv(t *testing.T) {
	t.Setenv("DENUNCIAS_SNIFF_ROWS", "40")
	if got := Default().SniffRows; got != 40 {
		t.Errorf("SniffRows = %d, want 40", got)
	}

	t.Setenv("DENUNCIAS_SNIFF_ROWS", "")
	if got := Default().SniffRows; got != 20 {
		t.Errorf("default SniffRows = %d, want 20", got)
	}
}
