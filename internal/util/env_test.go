package util

import (
	"testing"
)

func TestGetEnvString(t *testing.T) {
	if got := GetEnvString("LOREBASE_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("unset key = %q, want fallback", got)
	}

	t.Setenv("LOREBASE_TEST_SET", "value")
	if got := GetEnvString("LOREBASE_TEST_SET", "fallback"); got != "value" {
		t.Errorf("set key = %q, want value", got)
	}

	t.Setenv("LOREBASE_TEST_EMPTY", "")
	if got := GetEnvString("LOREBASE_TEST_EMPTY", "fallback"); got != "" {
		t.Errorf("empty key = %q, want empty string", got)
	}
}

func TestGetEnvNumeric(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  float64
	}{
		{name: "unset", want: 7},
		{name: "integer", value: "12", set: true, want: 12},
		{name: "float", value: "2.5", set: true, want: 2.5},
		{name: "garbage", value: "many", set: true, want: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "LOREBASE_TEST_NUMERIC"
			if tt.set {
				t.Setenv(key, tt.value)
			}
			if got := GetEnvNumeric(key, 7); got != tt.want {
				t.Errorf("GetEnvNumeric = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		set          bool
		defaultValue bool
		want         bool
	}{
		{name: "unset keeps default", defaultValue: true, want: true},
		{name: "true literal", value: "true", set: true, defaultValue: false, want: true},
		{name: "false literal", value: "false", set: true, defaultValue: true, want: false},
		{name: "garbage keeps default", value: "yes", set: true, defaultValue: false, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "LOREBASE_TEST_BOOL"
			if tt.set {
				t.Setenv(key, tt.value)
			}
			if got := GetEnvBool(key, tt.defaultValue); got != tt.want {
				t.Errorf("GetEnvBool = %v, want %v", got, tt.want)
			}
		})
	}
}
