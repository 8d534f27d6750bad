package main

import (
	"reflect"
	"testing"
)

func TestParseExclude(t *testing.T) {
	tests := []struct {
		name string
		flag string
		want []string
	}{
		{name: "empty", flag: "", want: nil},
		{name: "single", flag: "migrations", want: []string{"migrations"}},
		{name: "multiple with spaces", flag: "migrations, audit_log", want: []string{"migrations", "audit_log"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseExclude(tt.flag)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
