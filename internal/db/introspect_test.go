package db

import (
	"reflect"
	"testing"
)

func TestExcludeCondition(t *testing.T) {
	tests := []struct {
		name       string
		exclude    []string
		startIdx   int
		wantSQL    string
		wantParams []any
	}{
		{
			name:     "empty list produces no fragment",
			exclude:  nil,
			startIdx: 2,
			wantSQL:  "",
		},
		{
			name:     "empty slice produces no fragment",
			exclude:  []string{},
			startIdx: 2,
			wantSQL:  "",
		},
		{
			name:       "single name",
			exclude:    []string{"migrations"},
			startIdx:   2,
			wantSQL:    "AND table_name NOT IN ($2)",
			wantParams: []any{"migrations"},
		},
		{
			name:       "two names",
			exclude:    []string{"a", "b"},
			startIdx:   2,
			wantSQL:    "AND table_name NOT IN ($2, $3)",
			wantParams: []any{"a", "b"},
		},
		{
			name:       "offset placeholder numbering",
			exclude:    []string{"a"},
			startIdx:   5,
			wantSQL:    "AND table_name NOT IN ($5)",
			wantParams: []any{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, params := ExcludeCondition(tt.exclude, tt.startIdx)
			if sql != tt.wantSQL {
				t.Errorf("Expected fragment %q, got %q", tt.wantSQL, sql)
			}
			if tt.wantParams == nil {
				if len(params) != 0 {
					t.Errorf("Expected no params, got %v", params)
				}
				return
			}
			if !reflect.DeepEqual(params, tt.wantParams) {
				t.Errorf("Expected params %v, got %v", tt.wantParams, params)
			}
		})
	}
}
