package schema

import (
	"errors"
	"testing"
)

func TestMapColumn(t *testing.T) {
	tests := []struct {
		name     string
		dataType string
		want     GraphqlType
		wantErr  bool
	}{
		{name: "boolean", dataType: "boolean", want: TypeBoolean},
		{name: "numeric", dataType: "numeric", want: TypeFloat},
		{name: "real", dataType: "real", want: TypeFloat},
		{name: "double precision", dataType: "double precision", want: TypeFloat},
		{name: "integer", dataType: "integer", want: TypeInt},
		{name: "smallint", dataType: "smallint", want: TypeInt},
		{name: "bigint", dataType: "bigint", want: TypeInt},
		{name: "varchar", dataType: "character varying", want: TypeString},
		{name: "char", dataType: "character", want: TypeString},
		{name: "text", dataType: "text", want: TypeString},
		{name: "bytea", dataType: "bytea", want: TypeString},
		{name: "timestamptz", dataType: "timestamp with time zone", want: TypeString},
		{name: "user-defined", dataType: "USER-DEFINED", want: TypeString},
		{name: "unsupported", dataType: "tsvector", wantErr: true},
		{name: "empty", dataType: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MapColumn("price", Column{Name: "price", DataType: tt.dataType})
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				var ute *UnsupportedTypeError
				if !errors.As(err, &ute) {
					t.Fatalf("Expected UnsupportedTypeError, got %T", err)
				}
				if ute.Column != "price" || ute.DataType != tt.dataType {
					t.Errorf("Error should name column and type, got %v", ute)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestAvailableTypes(t *testing.T) {
	got := AvailableTypes()
	want := []string{"Boolean", "Float", "Int", "String"}

	if len(got) != len(want) {
		t.Fatalf("Expected %d types, got %d", len(want), len(got))
	}
	for i, name := range want {
		if got[i] != name {
			t.Errorf("Expected type %s at index %d, got %s", name, i, got[i])
		}
	}
}
