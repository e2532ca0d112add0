package indexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSortKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		keys []string
		want []string
	}{
		{
			name: "Numeric value, not string order",
			keys: []string{"100", "9", "10"},
			want: []string{"9", "10", "100"},
		},
		{
			name: "Zero padded keys",
			keys: []string{"00456", "00123", "01000"},
			want: []string{"00123", "00456", "01000"},
		},
		{
			name: "Equal values ordered as strings",
			keys: []string{"7", "007", "07"},
			want: []string{"007", "07", "7"},
		},
		{
			name: "Non numeric after numeric",
			keys: []string{"b", "2", "a", "1"},
			want: []string{"1", "2", "a", "b"},
		},
		{
			name: "Decimals and negatives",
			keys: []string{"1.5", "-3", "1"},
			want: []string{"-3", "1", "1.5"},
		},
		{
			name: "NaN is not numeric",
			keys: []string{"NaN", "5"},
			want: []string{"5", "NaN"},
		},
		{
			name: "Empty",
			keys: []string{},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := append([]string(nil), tt.keys...)
			SortKeys(got)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("SortKeys mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
