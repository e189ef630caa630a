package service

import "testing"

func TestAverageRating(t *testing.T) {
	cases := []struct {
		name  string
		sum   int
		count int
		want  float64
	}{
		{"no reviews", 0, 0, 0},
		{"single review", 7, 1, 7.0},
		{"4 and 6", 10, 2, 5.0},
		{"rounds to one decimal", 20, 3, 6.7},
		{"after adding a ten", 30, 4, 7.5},
		{"after deleting back down", 16, 2, 8.0},
		{"all minimum", 3, 3, 1.0},
		{"all maximum", 30, 3, 10.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AverageRating(tc.sum, tc.count); got != tc.want {
				t.Errorf("AverageRating(%d, %d) = %v, want %v", tc.sum, tc.count, got, tc.want)
			}
		})
	}
}
