// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mathutil

import (
	"cmp"
	"math/bits"
)

// Max returns the larger of x and y.
func Max[T cmp.Ordered](x T, y T) T {
	return max(x, y)
}

// Min returns the smaller of x and y.
func Min[T cmp.Ordered](x T, y T) T {
	return min(x, y)
}

// Clamp bounds v to the closed interval [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// CeilLog2 returns ceil(log2(n)) for n >= 1 and 0 otherwise.
func CeilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// Percentage returns part/whole*100, or 0 when whole is not positive.
func Percentage(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return Clamp(float64(part)/float64(whole)*100, 0, 100)
}

// Pairs returns n*(n-1)/2.
func Pairs(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}
