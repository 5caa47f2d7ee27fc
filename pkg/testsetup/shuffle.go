// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"math/rand"
)

// NoShuffle keeps the input order.
type NoShuffle struct{}

func (NoShuffle) Shuffle(n int, swap func(i, j int)) {}

// ReverseShuffle reverses the input order.
type ReverseShuffle struct{}

func (ReverseShuffle) Shuffle(n int, swap func(i, j int)) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}

// SeededShuffle returns a deterministic random source.
func SeededShuffle(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
