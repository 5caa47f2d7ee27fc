// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package utils

import (
	"strings"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// GetMapValueAs get and cast to a type
func GetMapValueAs[T any](m map[string]interface{}, key string) (t T, ok bool) {
	var v interface{}
	if m == nil {
		return t, false
	}
	if v, ok = m[key]; !ok {
		return t, false
	}
	switch val := v.(type) {
	case T:
		return val, true
	default:
		return t, false
	}
}

// GenerateUUID generates uuid without hyphens.
func GenerateUUID() string {
	id, _ := uuid.NewRandom()
	return strings.ReplaceAll(id.String(), "-", "")
}

// GenerateULID generates a lexicographically sortable id.
func GenerateULID() string {
	return strings.ToLower(ulid.Make().String())
}

func HasSameElement(s1, s2 []string) bool {
	if len(s1) != len(s2) {
		return false
	}
	m1 := make(map[string]bool, len(s1))
	for _, v := range s1 {
		m1[v] = true
	}
	for _, v := range s2 {
		if !m1[v] {
			return false
		}
	}
	return true
}
