// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package codec encodes tournament snapshots for the storage backends.
package codec

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

const (
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type jsonCodec struct{}

// JSON is the default snapshot encoding.
var JSON Codec = jsonCodec{}

func (jsonCodec) Name() string {
	return FormatJSON
}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	bz, err := json.Marshal(v)
	if err != nil {
		return nil, eris.Wrap(err, "json encode")
	}
	return bz, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return eris.Wrap(err, "json decode")
	}
	return nil
}

// ByName returns the codec for format, optionally wrapped with zstd compression.
func ByName(format string, compress bool) (Codec, error) {
	var c Codec
	switch strings.ToLower(format) {
	case "", FormatJSON:
		c = JSON
	case FormatCBOR:
		c = CBOR
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", format)
	}
	if compress {
		c = Zstd(c)
	}
	return c, nil
}
