// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package codec

import (
	"github.com/klauspost/compress/zstd"
	"github.com/rotisserie/eris"
)

// zstd.Encoder and zstd.Decoder are safe for concurrent use through EncodeAll/DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("codec: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("codec: zstd decoder initialization failed: " + err.Error())
	}
}

type zstdCodec struct {
	inner Codec
}

// Zstd compresses the output of inner.
func Zstd(inner Codec) Codec {
	return zstdCodec{inner: inner}
}

func (z zstdCodec) Name() string {
	return z.inner.Name() + "+zstd"
}

func (z zstdCodec) Marshal(v any) ([]byte, error) {
	raw, err := z.inner.Marshal(v)
	if err != nil {
		return nil, err
	}
	return zstdEncoder.EncodeAll(raw, nil), nil
}

func (z zstdCodec) Unmarshal(data []byte, v any) error {
	raw, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return eris.Wrap(err, "zstd decompress")
	}
	return z.inner.Unmarshal(raw, v)
}
