// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/rotisserie/eris"
)

var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	cborEncMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	cborDecMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

type cborCodec struct{}

// CBOR encodes snapshots deterministically: the same tournament state always produces the same bytes.
var CBOR Codec = cborCodec{}

func (cborCodec) Name() string {
	return FormatCBOR
}

func (cborCodec) Marshal(v any) ([]byte, error) {
	bz, err := cborEncMode.Marshal(v)
	if err != nil {
		return nil, eris.Wrap(err, "cbor encode")
	}
	return bz, nil
}

func (cborCodec) Unmarshal(data []byte, v any) error {
	if err := cborDecMode.Unmarshal(data, v); err != nil {
		return eris.Wrap(err, "cbor decode")
	}
	return nil
}
