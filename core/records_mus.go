package core

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Serializers for the records kept in the session error store.
// Field order is the wire order; append new fields at the end.

var (
	ErrorTypeMUS     = errorTypeMUS{}
	ErrorInfoMUS     = errorInfoMUS{}
	ProtocolErrorMUS = protocolErrorMUS{}
)

type errorTypeMUS struct{}

func (s errorTypeMUS) Marshal(v ErrorType, bs []byte) (n int) {
	return ord.String.Marshal(string(v), bs)
}

func (s errorTypeMUS) Unmarshal(bs []byte) (v ErrorType, n int, err error) {
	str, n, err := ord.String.Unmarshal(bs)
	return ErrorType(str), n, err
}

func (s errorTypeMUS) Size(v ErrorType) (size int) {
	return ord.String.Size(string(v))
}

type errorInfoMUS struct{}

func (s errorInfoMUS) Marshal(v ErrorInfo, bs []byte) (n int) {
	n = ord.String.Marshal(v.Name, bs)
	n += ord.String.Marshal(v.Value, bs[n:])
	return
}

func (s errorInfoMUS) Unmarshal(bs []byte) (v ErrorInfo, n int, err error) {
	v.Name, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Value, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s errorInfoMUS) Size(v ErrorInfo) (size int) {
	size = ord.String.Size(v.Name)
	return size + ord.String.Size(v.Value)
}

type protocolErrorMUS struct{}

func (s protocolErrorMUS) Marshal(v ProtocolError, bs []byte) (n int) {
	n = ErrorTypeMUS.Marshal(v.Type, bs)
	n += ord.String.Marshal(v.Tag, bs[n:])
	n += ord.String.Marshal(v.AppTag, bs[n:])
	n += ord.String.Marshal(v.Path, bs[n:])
	n += ord.String.Marshal(v.Message, bs[n:])
	n += varint.Uint64.Marshal(uint64(len(v.Info)), bs[n:])
	for _, info := range v.Info {
		n += ErrorInfoMUS.Marshal(info, bs[n:])
	}
	return
}

func (s protocolErrorMUS) Unmarshal(bs []byte) (v ProtocolError, n int, err error) {
	v.Type, n, err = ErrorTypeMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	for _, field := range []*string{&v.Tag, &v.AppTag, &v.Path, &v.Message} {
		*field, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	var length uint64
	length, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	// Each entry takes at least two bytes (two length prefixes).
	if length > uint64(len(bs)-n)/2 {
		err = fmt.Errorf("%w: %d info entries in %d bytes", ErrMalformedRecord, length, len(bs)-n)
		return
	}
	if length > 0 {
		v.Info = make([]ErrorInfo, length)
		for i := range v.Info {
			v.Info[i], n1, err = ErrorInfoMUS.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return
			}
		}
	}
	return
}

func (s protocolErrorMUS) Size(v ProtocolError) (size int) {
	size = ErrorTypeMUS.Size(v.Type)
	size += ord.String.Size(v.Tag)
	size += ord.String.Size(v.AppTag)
	size += ord.String.Size(v.Path)
	size += ord.String.Size(v.Message)
	size += varint.Uint64.Size(uint64(len(v.Info)))
	for _, info := range v.Info {
		size += ErrorInfoMUS.Size(info)
	}
	return
}
