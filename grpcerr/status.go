// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package grpcerr carries NETCONF protocol errors over gRPC status values.
//
// The tag, type, app-tag and path travel in an errdetails.ErrorInfo whose
// domain is the NETCONF base namespace. The ordered error-info entries travel
// as errdetails.BadRequest field violations so repeated names keep their order.
package grpcerr

import (
	"strings"

	"github.com/poiesic/ncerr/core"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Domain identifies NETCONF error details.
const Domain = "urn:ietf:params:xml:ns:netconf:base:1.0"

// Metadata keys of the ErrorInfo detail.
const (
	MetadataType   = "error-type"
	MetadataTag    = "error-tag"
	MetadataAppTag = "error-app-tag"
	MetadataPath   = "error-path"
)

var tagCodes = map[string]codes.Code{
	core.TagInUse:             codes.Aborted,
	core.TagLockDenied:        codes.FailedPrecondition,
	core.TagInvalidValue:      codes.InvalidArgument,
	core.TagMissingElement:    codes.InvalidArgument,
	core.TagBadElement:        codes.InvalidArgument,
	core.TagDataMissing:       codes.NotFound,
	core.TagOperationFailed:   codes.FailedPrecondition,
	"too-big":                 codes.ResourceExhausted,
	"missing-attribute":       codes.InvalidArgument,
	"bad-attribute":           codes.InvalidArgument,
	"unknown-attribute":       codes.InvalidArgument,
	"unknown-element":         codes.InvalidArgument,
	"unknown-namespace":       codes.InvalidArgument,
	"access-denied":           codes.PermissionDenied,
	"resource-denied":         codes.ResourceExhausted,
	"rollback-failed":         codes.Aborted,
	"data-exists":             codes.AlreadyExists,
	"operation-not-supported": codes.Unimplemented,
	"malformed-message":       codes.InvalidArgument,
}

// Code returns the gRPC code for a NETCONF error-tag. Unknown tags map to codes.Unknown.
func Code(tag string) codes.Code {
	if code, ok := tagCodes[tag]; ok {
		return code
	}
	return codes.Unknown
}

// Reason returns the ErrorInfo reason for a NETCONF error-tag, e.g. LOCK_DENIED.
func Reason(tag string) string {
	return strings.ToUpper(strings.ReplaceAll(tag, "-", "_"))
}

// ToStatus converts perr into a gRPC status with NETCONF details.
func ToStatus(perr *core.ProtocolError) *status.Status {
	st := status.New(Code(perr.Tag), perr.Message)

	metadata := map[string]string{
		MetadataType: string(perr.Type),
		MetadataTag:  perr.Tag,
	}
	if perr.AppTag != "" {
		metadata[MetadataAppTag] = perr.AppTag
	}
	if perr.Path != "" {
		metadata[MetadataPath] = perr.Path
	}

	errorInfo := &errdetails.ErrorInfo{
		Reason:   Reason(perr.Tag),
		Domain:   Domain,
		Metadata: metadata,
	}

	var (
		withDetails *status.Status
		err         error
	)
	if len(perr.Info) == 0 {
		withDetails, err = st.WithDetails(errorInfo)
	} else {
		violations := make([]*errdetails.BadRequest_FieldViolation, len(perr.Info))
		for i, info := range perr.Info {
			violations[i] = &errdetails.BadRequest_FieldViolation{Field: info.Name, Description: info.Value}
		}
		withDetails, err = st.WithDetails(errorInfo, &errdetails.BadRequest{FieldViolations: violations})
	}
	if err != nil {
		return st
	}
	return withDetails
}

// ToError converts perr into a gRPC status error.
func ToError(perr *core.ProtocolError) error {
	return ToStatus(perr).Err()
}

// FromStatus recovers the protocol error carried by st.
// ok is false when st has no NETCONF ErrorInfo detail.
func FromStatus(st *status.Status) (*core.ProtocolError, bool) {
	var (
		perr  *core.ProtocolError
		infos []core.ErrorInfo
	)
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			if d.GetDomain() != Domain || perr != nil {
				continue
			}
			md := d.GetMetadata()
			perr = &core.ProtocolError{
				Type:    core.ErrorType(md[MetadataType]),
				Tag:     md[MetadataTag],
				AppTag:  md[MetadataAppTag],
				Path:    md[MetadataPath],
				Message: st.Message(),
			}
		case *errdetails.BadRequest:
			for _, fv := range d.GetFieldViolations() {
				infos = append(infos, core.ErrorInfo{Name: fv.GetField(), Value: fv.GetDescription()})
			}
		}
	}
	if perr == nil {
		return nil, false
	}
	perr.Info = infos
	return perr, true
}

// FromError recovers the protocol error carried by a gRPC status error.
func FromError(err error) (*core.ProtocolError, bool) {
	st, ok := status.FromError(err)
	if !ok {
		return nil, false
	}
	return FromStatus(st)
}
