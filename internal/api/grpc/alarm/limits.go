package alarm

import (
	"encoding/base64"

	"google.golang.org/grpc"
)

// envelopeHeadroom covers the JSON field names, the file name and the
// media type around an upload payload.
const envelopeHeadroom = 64 << 10

// MessageSizeLimit returns the gRPC message size needed to carry an upload of
// maxUpload bytes. The codec sends bytes as base64, a third larger than the file.
func MessageSizeLimit(maxUpload int64) int {
	return base64.StdEncoding.EncodedLen(int(max(maxUpload, 0))) + envelopeHeadroom
}

// ServerOptions sizes the server for uploads of maxUpload bytes.
func ServerOptions(maxUpload int64) []grpc.ServerOption {
	limit := MessageSizeLimit(maxUpload)

	return []grpc.ServerOption{
		grpc.MaxRecvMsgSize(limit),
		grpc.MaxSendMsgSize(limit),
	}
}

// CallOptions sizes client calls for uploads of maxUpload bytes.
func CallOptions(maxUpload int64) []grpc.CallOption {
	limit := MessageSizeLimit(maxUpload)

	return []grpc.CallOption{
		grpc.MaxCallSendMsgSize(limit),
		grpc.MaxCallRecvMsgSize(limit),
	}
}
