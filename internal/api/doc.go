// Package api defines the Horios gRPC contract: request and response
// messages, the service descriptor shared by server and client, and the
// JSON codec the messages travel in.
//
// The contract is written by hand instead of generated from a .proto file.
// Messages are plain Go structs encoded with the "json" codec, so the build
// needs neither protoc nor google.golang.org/protobuf, and the wire names in
// the struct tags are the schema. The cost is that tooling which expects
// protobuf (grpcurl reflection, other-language stubs) cannot read the
// service; such callers must send application/grpc+json. Moving to protobuf
// later means adding a .proto with the same method names and regenerating;
// ServiceName and the method paths would stay the same.
package api
