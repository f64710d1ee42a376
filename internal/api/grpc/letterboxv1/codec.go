package letterboxv1

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/dynamicpb"
)

// CodecName is the content-subtype of the Messaging service. It is the gRPC
// default, so clients generated from messaging.proto need no extra options.
const CodecName = "proto"

var (
	jsonToProto = protojson.UnmarshalOptions{DiscardUnknown: true}
	protoToJSON = protojson.MarshalOptions{UseProtoNames: true}
)

// Codec writes protobuf wire format. The Go wire types are carried through a
// dynamic message of the matching schema message; their JSON tags use the
// proto field names. proto.Message values such as health and reflection
// messages are passed to proto directly.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return proto.Marshal(m)
	}

	md, err := descriptorFor(v)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", md.FullName(), err)
	}
	msg := dynamicpb.NewMessage(md)
	if err := jsonToProto.Unmarshal(raw, msg); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", md.FullName(), err)
	}
	return proto.Marshal(msg)
}

func (Codec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return proto.Unmarshal(data, m)
	}

	md, err := descriptorFor(v)
	if err != nil {
		return err
	}
	msg := dynamicpb.NewMessage(md)
	if err := proto.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to decode %s: %w", md.FullName(), err)
	}
	raw, err := protoToJSON.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", md.FullName(), err)
	}
	return json.Unmarshal(raw, v)
}

func (Codec) Name() string {
	return CodecName
}
