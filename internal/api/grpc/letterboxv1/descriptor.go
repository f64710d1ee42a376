package letterboxv1

import (
	"fmt"
	"reflect"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// ProtoFile is the registry path of api/letterbox/v1/messaging.proto.
const ProtoFile = "letterbox/v1/messaging.proto"

const protoPackage = "letterbox.v1"

// File_letterbox_v1_messaging_proto is the Messaging schema. It is registered
// in protoregistry.GlobalFiles so gRPC reflection can serve it.
var File_letterbox_v1_messaging_proto protoreflect.FileDescriptor

// rpcs lists every Messaging method with its request and response message.
var rpcs = []struct {
	name, input, output string
}{
	{"CreateUser", "CreateUserRequest", "User"},
	{"ListUsers", "ListUsersRequest", "ListUsersResponse"},
	{"GetUser", "GetUserRequest", "User"},
	{"SendMessage", "SendMessageRequest", "Message"},
	{"GetMessage", "GetMessageRequest", "Message"},
	{"MarkRecipientRead", "MarkRecipientReadRequest", "RecipientEntry"},
	{"SentMessages", "UserMessagesRequest", "MessagesResponse"},
	{"Inbox", "UserMessagesRequest", "InboxResponse"},
	{"UnreadInbox", "UserMessagesRequest", "InboxResponse"},
	{"RecipientsOf", "RecipientsOfRequest", "RecipientsOfResponse"},
}

// wireTypes binds each Go wire type to its message in the schema.
var wireTypes = map[reflect.Type]protoreflect.Name{
	reflect.TypeOf(User{}):                     "User",
	reflect.TypeOf(Message{}):                  "Message",
	reflect.TypeOf(RecipientEntry{}):           "RecipientEntry",
	reflect.TypeOf(InboxItem{}):                "InboxItem",
	reflect.TypeOf(RecipientStatus{}):          "RecipientStatus",
	reflect.TypeOf(CreateUserRequest{}):        "CreateUserRequest",
	reflect.TypeOf(ListUsersRequest{}):         "ListUsersRequest",
	reflect.TypeOf(ListUsersResponse{}):        "ListUsersResponse",
	reflect.TypeOf(GetUserRequest{}):           "GetUserRequest",
	reflect.TypeOf(SendMessageRequest{}):       "SendMessageRequest",
	reflect.TypeOf(GetMessageRequest{}):        "GetMessageRequest",
	reflect.TypeOf(MarkRecipientReadRequest{}): "MarkRecipientReadRequest",
	reflect.TypeOf(UserMessagesRequest{}):      "UserMessagesRequest",
	reflect.TypeOf(MessagesResponse{}):         "MessagesResponse",
	reflect.TypeOf(InboxResponse{}):            "InboxResponse",
	reflect.TypeOf(RecipientsOfRequest{}):      "RecipientsOfRequest",
	reflect.TypeOf(RecipientsOfResponse{}):     "RecipientsOfResponse",
}

func init() {
	fd, err := protodesc.NewFile(fileDescriptorProto(), protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("letterboxv1: invalid %s: %v", ProtoFile, err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(fmt.Sprintf("letterboxv1: failed to register %s: %v", ProtoFile, err))
	}
	File_letterbox_v1_messaging_proto = fd
}

// descriptorFor returns the schema message of a Go wire value or pointer.
func descriptorFor(v any) (protoreflect.MessageDescriptor, error) {
	t := reflect.TypeOf(v)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name, ok := wireTypes[t]
	if !ok {
		return nil, fmt.Errorf("letterboxv1: %v is not a Messaging wire type", t)
	}
	return File_letterbox_v1_messaging_proto.Messages().ByName(name), nil
}

type fieldOpt func(*descriptorpb.FieldDescriptorProto)

func optional(f *descriptorpb.FieldDescriptorProto) {
	f.Proto3Optional = proto.Bool(true)
}

func repeated(f *descriptorpb.FieldDescriptorProto) {
	f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
}

func field(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type, opts ...fieldOpt) *descriptorpb.FieldDescriptorProto {
	f := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   typ.Enum(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func stringField(name string, number int32, opts ...fieldOpt) *descriptorpb.FieldDescriptorProto {
	return field(name, number, descriptorpb.FieldDescriptorProto_TYPE_STRING, opts...)
}

func boolField(name string, number int32) *descriptorpb.FieldDescriptorProto {
	return field(name, number, descriptorpb.FieldDescriptorProto_TYPE_BOOL)
}

func int32Field(name string, number int32) *descriptorpb.FieldDescriptorProto {
	return field(name, number, descriptorpb.FieldDescriptorProto_TYPE_INT32)
}

// messageField refers to a message of this package by short name, or to any
// other message by its fully qualified name with a leading dot.
func messageField(name string, number int32, typeName string, opts ...fieldOpt) *descriptorpb.FieldDescriptorProto {
	f := field(name, number, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, opts...)
	if typeName[0] != '.' {
		typeName = "." + protoPackage + "." + typeName
	}
	f.TypeName = proto.String(typeName)
	return f
}

func timestampField(name string, number int32) *descriptorpb.FieldDescriptorProto {
	return messageField(name, number, "."+string((&timestamppb.Timestamp{}).ProtoReflect().Descriptor().FullName()))
}

// message builds a message and gives every proto3 optional field the
// synthetic oneof protoc would generate for it.
func message(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	m := &descriptorpb.DescriptorProto{Name: proto.String(name), Field: fields}
	for _, f := range fields {
		if !f.GetProto3Optional() {
			continue
		}
		f.OneofIndex = proto.Int32(int32(len(m.OneofDecl)))
		m.OneofDecl = append(m.OneofDecl, &descriptorpb.OneofDescriptorProto{Name: proto.String("_" + f.GetName())})
	}
	return m
}

func fileDescriptorProto() *descriptorpb.FileDescriptorProto {
	service := &descriptorpb.ServiceDescriptorProto{Name: proto.String("Messaging")}
	for _, rpc := range rpcs {
		service.Method = append(service.Method, &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(rpc.name),
			InputType:  proto.String("." + protoPackage + "." + rpc.input),
			OutputType: proto.String("." + protoPackage + "." + rpc.output),
		})
	}

	return &descriptorpb.FileDescriptorProto{
		Name:       proto.String(ProtoFile),
		Package:    proto.String(protoPackage),
		Syntax:     proto.String("proto3"),
		Dependency: []string{timestamppb.File_google_protobuf_timestamp_proto.Path()},
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("github.com/dtroode/letterbox-server/internal/api/grpc/letterboxv1"),
		},
		MessageType: []*descriptorpb.DescriptorProto{
			message("User",
				stringField("id", 1),
				stringField("email", 2),
				stringField("name", 3),
				timestampField("created_at", 4),
			),
			message("Message",
				stringField("id", 1),
				stringField("sender_id", 2),
				stringField("subject", 3, optional),
				stringField("content", 4),
				timestampField("timestamp", 5),
			),
			message("RecipientEntry",
				stringField("id", 1),
				stringField("message_id", 2),
				stringField("recipient_id", 3),
				boolField("read", 4),
				timestampField("read_at", 5),
			),
			message("InboxItem",
				stringField("id", 1),
				stringField("sender_id", 2),
				stringField("subject", 3, optional),
				stringField("content", 4),
				timestampField("timestamp", 5),
				stringField("recipient_entry_id", 6),
				boolField("read", 7),
				timestampField("read_at", 8),
				messageField("sender", 9, "User"),
			),
			message("RecipientStatus",
				stringField("recipient_entry_id", 1),
				stringField("recipient_id", 2),
				stringField("recipient_name", 3),
				stringField("recipient_email", 4),
				boolField("read", 5),
				timestampField("read_at", 6),
			),
			message("CreateUserRequest",
				stringField("email", 1),
				stringField("name", 2),
			),
			message("ListUsersRequest",
				int32Field("skip", 1),
				int32Field("limit", 2),
			),
			message("ListUsersResponse",
				messageField("users", 1, "User", repeated),
			),
			message("GetUserRequest",
				stringField("user_id", 1),
			),
			message("SendMessageRequest",
				stringField("sender_id", 1),
				stringField("subject", 2, optional),
				stringField("content", 3),
				stringField("recipient_ids", 4, repeated),
			),
			message("GetMessageRequest",
				stringField("message_id", 1),
			),
			message("MarkRecipientReadRequest",
				stringField("entry_id", 1),
			),
			message("UserMessagesRequest",
				stringField("user_id", 1),
			),
			message("MessagesResponse",
				messageField("messages", 1, "Message", repeated),
			),
			message("InboxResponse",
				messageField("items", 1, "InboxItem", repeated),
			),
			message("RecipientsOfRequest",
				stringField("message_id", 1),
			),
			message("RecipientsOfResponse",
				messageField("recipients", 1, "RecipientStatus", repeated),
			),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{service},
	}
}
