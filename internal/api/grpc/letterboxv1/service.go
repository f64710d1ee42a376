package letterboxv1

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "letterbox.v1.Messaging"

// MessagingServer is the server API for the Messaging service.
type MessagingServer interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error)
	ListUsers(ctx context.Context, req *ListUsersRequest) (*ListUsersResponse, error)
	GetUser(ctx context.Context, req *GetUserRequest) (*User, error)
	SendMessage(ctx context.Context, req *SendMessageRequest) (*Message, error)
	GetMessage(ctx context.Context, req *GetMessageRequest) (*Message, error)
	MarkRecipientRead(ctx context.Context, req *MarkRecipientReadRequest) (*RecipientEntry, error)
	SentMessages(ctx context.Context, req *UserMessagesRequest) (*MessagesResponse, error)
	Inbox(ctx context.Context, req *UserMessagesRequest) (*InboxResponse, error)
	UnreadInbox(ctx context.Context, req *UserMessagesRequest) (*InboxResponse, error)
	RecipientsOf(ctx context.Context, req *RecipientsOfRequest) (*RecipientsOfResponse, error)
}

// FullMethod returns the gRPC path of a Messaging method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unaryMethod[Req, Resp any](method string, call func(MessagingServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(MessagingServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(method),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(MessagingServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Messaging_ServiceDesc is the grpc.ServiceDesc for the Messaging service.
var Messaging_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MessagingServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("CreateUser", MessagingServer.CreateUser),
		unaryMethod("ListUsers", MessagingServer.ListUsers),
		unaryMethod("GetUser", MessagingServer.GetUser),
		unaryMethod("SendMessage", MessagingServer.SendMessage),
		unaryMethod("GetMessage", MessagingServer.GetMessage),
		unaryMethod("MarkRecipientRead", MessagingServer.MarkRecipientRead),
		unaryMethod("SentMessages", MessagingServer.SentMessages),
		unaryMethod("Inbox", MessagingServer.Inbox),
		unaryMethod("UnreadInbox", MessagingServer.UnreadInbox),
		unaryMethod("RecipientsOf", MessagingServer.RecipientsOf),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: ProtoFile,
}

// RegisterMessagingServer registers srv on s.
func RegisterMessagingServer(s grpc.ServiceRegistrar, srv MessagingServer) {
	s.RegisterService(&Messaging_ServiceDesc, srv)
}
