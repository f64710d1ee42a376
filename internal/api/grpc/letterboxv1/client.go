package letterboxv1

import (
	"context"

	"google.golang.org/grpc"
)

// MessagingClient calls the Messaging service over protobuf using Codec.
type MessagingClient struct {
	cc grpc.ClientConnInterface
}

func NewMessagingClient(cc grpc.ClientConnInterface) *MessagingClient {
	return &MessagingClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MessagingClient) CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, "CreateUser", in, opts)
}

func (c *MessagingClient) ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[ListUsersResponse](ctx, c.cc, "ListUsers", in, opts)
}

func (c *MessagingClient) GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, "GetUser", in, opts)
}

func (c *MessagingClient) SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*Message, error) {
	return invoke[Message](ctx, c.cc, "SendMessage", in, opts)
}

func (c *MessagingClient) GetMessage(ctx context.Context, in *GetMessageRequest, opts ...grpc.CallOption) (*Message, error) {
	return invoke[Message](ctx, c.cc, "GetMessage", in, opts)
}

func (c *MessagingClient) MarkRecipientRead(ctx context.Context, in *MarkRecipientReadRequest, opts ...grpc.CallOption) (*RecipientEntry, error) {
	return invoke[RecipientEntry](ctx, c.cc, "MarkRecipientRead", in, opts)
}

func (c *MessagingClient) SentMessages(ctx context.Context, in *UserMessagesRequest, opts ...grpc.CallOption) (*MessagesResponse, error) {
	return invoke[MessagesResponse](ctx, c.cc, "SentMessages", in, opts)
}

func (c *MessagingClient) Inbox(ctx context.Context, in *UserMessagesRequest, opts ...grpc.CallOption) (*InboxResponse, error) {
	return invoke[InboxResponse](ctx, c.cc, "Inbox", in, opts)
}

func (c *MessagingClient) UnreadInbox(ctx context.Context, in *UserMessagesRequest, opts ...grpc.CallOption) (*InboxResponse, error) {
	return invoke[InboxResponse](ctx, c.cc, "UnreadInbox", in, opts)
}

func (c *MessagingClient) RecipientsOf(ctx context.Context, in *RecipientsOfRequest, opts ...grpc.CallOption) (*RecipientsOfResponse, error) {
	return invoke[RecipientsOfResponse](ctx, c.cc, "RecipientsOf", in, opts)
}
