package handler

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "github.com/dtroode/letterbox-server/internal/api/grpc/letterboxv1"
	"github.com/dtroode/letterbox-server/internal/model"
)

func parseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid %s: %q is not a UUID", field, value)
	}
	return id, nil
}

func parseIDs(field string, values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := parseID(field, v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func convertUser(u model.User) pb.User {
	return pb.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

func convertMessage(m model.Message) pb.Message {
	return pb.Message{
		ID:        m.ID,
		SenderID:  m.SenderID,
		Subject:   m.Subject,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
}

func convertEntry(e model.MessageRecipient) pb.RecipientEntry {
	return pb.RecipientEntry{
		ID:          e.ID,
		MessageID:   e.MessageID,
		RecipientID: e.RecipientID,
		Read:        e.Read,
		ReadAt:      e.ReadAt,
	}
}

func convertInboxItem(item model.InboxItem) pb.InboxItem {
	out := pb.InboxItem{
		ID:               item.ID,
		SenderID:         item.SenderID,
		Subject:          item.Subject,
		Content:          item.Content,
		Timestamp:        item.Timestamp,
		RecipientEntryID: item.RecipientEntryID,
		Read:             item.Read,
		ReadAt:           item.ReadAt,
	}
	if item.Sender != nil {
		sender := convertUser(*item.Sender)
		out.Sender = &sender
	}
	return out
}

func convertRecipientStatus(s model.RecipientStatus) pb.RecipientStatus {
	return pb.RecipientStatus{
		RecipientEntryID: s.RecipientEntryID,
		RecipientID:      s.RecipientID,
		RecipientName:    s.RecipientName,
		RecipientEmail:   s.RecipientEmail,
		Read:             s.Read,
		ReadAt:           s.ReadAt,
	}
}

func convertMessages(messages []model.Message) []pb.Message {
	return lo.Map(messages, func(m model.Message, _ int) pb.Message { return convertMessage(m) })
}
