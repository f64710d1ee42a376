package model

import "context"

// TxStores groups stores bound to a single transaction.
type TxStores struct {
	Users      UserStore
	Messages   MessageStore
	Recipients RecipientStore
}

// TxManager runs a function inside a transaction. The transaction is
// committed when fn returns nil and rolled back otherwise, including when
// fn panics.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, stores TxStores) error) error
}
