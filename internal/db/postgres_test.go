package db

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
)

// stubTx satisfies pgx.Tx through the embedded interface; only identity matters here.
type stubTx struct {
	pgx.Tx
}

type stubConn struct {
	DBTX
}

func TestConn_PrefersContextTransaction(t *testing.T) {
	pool := &stubConn{}
	ctx := context.Background()

	if got := Conn(ctx, pool); got != DBTX(pool) {
		t.Fatalf("expected fallback outside a transaction, got %T", got)
	}

	tx := &stubTx{}
	txCtx := ContextWithTx(ctx, tx)
	if got, ok := TxFromContext(txCtx); !ok || got != pgx.Tx(tx) {
		t.Fatalf("TxFromContext = %v, %v", got, ok)
	}
	if got := Conn(txCtx, pool); got != DBTX(tx) {
		t.Fatalf("expected transaction, got %T", got)
	}
}

func TestTxFromContext_NilTx(t *testing.T) {
	if _, ok := TxFromContext(ContextWithTx(context.Background(), nil)); ok {
		t.Error("a nil transaction must not be reported")
	}
}
