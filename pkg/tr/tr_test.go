package tr

import (
	"context"
	"testing"

	"github.com/ColdBlood237/odin-inventory/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxFromCtx_Missing(t *testing.T) {
	tx, err := TxFromCtx(context.Background())

	require.ErrorIs(t, err, e.ErrTransactionNotFound)
	assert.Nil(t, tx)
}

func TestTxFromCtx_NilTx(t *testing.T) {
	_, err := TxFromCtx(WithTx(context.Background(), nil))

	assert.ErrorIs(t, err, e.ErrTransactionNotFound)
}

func TestExecutor_FallsBackWithoutTx(t *testing.T) {
	var fallback Querier

	assert.Equal(t, fallback, Executor(context.Background(), fallback))
}
