package memory

import (
	"context"
	"sync"
)

// TxManager сериализует «транзакции»: проверка и запись внутри Do не перемежаются
// с другими транзакциями. Отката нет.
type TxManager struct {
	mu sync.Mutex
}

func NewTxManager() *TxManager {
	return &TxManager{}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return fn(ctx)
}
