package service

import (
	"sync"

	"github.com/google/uuid"
)

// cartLocker 以購物車 ID 為單位做互斥
// 同一個購物車同時只會有一個結帳在跑, 不同購物車互不影響
// 沒人持有也沒人在等的項目會從 map 移除, 不隨結帳過的購物車數量成長
type cartLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*cartLock
}

type cartLock struct {
	mu   sync.Mutex
	refs int
}

func newCartLocker() *cartLocker {
	return &cartLocker{
		locks: make(map[uuid.UUID]*cartLock),
	}
}

// lock 取得該購物車的鎖, 回傳的函式負責解鎖並釋放引用
func (l *cartLocker) lock(cartID uuid.UUID) func() {
	l.mu.Lock()
	entry, ok := l.locks[cartID]
	if !ok {
		entry = &cartLock{}
		l.locks[cartID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, cartID)
		}
		l.mu.Unlock()
	}
}
