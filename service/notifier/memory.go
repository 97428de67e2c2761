package notifier

import (
	"sync"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/domain/auction"
)

type memoryNotifier struct {
	mu   sync.Mutex
	subs map[chan uint64]struct{}
}

// NewMemoryNotifier fans seqs out to subscribers in the same process
func NewMemoryNotifier() auction.Notifier {
	return &memoryNotifier{subs: map[chan uint64]struct{}{}}
}

func (n *memoryNotifier) Publish(c ctx.Ctx, seq uint64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs {
		send(ch, seq)
	}
	return nil
}

func (n *memoryNotifier) Subscribe(c ctx.Ctx) (<-chan uint64, error) {
	ch := make(chan uint64, 1)
	n.mu.Lock()
	n.subs[ch] = struct{}{}
	n.mu.Unlock()

	go func() {
		<-c.Done()
		n.mu.Lock()
		delete(n.subs, ch)
		close(ch)
		n.mu.Unlock()
	}()
	return ch, nil
}
