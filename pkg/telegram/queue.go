package telegram

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// ChatQueue runs jobs of one chat one at a time, in submission order, while
// jobs of different chats run concurrently. A chat's worker goroutine exits
// as soon as its backlog is empty.
type ChatQueue struct {
	mu      sync.Mutex
	pending map[int64][]func()
	wg      sync.WaitGroup
}

func NewChatQueue() *ChatQueue {
	return &ChatQueue{pending: make(map[int64][]func())}
}

func (q *ChatQueue) Submit(chatId int64, job func()) {
	q.mu.Lock()
	defer q.mu.Unlock()

	backlog, running := q.pending[chatId]
	q.pending[chatId] = append(backlog, job)
	if running {
		return
	}
	q.wg.Add(1)
	go q.drain(chatId)
}

func (q *ChatQueue) drain(chatId int64) {
	defer q.wg.Done()
	for {
		q.mu.Lock()
		backlog := q.pending[chatId]
		if len(backlog) == 0 {
			delete(q.pending, chatId)
			q.mu.Unlock()
			return
		}
		job := backlog[0]
		q.pending[chatId] = backlog[1:]
		q.mu.Unlock()

		run(chatId, job)
	}
}

func run(chatId int64, job func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("panic while handling update for chat %d: %v", chatId, r)
		}
	}()
	job()
}

// Wait blocks until every submitted job has finished.
func (q *ChatQueue) Wait() {
	q.wg.Wait()
}
