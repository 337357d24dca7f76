package scenes

import "context"

// asyncResult 后台任务的结果
type asyncResult[T any] struct {
	value T
	err   error
}

// asyncTask 在 goroutine 中执行的一次网络请求
// 结果通过带缓冲的通道送回，场景在 Update 中轮询，不阻塞游戏循环
type asyncTask[T any] struct {
	ch     chan asyncResult[T]
	cancel context.CancelFunc
}

// startTask 启动后台任务
func startTask[T any](parent context.Context, fn func(ctx context.Context) (T, error)) *asyncTask[T] {
	ctx, cancel := context.WithCancel(parent)
	t := &asyncTask[T]{
		ch:     make(chan asyncResult[T], 1),
		cancel: cancel,
	}
	go func() {
		v, err := fn(ctx)
		t.ch <- asyncResult[T]{value: v, err: err}
	}()
	return t
}

// poll 非阻塞地检查任务是否完成
func (t *asyncTask[T]) poll() (asyncResult[T], bool) {
	select {
	case r := <-t.ch:
		t.cancel()
		return r, true
	default:
		return asyncResult[T]{}, false
	}
}

// stop 取消任务（结果被丢弃）
func (t *asyncTask[T]) stop() {
	t.cancel()
}
