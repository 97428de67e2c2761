package goroutine

import (
	"github.com/x-xyz/auctionhouse/base/log"
	"github.com/x-xyz/auctionhouse/base/utils"
)

type PanicEvent struct {
	Panic interface{}
	Stack []byte
}

type RecoverableGoOptions struct {
	name           string
	beforeStart    func()
	afterEnded     func()
	afterRecovered func(panic interface{}, stack []byte)
}

type RecoverableGoOptionsFunc = func(*RecoverableGoOptions)

func WithName(name string) RecoverableGoOptionsFunc {
	return func(o *RecoverableGoOptions) {
		o.name = name
	}
}

func WithBeforeStart(f func()) RecoverableGoOptionsFunc {
	return func(o *RecoverableGoOptions) {
		o.beforeStart = f
	}
}

func WithAfterEnded(f func()) RecoverableGoOptionsFunc {
	return func(o *RecoverableGoOptions) {
		o.afterEnded = f
	}
}

func WithAfterRecovered(f func(panic interface{}, stack []byte)) RecoverableGoOptionsFunc {
	return func(o *RecoverableGoOptions) {
		o.afterRecovered = f
	}
}

// RecoverableGo runs f in its own goroutine. The returned channel is closed
// when f returns, or receives the panic if f panics.
func RecoverableGo(f func(), fns ...RecoverableGoOptionsFunc) <-chan *PanicEvent {
	opts := RecoverableGoOptions{}
	for _, fn := range fns {
		fn(&opts)
	}

	panicChan := make(chan *PanicEvent, 1)

	go func() {
		defer func() {
			if opts.afterEnded != nil {
				opts.afterEnded()
			}

			p := recover()
			if p == nil {
				close(panicChan)
				return
			}

			stack := utils.Stack(3)
			log.Log().WithFields(log.Fields{
				"name":  opts.name,
				"err":   p,
				"stack": string(stack),
			}).Error("panic")

			if opts.afterRecovered != nil {
				opts.afterRecovered(p, stack)
			}
			panicChan <- &PanicEvent{p, stack}
		}()

		if opts.beforeStart != nil {
			opts.beforeStart()
		}

		f()
	}()

	return panicChan
}
