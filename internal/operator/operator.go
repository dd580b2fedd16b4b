package operator

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage *storage.Storage
	queue   chan ActionItem
	tracker *tracker
}

func NewOperator(s *storage.Storage, queue chan ActionItem, t *tracker) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
		tracker: t,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	if o.tracker.superseded(item) {
		logrus.WithField("coalesceKey", item.key).Debug("Operator.processItem.superseded")
		item.respond(nil)
		return
	}

	err := o.perform(item)
	if err != nil {
		logrus.WithError(err).WithField("coalesceKey", item.key).Error("Operator.processItem.failed")
		if item.response == nil {
			o.tracker.fail(item, err)
		}
	}
	item.respond(err)
}

func (o *Operator) perform(item ActionItem) error {
	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		return err
	}

	err = item.action.Perform(item.ctx, writer)
	if err != nil {
		_ = writer.Rollback()
		return err
	}

	return writer.Commit()
}

type ActionItem struct {
	ctx        context.Context
	action     actions.IAction
	key        string
	generation uint64
	response   chan ActionItemResponse
}

func (i ActionItem) respond(err error) {
	if i.response != nil {
		i.response <- ActionItemResponse{err: err}
	}
}

type ActionItemResponse struct {
	err error
}
