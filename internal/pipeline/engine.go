package pipeline

import (
	"fmt"
	"log/slog"

	"transmute/internal/item"
)

// Outcome is one terminal result of pushing an item through the step list.
// Item is nil when the item was dropped. LastStep carries the name of the
// final configured step: steps after a drop are skipped, not removed, so the
// audit field always reports the last step in the configured order.
type Outcome struct {
	Item        item.Item
	LastStep    string
	Synthesized bool
}

// Engine drives items through the ordered step list. One engine serves one
// run; it shares the run's Context and PathFilter with the steps.
type Engine struct {
	steps      []Step
	md         *Context
	filter     *PathFilter
	noDropMark map[string]struct{}
	log        *slog.Logger
}

// NewEngine builds an engine for a resolved step list. Steps named in
// noDropMark do not trigger descendant-drop propagation when they drop a
// container (a deferred default page is not a real drop).
func NewEngine(steps []Step, md *Context, filter *PathFilter, noDropMark []string, log *slog.Logger) *Engine {
	excluded := make(map[string]struct{}, len(noDropMark))
	for _, name := range noDropMark {
		excluded[name] = struct{}{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		steps:      steps,
		md:         md,
		filter:     filter,
		noDropMark: excluded,
		log:        log,
	}
}

type work struct {
	it          item.Item
	synthesized bool
}

// Process pushes a source item through every step in order and returns the
// terminal outcomes: one for the item itself plus one for every synthesized
// item, each of which re-enters the pipeline at the first step. Fan-out is
// handled through an explicit work queue so deeply recursive step
// configurations cannot exhaust the call stack.
func (e *Engine) Process(src item.Item) ([]Outcome, error) {
	queue := []work{{it: src}}
	var outcomes []Outcome

	for len(queue) > 0 {
		w := queue[0]
		queue = queue[1:]

		srcUID := w.it.UID()
		cur := w.it
		var stepName string
		for _, step := range e.steps {
			stepName = step.Name
			if cur == nil {
				e.log.Debug("step skipped", "uid", srcUID, "step", stepName)
				continue
			}
			// Captured before the step runs: a dropping step may have
			// already rewritten or cleared these fields on its result.
			preID := cur.Path()
			preUID := cur.UID()
			folderish := cur.IsFolderish()
			_, skipDropMark := e.noDropMark[stepName]

			e.log.Debug("step started", "uid", srcUID, "step", stepName)
			results, err := step.Run(cur, e.md)
			if err != nil {
				return nil, fmt.Errorf("%w: step %s: item %s: %v", ErrStepFailed, stepName, preUID, err)
			}
			for _, result := range results {
				switch {
				case result == nil:
					if folderish && !skipDropMark {
						// Drop all children of this container as well.
						e.filter.MarkDropped(preID)
					}
					cur = nil
				case result.PopFlag(NewItemKey):
					e.log.Debug("step produced item", "uid", srcUID, "step", stepName, "new_uid", result.UID())
					queue = append(queue, work{it: result, synthesized: true})
				default:
					cur = result
				}
			}
			e.log.Debug("step finished", "uid", srcUID, "step", stepName)
		}
		outcomes = append(outcomes, Outcome{Item: cur, LastStep: stepName, Synthesized: w.synthesized})
	}
	return outcomes, nil
}
