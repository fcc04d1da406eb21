package steps

import (
	"slices"

	"transmute/internal/config"
	"transmute/internal/item"
	"transmute/internal/pipeline"
)

// ReviewStateStep drops items whose workflow state is not allowed and
// rewrites review states and workflow history through the configured rename
// tables.
func ReviewStateStep(cfg *config.Config) pipeline.Func {
	allowed := append([]string(nil), cfg.ReviewState.Filter.Allowed...)
	rewrite := cfg.ReviewState.Rewrite
	return func(it item.Item, md *pipeline.Context) ([]item.Item, error) {
		state := it.ReviewState()
		if state != "" && len(allowed) > 0 && !slices.Contains(allowed, state) {
			return []item.Item{nil}, nil
		}
		rewriteWorkflow(it, rewrite)
		return []item.Item{it}, nil
	}
}

// rewriteWorkflow renames the review state, workflow identifiers, and the
// states embedded in the workflow history.
func rewriteWorkflow(it item.Item, rewrite config.ReviewStateRewrite) {
	if newState, ok := rewrite.States[it.ReviewState()]; ok {
		it["review_state"] = newState
	}

	history, ok := it["workflow_history"].(map[string]any)
	if !ok || len(history) == 0 {
		return
	}
	rewritten := make(map[string]any, len(history))
	for workflowID, actions := range history {
		newWorkflowID, renamed := rewrite.Workflows[workflowID]
		if !renamed {
			rewritten[workflowID] = actions
			continue
		}
		entries, _ := actions.([]any)
		for _, raw := range entries {
			action, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			state, _ := action["review_state"].(string)
			if newState, ok := rewrite.States[state]; ok {
				action["review_state"] = newState
			}
		}
		rewritten[newWorkflowID] = entries
	}
	it["workflow_history"] = rewritten
}
