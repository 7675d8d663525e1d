package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/argus/pkg/domain/model"
	"github.com/osint-lab/argus/pkg/domain/types"
	"github.com/osint-lab/argus/pkg/utils/errutil"
)

// StageAction identifies one of the pipeline-advancing backend actions
type StageAction string

const (
	ActionCollect          StageAction = "collect"
	ActionAnalyze          StageAction = "analyze"
	ActionRunAll           StageAction = "run-all"
	ActionGenerateProducts StageAction = "generate-products"
)

// AllStageActions returns all dispatchable stage actions
func AllStageActions() []StageAction {
	return []StageAction{
		ActionCollect,
		ActionAnalyze,
		ActionRunAll,
		ActionGenerateProducts,
	}
}

// IsValid checks if the stage action is valid
func (a StageAction) IsValid() bool {
	switch a {
	case ActionCollect, ActionAnalyze, ActionRunAll, ActionGenerateProducts:
		return true
	default:
		return false
	}
}

// String returns the string representation of the stage action
func (a StageAction) String() string {
	return string(a)
}

// ParseStageAction parses a string into a StageAction
func ParseStageAction(s string) (StageAction, error) {
	action := StageAction(s)
	if !action.IsValid() {
		return "", goerr.New("invalid stage action", goerr.V("action", s))
	}
	return action, nil
}

// RunAction executes one pipeline stage against the given case. The backend
// performs the stage synchronously and is the sole source of truth for
// status transitions, so no local state is updated optimistically: on
// success the acted-upon case becomes active and a registry refresh pulls
// the post-stage state. On failure a stage-specific message is reported and
// cached state stays untouched. No retry, no queueing; the busy flag is the
// caller's cue to hold further actions.
func (x *Workbench) RunAction(ctx context.Context, id types.CaseID, action StageAction) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if !action.IsValid() {
		return goerr.New("invalid stage action", goerr.V("action", action))
	}

	x.setBusy(true)
	defer x.setBusy(false)
	x.setError("")

	var err error
	switch action {
	case ActionCollect:
		_, err = x.backend.Collect(ctx, id)
	case ActionAnalyze:
		_, err = x.backend.Analyze(ctx, id)
	case ActionRunAll:
		_, err = x.backend.RunAll(ctx, id)
	case ActionGenerateProducts:
		_, err = x.backend.GenerateProducts(ctx, id)
	}
	if err != nil {
		x.setError(fmt.Sprintf("Action %q failed. Retry after checking backend logs.", action))
		return errutil.Handle(ctx, goerr.Wrap(err, "stage action failed",
			goerr.V("case_id", id),
			goerr.V("action", action)), "pipeline action failed")
	}

	x.mu.Lock()
	x.activeID = id
	x.mu.Unlock()

	return x.Refresh(ctx)
}

// CreateCase creates a new investigation case, makes it active, and
// refreshes the registry so the created case appears in the list
func (x *Workbench) CreateCase(ctx context.Context, input model.CreateCaseInput) (*model.Case, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	x.setBusy(true)
	defer x.setBusy(false)
	x.setError("")

	created, err := x.backend.CreateCase(ctx, input)
	if err != nil {
		x.setError(msgCreateFailed)
		return nil, errutil.Handle(ctx, goerr.Wrap(err, "case creation failed"), "create case failed")
	}

	x.mu.Lock()
	x.activeID = created.ID
	x.mu.Unlock()

	if err := x.Refresh(ctx); err != nil {
		return created, err
	}
	return created, nil
}

func (x *Workbench) setBusy(busy bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.busy = busy
}
