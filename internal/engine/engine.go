// Package engine walks a descriptor list and drives each resource
// through its check/apply cycle. Execution is strictly sequential and
// never aborts on a failed item.
package engine

import (
	"fmt"

	"github.com/mintup/mintup/internal/core"
)

// Reconciler executes descriptors against one system context.
type Reconciler struct {
	ctx *core.SystemContext
}

func New(ctx *core.SystemContext) *Reconciler {
	return &Reconciler{ctx: ctx}
}

// Run reconciles every descriptor in order and returns the full report.
// A failing item is recorded and the run continues with the next one.
func (r *Reconciler) Run(items []core.ConfigItem) *core.Report {
	report := core.NewReport()
	defer report.Finish()

	for _, item := range items {
		report.Add(r.runItem(item))
	}
	return report
}

// Plan checks every descriptor without mutating anything and reports
// which ones would change, including a diff where the resource can
// produce one.
func (r *Reconciler) Plan(items []core.ConfigItem) *core.Report {
	report := core.NewReport()
	defer report.Finish()

	for _, item := range items {
		report.Add(r.planItem(item))
	}
	return report
}

func (r *Reconciler) runItem(item core.ConfigItem) core.ReportItem {
	res, skip := r.prepare(&item)
	if skip != nil {
		return *skip
	}

	r.ctx.Logger.Debug("reconciling " + item.Type + " " + item.Name)

	result, err := res.Apply(r.ctx)
	if err != nil || result.Failed {
		if err == nil {
			err = result.Error
		}
		r.ctx.Logger.Error(fmt.Sprintf("%s %s: %v", item.Type, item.Name, err))
		return core.ReportItem{
			Type: item.Type, Name: item.Name,
			Outcome: core.OutcomeFailed, Message: result.Message, Err: err,
		}
	}

	outcome := core.OutcomeSatisfied
	if result.Changed {
		outcome = core.OutcomeChanged
		r.ctx.Logger.Info(fmt.Sprintf("%s %s: %s", item.Type, item.Name, result.Message))
	}
	return core.ReportItem{
		Type: item.Type, Name: item.Name,
		Outcome: outcome, Message: result.Message,
	}
}

func (r *Reconciler) planItem(item core.ConfigItem) core.ReportItem {
	res, skip := r.prepare(&item)
	if skip != nil {
		return *skip
	}

	needsChange, err := res.Check(r.ctx)
	if err != nil {
		return core.ReportItem{
			Type: item.Type, Name: item.Name,
			Outcome: core.OutcomeFailed, Message: "check failed", Err: err,
		}
	}
	if !needsChange {
		return core.ReportItem{
			Type: item.Type, Name: item.Name,
			Outcome: core.OutcomeSatisfied, Message: "in desired state",
		}
	}

	reportItem := core.ReportItem{
		Type: item.Type, Name: item.Name,
		Outcome: core.OutcomeChanged, Message: "would change",
	}
	if differ, ok := res.(core.Differ); ok {
		if diff, err := differ.Diff(r.ctx); err == nil {
			reportItem.Diff = diff
		}
	}
	return reportItem
}

// prepare evaluates the when condition, renders the params and builds
// the resource. A non-nil second return means the item is settled
// without touching the system (skipped or failed early).
func (r *Reconciler) prepare(item *core.ConfigItem) (core.Resource, *core.ReportItem) {
	if item.When != "" {
		ok, err := core.EvaluateCondition(item.When, r.ctx)
		if err != nil {
			return nil, &core.ReportItem{
				Type: item.Type, Name: item.Name,
				Outcome: core.OutcomeFailed, Message: "invalid condition", Err: err,
			}
		}
		if !ok {
			r.ctx.Logger.Debug(fmt.Sprintf("skipping %s %s: condition %q not met", item.Type, item.Name, item.When))
			return nil, &core.ReportItem{
				Type: item.Type, Name: item.Name,
				Outcome: core.OutcomeSkipped, Message: fmt.Sprintf("condition %q not met", item.When),
			}
		}
	}

	name, err := core.ExecuteTemplate(item.Name, r.ctx)
	if err == nil {
		item.Name = name
		err = core.RenderParams(item.Params, r.ctx)
	}
	if err != nil {
		return nil, &core.ReportItem{
			Type: item.Type, Name: item.Name,
			Outcome: core.OutcomeFailed, Message: "template error", Err: err,
		}
	}

	res, err := core.CreateResource(item.Type, item.Name, item.Params, r.ctx)
	if err != nil {
		return nil, &core.ReportItem{
			Type: item.Type, Name: item.Name,
			Outcome: core.OutcomeFailed, Message: "cannot build resource", Err: err,
		}
	}
	if err := res.Validate(); err != nil {
		return nil, &core.ReportItem{
			Type: item.Type, Name: item.Name,
			Outcome: core.OutcomeFailed, Message: "invalid descriptor", Err: err,
		}
	}
	return res, nil
}
