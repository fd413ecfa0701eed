// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

// Step names one stage of Logout.
type Step string

const (
	StepDeactivatePush Step = "deactivate_push_tokens"
	StepRemoteLogout   Step = "remote_logout"
	StepClearLocal     Step = "clear_local_credentials"
)

// StepOutcome is the result of one Logout stage.
type StepOutcome struct {
	Step    Step
	Skipped bool
	Reason  string
	Err     error
}

// LogoutReport lists every Logout stage in execution order.
type LogoutReport struct {
	Steps []StepOutcome
	Clear ClearOutcome
}

func (r *LogoutReport) record(step Step, err error) {
	r.Steps = append(r.Steps, StepOutcome{Step: step, Err: err})
}

func (r *LogoutReport) skip(step Step, reason string) {
	r.Steps = append(r.Steps, StepOutcome{Step: step, Skipped: true, Reason: reason})
}

// Failed returns the stages that ran and failed.
func (r LogoutReport) Failed() []StepOutcome {
	var out []StepOutcome
	for _, s := range r.Steps {
		if s.Err != nil {
			out = append(out, s)
		}
	}
	return out
}

// Clean reports whether no stage failed.
func (r LogoutReport) Clean() bool { return len(r.Failed()) == 0 }

// Outcome returns the outcome recorded for step.
func (r LogoutReport) Outcome(step Step) (StepOutcome, bool) {
	for _, s := range r.Steps {
		if s.Step == step {
			return s, true
		}
	}
	return StepOutcome{}, false
}
