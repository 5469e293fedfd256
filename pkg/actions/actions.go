package actions

// Action is a remediation strategy an operator can apply to a workflow.
type Action string

const (
	ActionClone       Action = "clone"
	ActionRecover     Action = "recover"
	ActionInvestigate Action = "investigate"
	// ActionOther covers action names this version does not know about.
	// They render no parameters rather than failing, so newer action
	// types submitted through older dashboards still go through.
	ActionOther Action = "other"
)

// Known lists the actions offered by the dashboard, in display order.
func Known() []Action {
	return []Action{ActionClone, ActionRecover, ActionInvestigate}
}

// Parse maps a raw action name onto an Action. Unknown names map to
// ActionOther; Parse never fails.
func Parse(raw string) Action {
	switch raw {
	case string(ActionClone):
		return ActionClone
	case string(ActionRecover):
		return ActionRecover
	case string(ActionInvestigate):
		return ActionInvestigate
	default:
		return ActionOther
	}
}

// String returns the wire name of the action.
func (a Action) String() string {
	return string(a)
}

// PerTask reports whether the action's parameters are entered once per
// task instead of once per workflow.
func (a Action) PerTask() bool {
	return a == ActionRecover
}

// ChoiceGroup is a set of mutually exclusive options rendered as a
// radio-style control group.
type ChoiceGroup struct {
	Key     string
	Options []string
}

// ParameterSpec describes the controls a single parameter block renders
// for one action: choice groups first, then free-text fields, both in
// the order listed here.
type ParameterSpec struct {
	Groups []ChoiceGroup
	Texts  []string
}

// Spec returns the parameter specification for the action. Unknown
// actions get an empty spec, which renders as a single empty block.
func Spec(a Action) ParameterSpec {
	switch a {
	case ActionClone:
		return ParameterSpec{
			Groups: []ChoiceGroup{
				{Key: "splitting", Options: []string{"2x", "3x", "max"}},
			},
			Texts: []string{"memory"},
		}
	case ActionRecover:
		return ParameterSpec{
			Groups: []ChoiceGroup{
				{Key: "xrootd", Options: []string{"enabled", "disabled"}},
				{Key: "splitting", Options: []string{"2x", "3x", "max"}},
			},
			Texts: []string{"memory"},
		}
	case ActionInvestigate:
		return ParameterSpec{
			Texts: []string{"other"},
		}
	default:
		return ParameterSpec{}
	}
}

// Fields returns every control name in the spec, groups first then
// texts, matching rendered block order.
func (s ParameterSpec) Fields() []string {
	fields := make([]string, 0, len(s.Groups)+len(s.Texts))
	for _, g := range s.Groups {
		fields = append(fields, g.Key)
	}
	fields = append(fields, s.Texts...)
	return fields
}
