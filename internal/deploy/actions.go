package deploy

// Action is a per-deployment operation offered on a card.
type Action string

const (
	ActionOpen    Action = "open"
	ActionRestart Action = "restart"
	ActionLogs    Action = "logs"
	ActionDelete  Action = "delete"
)

// Label is the French button caption.
func (a Action) Label() string {
	switch a {
	case ActionOpen:
		return "Ouvrir"
	case ActionRestart:
		return "Redémarrer"
	case ActionLogs:
		return "Voir logs"
	case ActionDelete:
		return "Supprimer"
	}
	return string(a)
}

// ActionsFor lists the actions available for d, in display order.
func ActionsFor(d Deployment) []Action {
	var actions []Action
	switch d.Status {
	case StatusRunning:
		actions = append(actions, ActionOpen, ActionRestart)
	case StatusFailed:
		actions = append(actions, ActionLogs)
	}
	return append(actions, ActionDelete)
}

// Has reports whether a is offered for d.
func Has(d Deployment, a Action) bool {
	for _, candidate := range ActionsFor(d) {
		if candidate == a {
			return true
		}
	}
	return false
}
