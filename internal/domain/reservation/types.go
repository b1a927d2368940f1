package reservation

type Status string

const (
	StatusScheduled  Status = "reservation_scheduled"
	StatusInProgress Status = "reservation_in_progress"
	StatusDone       Status = "reservation_done"
	StatusCancelled  Status = "reservation_cancelled"
	StatusExpired    Status = "reservation_expired"
	StatusUnmet      Status = "reservation_unmet"
	// StatusInactive is accepted on read for legacy records but never
	// produced by the state machine.
	StatusInactive Status = "reservation_inactive"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusDone,
		StatusCancelled, StatusExpired, StatusUnmet, StatusInactive:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusDone, StatusCancelled, StatusExpired, StatusUnmet:
		return true
	default:
		return false
	}
}

// legalTransitions is the full lifecycle table. Self-transitions are
// handled in CanTransition and are always legal.
var legalTransitions = map[Status][]Status{
	StatusScheduled:  {StatusInProgress, StatusCancelled, StatusExpired},
	StatusInProgress: {StatusDone, StatusCancelled, StatusExpired, StatusUnmet},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ActiveStatuses are the statuses that participate in collision detection
// and connector bindings.
func ActiveStatuses() []Status {
	return []Status{StatusScheduled, StatusInProgress}
}

type Type string

const (
	TypePlanned    Type = "planned_reservation"
	TypeReserveNow Type = "reserve_now"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypePlanned, TypeReserveNow:
		return true
	default:
		return false
	}
}
