package domain

type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseInFlight Phase = "in_flight"
	PhaseSuccess  Phase = "success"
	PhaseFailure  Phase = "failure"
)

type Operation string

const (
	OperationLogin  Operation = "login"
	OperationUpload Operation = "upload"
	OperationAsk    Operation = "ask"
	OperationStudio Operation = "studio"
)

type RequestState struct {
	Phase     Phase
	Operation Operation
	Err       error
}

func (s RequestState) Loading() bool {
	return s.Phase == PhaseInFlight
}
