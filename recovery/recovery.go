package recovery

type Strategy interface {
	OnError(ctx Context, err error, location Location) Action
}

// Location identifies where in the presentation an error occurred.
type Location struct {
	Slide     int
	ElementID string
	Component string
}

type Action int

const (
	ActionFail Action = iota
	ActionSkip
	ActionWarn
)

type Context interface{ Done() <-chan struct{} }
