package server

// StageName identifies one step of the component pipeline.
type StageName string

const (
	// StageResolve merges default, cookie, and query sources into the
	// request's view state and seeds the URL builder.
	StageResolve StageName = "resolve"

	// StagePersist writes the resolved scalar map back to cookies.
	StagePersist StageName = "persist"

	// StageAuthorize hydrates injectable parameter types (auth sessions).
	// The only stage that may reject a request.
	StageAuthorize StageName = "authorize"
)

// Stage is a named pipeline step.
type Stage struct {
	Name StageName
	Run  func(*Ctx) error
}

// runStages executes stages in order, stopping at the first error. It
// returns the failing stage's name alongside the error.
func runStages(ctx *Ctx, stages []Stage) (StageName, error) {
	for _, stage := range stages {
		if err := stage.Run(ctx); err != nil {
			return stage.Name, err
		}
	}
	return "", nil
}
