package hermes

const (
	SubjectSimulationRequest = "regen.simulation.request"

	StreamName   = "REGEN_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

func SubjectSimulationCompleted(id string) string { return "regen.simulation." + id + ".completed" }
func SubjectSimulationFailed(id string) string    { return "regen.simulation." + id + ".failed" }
func SubjectSimulationDeleted(id string) string   { return "regen.simulation." + id + ".deleted" }
