package scan

// Status labels a progress event for collaborators.
type Status string

const (
	StatusScanning   Status = "scanning"   // walking directories
	StatusProcessing Status = "processing" // reading file batches
	StatusBusy       Status = "busy"       // scan rejected, one already active
	StatusComplete   Status = "complete"
	StatusCancelled  Status = "cancelled"
	StatusError      Status = "error"
)

// Progress is one event on the progress stream. Processed/Total are only
// meaningful for StatusProcessing.
type Progress struct {
	Status    Status
	Message   string
	Processed int
	Total     int
}

// ProgressFunc receives progress events. Implementations must not block; the
// scanner calls it inline between batches.
type ProgressFunc func(Progress)
