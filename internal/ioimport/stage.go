package ioimport

// Stage is a step of the import state machine.
type Stage int

const (
	Extracting Stage = iota + 1
	ManifestVerifying
	TableLoading
	DatabaseStaging
	AssetSyncing
	DerivativeGenerating
	LogWriting
	Done
)

// StagesNumber is the number of working stages, Done excluded.
const StagesNumber = int(LogWriting)

var stageNames = map[Stage]string{
	Extracting:           "Extracting pack",
	ManifestVerifying:    "Verifying manifest",
	TableLoading:         "Loading tables",
	DatabaseStaging:      "Staging database",
	AssetSyncing:         "Syncing assets",
	DerivativeGenerating: "Generating derivatives",
	LogWriting:           "Writing import log",
	Done:                 "Done",
}

func (s Stage) String() string {
	if res, ok := stageNames[s]; ok {
		return res
	}
	return "Unknown"
}
