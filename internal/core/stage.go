package core

// Stage is a state of the exchange pipeline.
//
//	Start -> Validated -> Enriched -> Issued -> Done
//	  any stage -> Failed
type Stage string

const (
	StageStart     Stage = "start"
	StageValidated Stage = "validated"
	StageEnriched  Stage = "enriched"
	StageIssued    Stage = "issued"
	StageDone      Stage = "done"
	StageFailed    Stage = "failed"
)
