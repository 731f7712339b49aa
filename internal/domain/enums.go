package domain

// StepStatus is the lifecycle state of a processing step.
type StepStatus string

const (
	StepPending  StepStatus = "pending"
	StepActive   StepStatus = "active"
	StepComplete StepStatus = "complete"
	StepError    StepStatus = "error"
)

// OrderSource selects which workbook(s) an order listing reads from.
type OrderSource string

const (
	SourceReference OrderSource = "reference"
	SourceExtracted OrderSource = "extracted"
	SourceAll       OrderSource = "all"
)

// ValidOrderSources enumerates the accepted source query values.
var ValidOrderSources = map[OrderSource]bool{
	SourceReference: true,
	SourceExtracted: true,
	SourceAll:       true,
}

// Upload step identifiers, in the order the server emits them.
const (
	StepValidate = "validate"
	StepUpload   = "upload"
	StepAnalyze  = "analyze"
	StepExtract  = "extract"
	StepSave     = "save"
)

// OrderStatusNew is the status stamped on freshly extracted orders.
const OrderStatusNew = 1
