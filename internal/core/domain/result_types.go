package domain

// DiffResult holds three pairwise disjoint key sets: keys only in the desired
// snapshot (Create), keys in both whose canonical forms differ (Update) and
// keys only in the actual snapshot (Remove, sorted).
type DiffResult[T any] struct {
	Create map[string]T `json:"create"`
	Update map[string]T `json:"update"`
	Remove []string     `json:"remove"`
}

func NewDiffResult[T any]() DiffResult[T] {
	return DiffResult[T]{
		Create: make(map[string]T),
		Update: make(map[string]T),
		Remove: []string{},
	}
}

func (d DiffResult[T]) IsEmpty() bool {
	return len(d.Create) == 0 && len(d.Update) == 0 && len(d.Remove) == 0
}

func (d DiffResult[T]) Len() int {
	return len(d.Create) + len(d.Update) + len(d.Remove)
}

type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpRemove Operation = "remove"
	OpTag    Operation = "tag"
)

type Outcome struct {
	Kind      ResourceKind `json:"kind"`
	Key       string       `json:"key"`
	Operation Operation    `json:"operation"`
}

type Failure struct {
	Outcome
	Error string `json:"error"`
	Err   error  `json:"-"`
}

// ApplyReport enumerates the outcome of every remote mutation attempted in a
// run. A dry run leaves both lists empty.
type ApplyReport struct {
	DryRun    bool      `json:"dry_run"`
	Succeeded []Outcome `json:"succeeded"`
	Failed    []Failure `json:"failed"`
}

func NewApplyReport(dryRun bool) ApplyReport {
	return ApplyReport{DryRun: dryRun, Succeeded: []Outcome{}, Failed: []Failure{}}
}

func (r *ApplyReport) RecordSuccess(kind ResourceKind, key string, op Operation) {
	r.Succeeded = append(r.Succeeded, Outcome{Kind: kind, Key: key, Operation: op})
}

func (r *ApplyReport) RecordFailure(kind ResourceKind, key string, op Operation, err error) {
	f := Failure{Outcome: Outcome{Kind: kind, Key: key, Operation: op}, Err: err}
	if err != nil {
		f.Error = err.Error()
	}
	r.Failed = append(r.Failed, f)
}

func (r ApplyReport) HasFailures() bool {
	return len(r.Failed) > 0
}

type RunStatus string

const (
	StatusCompleted                    RunStatus = "COMPLETED"
	StatusCompletedWithPartialFailures RunStatus = "COMPLETED_WITH_PARTIAL_FAILURES"
	StatusAbortedValidation            RunStatus = "ABORTED_VALIDATION"
	StatusAbortedPolicy                RunStatus = "ABORTED_POLICY"
)

// KindResult is everything a run computed for one resource kind.
type KindResult struct {
	Kind    ResourceKind         `json:"kind"`
	Diff    DiffResult[Resource] `json:"diff"`
	TagDiff DiffResult[Tag]      `json:"tag_diff"`
	Details map[string]string    `json:"details,omitempty"`
	Apply   ApplyReport          `json:"apply"`
}

type RunResult struct {
	// RunID correlates the audit file, its uploaded copy and the log lines of one run.
	RunID        string       `json:"run_id"`
	Organization string       `json:"organization"`
	Environment  string       `json:"environment"`
	DryRun       bool         `json:"dry_run"`
	Status       RunStatus    `json:"status"`
	Kinds        []KindResult `json:"kinds"`
}

// Failures flattens the apply failures of every kind.
func (r RunResult) Failures() []Failure {
	var out []Failure
	for _, k := range r.Kinds {
		out = append(out, k.Apply.Failed...)
	}
	return out
}
